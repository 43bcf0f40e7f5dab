package util

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WhatsApp checkout configuration.
const (
	WhatsAppNumber = "5571987922212"
	WhatsAppAPIURL = "https://wa.me/" + WhatsAppNumber

	// Optional PIX key shown on orders paid upfront; empty hides the line.
	PixKey = ""
)

type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodHand     DeliveryMethod = "hand"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodDelivery || m == DeliveryMethodHand
}

// CheckoutPayment is the storefront-facing payment choice (distinct from the
// ledger's PaymentMethod enum).
type CheckoutPayment string

const (
	CheckoutPaymentPix  CheckoutPayment = "pix"
	CheckoutPaymentCash CheckoutPayment = "cash"
	CheckoutPaymentCard CheckoutPayment = "card"
)

func (p CheckoutPayment) Valid() bool {
	switch p {
	case CheckoutPaymentPix, CheckoutPaymentCash, CheckoutPaymentCard:
		return true
	}
	return false
}

type OrderItem struct {
	Name     string
	Quantity int
	Price    float64
}

type OrderDetails struct {
	Items           []OrderItem
	Total           float64
	CustomerName    string
	CustomerPhone   string
	DeliveryMethod  DeliveryMethod
	PaymentMethod   CheckoutPayment
	CustomerAddress string
	DeliveryDate    string
	Notes           string
}

func deliveryMethodLabel(method DeliveryMethod) string {
	if method == DeliveryMethodHand {
		return "Em mãos (eu mesmo levo)"
	}
	return "Entrega no endereço"
}

func paymentMethodLabel(method CheckoutPayment) string {
	switch method {
	case CheckoutPaymentPix:
		return "PIX (adiantado)"
	case CheckoutPaymentCard:
		return "Cartão na entrega"
	default:
		return "Dinheiro na entrega"
	}
}

// FormatPrice renders a value as Brazilian Real, e.g. 1234.5 -> "R$ 1.234,50".
func FormatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, strings.Join(grouped, "."), decPart)
}

// GenerateOrderMessage formats the WhatsApp order text the storefront sends.
func GenerateOrderMessage(order OrderDetails, now time.Time) string {
	addressLine := ""
	if order.CustomerAddress != "" {
		if order.DeliveryMethod == DeliveryMethodDelivery {
			addressLine = "Endereço: " + order.CustomerAddress
		} else {
			addressLine = "Local/Referência: " + order.CustomerAddress
		}
	}

	lines := []string{
		"🍽️ *NOVO PEDIDO - EMPADAS DA LIA*",
		"",
		"📋 *ITENS:*",
	}
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %s — %dx (%s)", item.Name, item.Quantity, FormatPrice(item.Price)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("💰 *TOTAL: %s*", FormatPrice(order.Total)),
		"",
		"🚚 *ENTREGA:*",
		deliveryMethodLabel(order.DeliveryMethod),
	)
	if addressLine != "" {
		lines = append(lines, addressLine)
	}
	if order.DeliveryDate != "" {
		lines = append(lines, "Data de entrega: "+order.DeliveryDate)
	}
	lines = append(lines,
		"",
		"💳 *PAGAMENTO:*",
		paymentMethodLabel(order.PaymentMethod),
	)
	if order.PaymentMethod == CheckoutPaymentPix && PixKey != "" {
		lines = append(lines, "Chave PIX: "+PixKey)
	}
	lines = append(lines,
		"",
		"👤 *CLIENTE:*",
		"Nome: "+order.CustomerName,
		"Telefone: "+order.CustomerPhone,
	)
	if order.Notes != "" {
		lines = append(lines, "Observações: "+order.Notes)
	}
	lines = append(lines,
		"",
		"Pedido realizado em: "+now.Format("02/01/2006 15:04:05"),
	)

	return strings.Join(lines, "\n")
}

// GenerateWhatsAppURL builds the wa.me link carrying the order message.
func GenerateWhatsAppURL(order OrderDetails, now time.Time) string {
	return WhatsAppAPIURL + "?text=" + url.QueryEscape(GenerateOrderMessage(order, now))
}
