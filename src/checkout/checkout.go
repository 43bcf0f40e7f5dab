// Package checkout turns a storefront cart into a WhatsApp order message and,
// when bookkeeping is configured, records the order as a pending inflow.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"empadas-server/src/apperr"
	"empadas-server/src/catalog"
	"empadas-server/src/finance"
	"empadas-server/src/models"
	"empadas-server/src/util"
)

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Input struct {
	Items           []CartItem           `json:"items"`
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	DeliveryMethod  util.DeliveryMethod  `json:"deliveryMethod"`
	PaymentMethod   util.CheckoutPayment `json:"paymentMethod"`
	CustomerAddress string               `json:"customerAddress,omitempty"`
	DeliveryDate    string               `json:"deliveryDate,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

type Result struct {
	Message       string  `json:"message"`
	WhatsAppURL   string  `json:"whatsappUrl"`
	Total         float64 `json:"total"`
	TransactionID string  `json:"transactionId,omitempty"`
}

type Service struct {
	catalog          *catalog.Service
	finance          *finance.Service
	checkoutCategory string
	now              func() time.Time
}

// New wires the checkout flow. checkoutCategoryID may be empty, in which
// case orders are not recorded in the ledger.
func New(catalogSvc *catalog.Service, financeSvc *finance.Service, checkoutCategoryID string) *Service {
	return &Service{
		catalog:          catalogSvc,
		finance:          financeSvc,
		checkoutCategory: checkoutCategoryID,
		now:              time.Now,
	}
}

func ledgerPaymentMethod(p util.CheckoutPayment) models.PaymentMethod {
	switch p {
	case util.CheckoutPaymentPix:
		return models.PaymentMethodPix
	case util.CheckoutPaymentCard:
		return models.PaymentMethodCard
	default:
		return models.PaymentMethodCash
	}
}

func (s *Service) validate(input Input) error {
	if len(input.Items) == 0 {
		return apperr.BadRequest("o pedido precisa de pelo menos um item")
	}
	for _, item := range input.Items {
		if item.Quantity < catalog.MinOrderQuantity || item.Quantity > catalog.MaxOrderQuantity {
			return apperr.BadRequest(fmt.Sprintf(
				"quantidade inválida para %s: deve estar entre %d e %d",
				item.ProductID, catalog.MinOrderQuantity, catalog.MaxOrderQuantity))
		}
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return apperr.BadRequest("nome do cliente é obrigatório")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return apperr.BadRequest("telefone do cliente é obrigatório")
	}
	if !input.DeliveryMethod.Valid() {
		return apperr.BadRequest(fmt.Sprintf("forma de entrega inválida: %q", input.DeliveryMethod))
	}
	if !input.PaymentMethod.Valid() {
		return apperr.BadRequest(fmt.Sprintf("forma de pagamento inválida: %q", input.PaymentMethod))
	}
	return nil
}

// Place validates the cart against the live catalog, builds the WhatsApp
// order, and best-effort records a PENDING inflow with source=checkout.
func (s *Service) Place(ctx context.Context, input Input) (Result, error) {
	if err := s.validate(input); err != nil {
		return Result{}, err
	}

	total := decimal.Zero
	orderItems := make([]util.OrderItem, 0, len(input.Items))
	refParts := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := s.catalog.Get(ctx, item.ProductID)
		if !ok {
			return Result{}, apperr.BadRequest(fmt.Sprintf("produto desconhecido: %s", item.ProductID))
		}
		if product.Availability == models.AvailabilityUnavailable {
			return Result{}, apperr.BadRequest(fmt.Sprintf("produto indisponível: %s", product.Name))
		}
		total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, util.OrderItem{
			Name:     product.Name,
			Quantity: item.Quantity,
			Price:    product.Price,
		})
		refParts = append(refParts, fmt.Sprintf("%dx %s", item.Quantity, product.Name))
	}

	totalF, _ := total.Float64()
	order := util.OrderDetails{
		Items:           orderItems,
		Total:           totalF,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryMethod:  input.DeliveryMethod,
		PaymentMethod:   input.PaymentMethod,
		CustomerAddress: input.CustomerAddress,
		DeliveryDate:    input.DeliveryDate,
		Notes:           input.Notes,
	}

	now := s.now()
	result := Result{
		Message:     util.GenerateOrderMessage(order, now),
		WhatsAppURL: util.GenerateWhatsAppURL(order, now),
		Total:       totalF,
	}

	// Ledger recording must never break the customer-facing checkout.
	if s.checkoutCategory != "" {
		tx, err := s.finance.CreateTransaction(ctx, finance.TransactionInput{
			Type:          models.TransactionTypeIn,
			Status:        models.TransactionStatusPending,
			DateISO:       now.Format("2006-01-02"),
			Amount:        totalF,
			CategoryID:    s.checkoutCategory,
			PaymentMethod: ledgerPaymentMethod(input.PaymentMethod),
			Description:   "Pedido WhatsApp - " + order.CustomerName,
			Source:        models.TransactionSourceCheckout,
			Reference:     strings.Join(refParts, "; "),
		})
		if err != nil {
			log.Printf("ERROR: Failed to record checkout transaction: %v", err)
		} else {
			result.TransactionID = tx.ID
		}
	}

	return result, nil
}
