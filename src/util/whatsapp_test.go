package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 10,00", FormatPrice(10))
	assert.Equal(t, "R$ 10,50", FormatPrice(10.5))
	assert.Equal(t, "R$ 1.234,50", FormatPrice(1234.5))
	assert.Equal(t, "R$ 1.234.567,89", FormatPrice(1234567.89))
	assert.Equal(t, "R$ 0,00", FormatPrice(0))
	assert.Equal(t, "R$ -42,00", FormatPrice(-42))
}

func sampleOrder() OrderDetails {
	return OrderDetails{
		Items: []OrderItem{
			{Name: "Empada de Frango", Quantity: 3, Price: 10},
			{Name: "Empada de Camarão", Quantity: 1, Price: 12.5},
		},
		Total:          42.5,
		CustomerName:   "Maria",
		CustomerPhone:  "71999990000",
		DeliveryMethod: DeliveryMethodDelivery,
		PaymentMethod:  CheckoutPaymentPix,
	}
}

func TestGenerateOrderMessage(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	order := sampleOrder()
	order.CustomerAddress = "Rua A, 123"
	order.DeliveryDate = "12/03/2024"
	order.Notes = "sem cebola"

	msg := GenerateOrderMessage(order, now)

	assert.Contains(t, msg, "NOVO PEDIDO - EMPADAS DA LIA")
	assert.Contains(t, msg, "• Empada de Frango — 3x (R$ 10,00)")
	assert.Contains(t, msg, "• Empada de Camarão — 1x (R$ 12,50)")
	assert.Contains(t, msg, "*TOTAL: R$ 42,50*")
	assert.Contains(t, msg, "Entrega no endereço")
	assert.Contains(t, msg, "Endereço: Rua A, 123")
	assert.Contains(t, msg, "Data de entrega: 12/03/2024")
	assert.Contains(t, msg, "PIX (adiantado)")
	assert.Contains(t, msg, "Nome: Maria")
	assert.Contains(t, msg, "Telefone: 71999990000")
	assert.Contains(t, msg, "Observações: sem cebola")
	assert.Contains(t, msg, "Pedido realizado em: 10/03/2024 14:30:00")
}

func TestGenerateOrderMessageHandDelivery(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	order := sampleOrder()
	order.DeliveryMethod = DeliveryMethodHand
	order.PaymentMethod = CheckoutPaymentCash
	order.CustomerAddress = "Praça central"

	msg := GenerateOrderMessage(order, now)

	assert.Contains(t, msg, "Em mãos (eu mesmo levo)")
	assert.Contains(t, msg, "Local/Referência: Praça central")
	assert.Contains(t, msg, "Dinheiro na entrega")
	assert.NotContains(t, msg, "Endereço:")
	assert.NotContains(t, msg, "Observações:")
}

func TestGenerateWhatsAppURL(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	u := GenerateWhatsAppURL(sampleOrder(), now)
	require.True(t, strings.HasPrefix(u, "https://wa.me/"+WhatsAppNumber+"?text="), u)

	encoded := strings.TrimPrefix(u, "https://wa.me/"+WhatsAppNumber+"?text=")
	assert.NotContains(t, encoded, " ", "message must be URL-encoded")
	assert.NotContains(t, encoded, "\n")
}
