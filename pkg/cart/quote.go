package cart

import (
	"github.com/shopspring/decimal"
)

var (
	gstRate        = decimal.NewFromFloat(0.03)
	convenienceFee = decimal.NewFromInt(20)
	deliveryFee    = decimal.NewFromInt(40)
)

// Quote is the checkout fee breakdown shown before an order is placed. Only
// Subtotal feeds the persisted order total; fees are charged on delivery.
type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Gst            decimal.Decimal `json:"gst"`
	ConvenienceFee decimal.Decimal `json:"convenienceFee"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Total          decimal.Decimal `json:"total"`
}

// Quote computes the fee breakdown for the current cart. The delivery fee is
// waived on an empty cart.
func (e *Engine) Quote() Quote {
	subtotal := e.Total()
	gst := subtotal.Mul(gstRate)
	delivery := deliveryFee
	if len(e.lines) == 0 {
		delivery = decimal.Zero
	}
	return Quote{
		Subtotal:       subtotal,
		Gst:            gst,
		ConvenienceFee: convenienceFee,
		DeliveryFee:    delivery,
		Total:          subtotal.Add(gst).Add(convenienceFee).Add(delivery),
	}
}
