package order

import (
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Address string          `validate:"required"            json:"address"`
	Phone   string          `validate:"required"            json:"phone"`
	UserID  string          `validate:"required"            json:"userId"`
	Items   []LineRequest   `validate:"required,min=1,dive" json:"items"`
	Total   decimal.Decimal `validate:"required"            json:"total"`
}

type LineRequest struct {
	ItemID    string          `validate:"required"       json:"itemId"`
	Title     string          `validate:"required"       json:"title"`
	UnitPrice decimal.Decimal `validate:"required"       json:"unitPrice"`
	Quantity  int             `validate:"required,gte=1" json:"quantity"`
}

func (l LineRequest) Line() Line {
	return Line{
		ItemID:    l.ItemID,
		Title:     l.Title,
		UnitPrice: l.UnitPrice.InexactFloat64(),
		Quantity:  l.Quantity,
	}
}
