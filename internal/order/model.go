package order

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusOnTheWay  = "on-the-way"
	StatusDelivered = "delivered"
)

// Order is an immutable snapshot taken at checkout time. Lines and total are
// never recomputed from live menu data after creation.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"   json:"-"`
	UserID          primitive.ObjectID `bson:"userId"          json:"-"`
	Lines           []Line             `bson:"items"           json:"items"`
	Total           float64            `bson:"total"           json:"total"`
	DeliveryAddress string             `bson:"deliveryAddress" json:"deliveryAddress"`
	Phone           string             `bson:"phone"           json:"phone"`
	Status          string             `bson:"status"          json:"status"`
	CreatedAt       time.Time          `bson:"createdAt"       json:"createdAt"`
}

type Line struct {
	ItemID    string  `bson:"itemId"    json:"itemId"`
	Title     string  `bson:"title"     json:"title"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity  int     `bson:"quantity"  json:"quantity"`
}

type LineResponse struct {
	ItemID    string          `json:"itemId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type Response struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Lines           []LineResponse  `json:"items"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (o Order) Response() Response {
	lines := make([]LineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = LineResponse{
			ItemID:    line.ItemID,
			Title:     line.Title,
			UnitPrice: decimal.NewFromFloat(line.UnitPrice),
			Quantity:  line.Quantity,
		}
	}
	return Response{
		ID:              o.ID.Hex(),
		UserID:          o.UserID.Hex(),
		Lines:           lines,
		Total:           decimal.NewFromFloat(o.Total),
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}
