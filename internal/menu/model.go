package menu

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is the persisted menu document. Amount is stored as a plain number in
// the document store and exposed as a decimal on the wire.
type Item struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Category string             `bson:"category"      json:"category"`
	Title    string             `bson:"title"         json:"title"`
	Image    string             `bson:"image"         json:"image"`
	Type     string             `bson:"type"          json:"type"`
	Items    string             `bson:"items"         json:"items"`
	Amount   float64            `bson:"amount"        json:"amount"`
}

type Offer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Title     string             `bson:"title"         json:"title"`
	Desc      string             `bson:"desc"          json:"desc"`
	ValidTill string             `bson:"valid_till"    json:"valid_till"`
	Terms     []string           `bson:"terms"         json:"terms"`
	Image     string             `bson:"image"         json:"image"`
}

type ItemResponse struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Title    string          `json:"title"`
	Image    string          `json:"image"`
	Type     string          `json:"type"`
	Items    string          `json:"items"`
	Amount   decimal.Decimal `json:"amount"`
}

type OfferResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Desc      string   `json:"desc"`
	ValidTill string   `json:"valid_till"`
	Terms     []string `json:"terms"`
	Image     string   `json:"image"`
}

func (i Item) Response() ItemResponse {
	return ItemResponse{
		ID:       i.ID.Hex(),
		Category: i.Category,
		Title:    i.Title,
		Image:    i.Image,
		Type:     i.Type,
		Items:    i.Items,
		Amount:   decimal.NewFromFloat(i.Amount),
	}
}

func (o Offer) Response() OfferResponse {
	return OfferResponse{
		ID:        o.ID.Hex(),
		Title:     o.Title,
		Desc:      o.Desc,
		ValidTill: o.ValidTill,
		Terms:     o.Terms,
		Image:     o.Image,
	}
}
