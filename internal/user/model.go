package user

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted user document. Cart holds the server-side mirror of
// the client cart, last-write-wins.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName"     json:"firstName"`
	LastName  string             `bson:"lastName"      json:"lastName"`
	MobileNo  string             `bson:"mobileNo"      json:"mobileNo"`
	Email     string             `bson:"email"         json:"email"`
	Address   string             `bson:"address"       json:"address"`
	Password  string             `bson:"password"      json:"-"`
	Cart      []CartLine         `bson:"cart"          json:"cart,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

type CartLine struct {
	ItemID    string  `bson:"itemId"    json:"itemId"`
	Title     string  `bson:"title"     json:"title"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity  int     `bson:"quantity"  json:"quantity"`
}

// Profile is the password-stripped view returned by login.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	MobileNo  string    `json:"mobileNo"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		MobileNo:  u.MobileNo,
		Email:     u.Email,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CartLineRequest struct {
	ItemID    string          `validate:"required"       json:"itemId"`
	Title     string          `validate:"required"       json:"title"`
	UnitPrice decimal.Decimal `validate:"required"       json:"unitPrice"`
	Quantity  int             `validate:"required,gte=1" json:"quantity"`
}

func (l CartLineRequest) Line() CartLine {
	return CartLine{
		ItemID:    l.ItemID,
		Title:     l.Title,
		UnitPrice: l.UnitPrice.InexactFloat64(),
		Quantity:  l.Quantity,
	}
}
