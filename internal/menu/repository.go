package menu

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"quickbite/internal/constants"
)

type Repository interface {
	FindMenuItems(c context.Context) ([]Item, error)
	FindOffers(c context.Context) ([]Offer, error)
	InsertMenuItems(c context.Context, items []Item) (int64, error)
	InsertOffers(c context.Context, offers []Offer) (int64, error)
	CountMenuItems(c context.Context) (int64, error)
}

type mongoRepository struct {
	menu   *mongo.Collection
	offers *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		menu:   db.Collection(constants.CollectionMenu),
		offers: db.Collection(constants.CollectionOffers),
	}
}

func (r *mongoRepository) FindMenuItems(c context.Context) ([]Item, error) {
	cursor, err := r.menu.Find(c, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed finding menu items with error=%w", err)
	}
	defer cursor.Close(c)

	items := []Item{}
	if err = cursor.All(c, &items); err != nil {
		return nil, fmt.Errorf("failed decoding menu items with error=%w", err)
	}
	return items, nil
}

func (r *mongoRepository) FindOffers(c context.Context) ([]Offer, error) {
	cursor, err := r.offers.Find(c, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed finding offers with error=%w", err)
	}
	defer cursor.Close(c)

	offers := []Offer{}
	if err = cursor.All(c, &offers); err != nil {
		return nil, fmt.Errorf("failed decoding offers with error=%w", err)
	}
	return offers, nil
}

func (r *mongoRepository) InsertMenuItems(c context.Context, items []Item) (int64, error) {
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = item
	}
	result, err := r.menu.InsertMany(c, docs)
	if err != nil {
		return 0, fmt.Errorf("failed inserting menu items with error=%w", err)
	}
	return int64(len(result.InsertedIDs)), nil
}

func (r *mongoRepository) InsertOffers(c context.Context, offers []Offer) (int64, error) {
	docs := make([]interface{}, len(offers))
	for i, offer := range offers {
		docs[i] = offer
	}
	result, err := r.offers.InsertMany(c, docs)
	if err != nil {
		return 0, fmt.Errorf("failed inserting offers with error=%w", err)
	}
	return int64(len(result.InsertedIDs)), nil
}

func (r *mongoRepository) CountMenuItems(c context.Context) (int64, error) {
	count, err := r.menu.CountDocuments(c, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed counting menu items with error=%w", err)
	}
	return count, nil
}
