package order

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quickbite/internal/constants"
)

type Repository interface {
	Insert(c context.Context, order Order) (Order, error)
	FindByUserId(c context.Context, userId primitive.ObjectID) ([]Order, error)
}

type mongoRepository struct {
	orders *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{orders: db.Collection(constants.CollectionOrders)}
}

func (r *mongoRepository) Insert(c context.Context, order Order) (Order, error) {
	result, err := r.orders.InsertOne(c, order)
	if err != nil {
		return Order{}, fmt.Errorf("failed inserting order with error=%w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return Order{}, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	order.ID = id
	return order, nil
}

func (r *mongoRepository) FindByUserId(
	c context.Context,
	userId primitive.ObjectID,
) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.orders.Find(c, bson.M{"userId": userId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed finding orders with error=%w", err)
	}
	defer cursor.Close(c)

	orders := []Order{}
	if err = cursor.All(c, &orders); err != nil {
		return nil, fmt.Errorf("failed decoding orders with error=%w", err)
	}
	return orders, nil
}
