package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"quickbite/internal/constants"
	inErrors "quickbite/internal/errors"
)

type Repository interface {
	FindByEmail(c context.Context, email string) (User, error)
	FindById(c context.Context, id primitive.ObjectID) (User, error)
	Insert(c context.Context, user User) (primitive.ObjectID, error)
	UpdateCart(c context.Context, id primitive.ObjectID, lines []CartLine) error
	ClearCart(c context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	users *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{users: db.Collection(constants.CollectionUsers)}
}

func (r *mongoRepository) FindByEmail(c context.Context, email string) (User, error) {
	user := User{}
	err := r.users.FindOne(c, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, inErrors.ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed finding user by email with error=%w", err)
	}
	return user, nil
}

func (r *mongoRepository) FindById(c context.Context, id primitive.ObjectID) (User, error) {
	user := User{}
	err := r.users.FindOne(c, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, inErrors.ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed finding user by id with error=%w", err)
	}
	return user, nil
}

func (r *mongoRepository) Insert(c context.Context, user User) (primitive.ObjectID, error) {
	result, err := r.users.InsertOne(c, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, inErrors.ErrEmailTaken
		}
		return primitive.NilObjectID, fmt.Errorf("failed inserting user with error=%w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

func (r *mongoRepository) UpdateCart(
	c context.Context,
	id primitive.ObjectID,
	lines []CartLine,
) error {
	result, err := r.users.UpdateOne(c, bson.M{"_id": id}, bson.M{"$set": bson.M{"cart": lines}})
	if err != nil {
		return fmt.Errorf("failed updating cart mirror with error=%w", err)
	}
	if result.MatchedCount == 0 {
		return inErrors.ErrUserNotFound
	}
	return nil
}

func (r *mongoRepository) ClearCart(c context.Context, id primitive.ObjectID) error {
	return r.UpdateCart(c, id, []CartLine{})
}
