package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	inErrors "quickbite/internal/errors"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

// fakeRepository keeps users in memory and enforces the unique email
// constraint the document store index provides.
type fakeRepository struct {
	users map[primitive.ObjectID]User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[primitive.ObjectID]User{}}
}

func (r *fakeRepository) FindByEmail(c context.Context, email string) (User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, inErrors.ErrUserNotFound
}

func (r *fakeRepository) FindById(c context.Context, id primitive.ObjectID) (User, error) {
	user, ok := r.users[id]
	if !ok {
		return User{}, inErrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeRepository) Insert(c context.Context, user User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, inErrors.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeRepository) UpdateCart(
	c context.Context,
	id primitive.ObjectID,
	lines []CartLine,
) error {
	user, ok := r.users[id]
	if !ok {
		return inErrors.ErrUserNotFound
	}
	user.Cart = lines
	r.users[id] = user
	return nil
}

func (r *fakeRepository) ClearCart(c context.Context, id primitive.ObjectID) error {
	return r.UpdateCart(c, id, []CartLine{})
}

var registerRequest = RegisterRequest{
	FirstName:       "Asha",
	LastName:        "Raman",
	MobileNo:        "9876543210",
	Email:           "asha@example.com",
	Address:         "221B Baker Street",
	Password:        "hunter2!hunter2!",
	ConfirmPassword: "hunter2!hunter2!",
}

func TestRegister(t *testing.T) {
	t.Run("given new email should insert user with hashed password", func(t *testing.T) {
		repository := newFakeRepository()
		service := NewService(repository)

		userId, err := service.Register(testContext(), registerRequest)

		require.NoError(t, err)
		assert.NotEmpty(t, userId)

		stored, err := repository.FindByEmail(testContext(), registerRequest.Email)
		require.NoError(t, err)
		assert.NotEqual(t, registerRequest.Password, stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.Password),
			[]byte(registerRequest.Password),
		))
		assert.NotNil(t, stored.Cart)
		assert.Empty(t, stored.Cart)
	})

	t.Run("given taken email should return ErrEmailTaken", func(t *testing.T) {
		repository := newFakeRepository()
		service := NewService(repository)
		_, err := service.Register(testContext(), registerRequest)
		require.NoError(t, err)

		_, err = service.Register(testContext(), registerRequest)

		assert.ErrorIs(t, err, inErrors.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	t.Run("given valid credentials should return password-stripped profile", func(t *testing.T) {
		repository := newFakeRepository()
		service := NewService(repository)
		userId, err := service.Register(testContext(), registerRequest)
		require.NoError(t, err)

		profile, err := service.Login(testContext(), LoginRequest{
			Email:    registerRequest.Email,
			Password: registerRequest.Password,
		})

		require.NoError(t, err)
		assert.Equal(t, userId, profile.ID)
		assert.Equal(t, registerRequest.Email, profile.Email)
		assert.Equal(t, registerRequest.FirstName, profile.FirstName)
	})

	t.Run("given wrong password should return ErrInvalidCredentials", func(t *testing.T) {
		repository := newFakeRepository()
		service := NewService(repository)
		_, err := service.Register(testContext(), registerRequest)
		require.NoError(t, err)

		_, err = service.Login(testContext(), LoginRequest{
			Email:    registerRequest.Email,
			Password: "wrong password",
		})

		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	})

	t.Run("given unknown email should return ErrInvalidCredentials", func(t *testing.T) {
		service := NewService(newFakeRepository())

		_, err := service.Login(testContext(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter2!hunter2!",
		})

		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials,
			"unknown email and wrong password should be indistinguishable")
	})
}

func TestUpdateCart(t *testing.T) {
	t.Run("given existing user should replace the cart mirror", func(t *testing.T) {
		repository := newFakeRepository()
		service := NewService(repository)
		userId, err := service.Register(testContext(), registerRequest)
		require.NoError(t, err)

		err = service.UpdateCart(testContext(), userId, UpdateCartRequest{
			Cart: []CartLineRequest{
				{ItemID: "item-1", Title: "Chicken Zinger Burger", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
			},
		})

		require.NoError(t, err)
		id, err := primitive.ObjectIDFromHex(userId)
		require.NoError(t, err)
		stored, err := repository.FindById(testContext(), id)
		require.NoError(t, err)
		require.Len(t, stored.Cart, 1)
		assert.Equal(t, "item-1", stored.Cart[0].ItemID)
		assert.Equal(t, 2, stored.Cart[0].Quantity)
		assert.Equal(t, 100.0, stored.Cart[0].UnitPrice)
	})

	t.Run("given malformed userId should return an error", func(t *testing.T) {
		service := NewService(newFakeRepository())

		err := service.UpdateCart(testContext(), "not-an-object-id", UpdateCartRequest{})

		assert.Error(t, err)
	})
}
