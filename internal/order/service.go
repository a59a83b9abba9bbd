package order

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quickbite/internal/errors"
	"quickbite/internal/log"
	"quickbite/internal/otel/trace"
)

// CartMirror is the slice of the user store the order flow needs: after an
// order is created the server-side cart mirror for that user is reset.
type CartMirror interface {
	ClearCart(c context.Context, userId primitive.ObjectID) error
}

type Service struct {
	repository Repository
	carts      CartMirror
}

func NewService(repository Repository, carts CartMirror) *Service {
	return &Service{repository: repository, carts: carts}
}

// CreateOrder inserts the checkout snapshot and resets the user's cart mirror.
// The mirror reset is best-effort: the order is the durable fact, and the
// client clears its own cart on acknowledgment.
func (s *Service) CreateOrder(c context.Context, param CreateOrderRequest) (Response, error) {
	c, span := trace.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, param.UserID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating userId").Logger()
	logger.Info().Msg("validating userId")
	userId, err := primitive.ObjectIDFromHex(param.UserID)
	if err != nil {
		err = fmt.Errorf("failed parsing userId=%s with error=%w", param.UserID, err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Response{}, err
	}
	logger.Info().Msg("validated userId")

	logger = logger.With().Str(log.KeyProcess, "snapshotting order lines").Logger()
	logger.Info().Msg("snapshotting order lines")
	span.AddEvent("snapshotting order lines")
	lines := make([]Line, len(param.Items))
	for i, item := range param.Items {
		lines[i] = item.Line()
	}
	span.AddEvent("snapshotted order lines")
	logger.Info().Msg("snapshotted order lines")

	logger = logger.With().Str(log.KeyProcess, "inserting order to database").Logger()
	logger.Info().Msg("inserting order to database")
	order, err := s.repository.Insert(c, Order{
		UserID:          userId,
		Lines:           lines,
		Total:           param.Total.InexactFloat64(),
		DeliveryAddress: param.Address,
		Phone:           param.Phone,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order to database with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Response{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.Hex()).Logger()
	logger.Info().Msg("inserted order to database")

	logger = logger.With().Str(log.KeyProcess, "resetting cart mirror").Logger()
	logger.Info().Msg("resetting cart mirror")
	err = s.carts.ClearCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed resetting cart mirror with error=%w", err)
		errors.HandleError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("reset cart mirror")
	}

	return order.Response(), nil
}

// FindByUserId returns the user's orders newest first. An empty result is a
// valid state, not an error.
func (s *Service) FindByUserId(c context.Context, rawUserId string) ([]Response, error) {
	c, span := trace.Tracer.Start(c, "OrderService FindByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindByUserId").
		Str(log.KeyUserID, rawUserId).
		Logger()

	userId, err := primitive.ObjectIDFromHex(rawUserId)
	if err != nil {
		err = fmt.Errorf("failed parsing userId=%s with error=%w", rawUserId, err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := s.repository.FindByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Int(log.KeyOrders, len(orders)).Logger()
	logger.Info().Msg("found orders")

	responses := make([]Response, len(orders))
	for i, order := range orders {
		responses[i] = order.Response()
	}
	return responses, nil
}
