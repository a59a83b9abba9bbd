package order

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "quickbite/internal/errors"
	"quickbite/internal/httpx"
	"quickbite/internal/log"
	"quickbite/internal/otel/trace"
)

type Controller struct {
	service *Service
}

func AttachController(router *mux.Router, service *Service) {
	controller := Controller{service: service}
	router.HandleFunc("/orders", controller.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{userId}", controller.FindByUserId).Methods(http.MethodGet)
}

func (o Controller) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "OrderController CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateOrder").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := CreateOrderRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{
				"success": false,
				"message": "address, phone, userId, items, and total are required",
			})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{
				"success": false,
				"message": "address, phone, userId, items, and total are required",
			})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	c = logger.WithContext(c)
	created, err := o.service.CreateOrder(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{
				"success": false,
				"message": "failed to create order",
			})
		return
	}
	logger.Info().Msg("created order")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusCreated,
		map[string]interface{}{
			"success": true,
			"order":   created,
		})
}

func (o Controller) FindByUserId(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "OrderController FindByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindByUserId").
		Logger()
	c = logger.WithContext(c)

	userId := mux.Vars(r)["userId"]
	logger = logger.With().Str(log.KeyUserID, userId).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := o.service.FindByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{
				"success": false,
				"message": "failed to fetch orders",
			})
		return
	}
	logger.Info().Msg("found orders")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, orders)
}
