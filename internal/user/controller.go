package user

import (
	"encoding/json"
	"errors"
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
	router.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
	router.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/{userId}/cart", controller.UpdateCart).Methods(http.MethodPut)
}

func (u Controller) Login(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Login").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := LoginRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{"message": "request body is invalid"})
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
			map[string]interface{}{"message": "email and password are required"})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "login").Logger()
	logger.Info().Msg("login")
	c = logger.WithContext(c)
	profile, err := u.service.Login(c, reqBody)
	if err != nil {
		if errors.Is(err, inErrors.ErrInvalidCredentials) {
			logger.Info().Msg("invalid credentials")
			httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusUnauthorized,
				map[string]interface{}{"message": inErrors.ErrInvalidCredentials.Error()})
			return
		}
		err = fmt.Errorf("failed login with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{"message": "internal server error"})
		return
	}
	logger.Info().Msg("login success")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK,
		map[string]interface{}{
			"message": "login successful",
			"user":    profile,
		})
}

func (u Controller) Register(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "UserController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Register").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := RegisterRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{"message": "request body is invalid"})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	if reqBody.Password != reqBody.ConfirmPassword {
		logger.Info().Msg("passwords do not match")
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{"message": inErrors.ErrPasswordMismatch.Error()})
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{"message": "request body is invalid"})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "registering user").Logger()
	logger.Info().Msg("registering user")
	c = logger.WithContext(c)
	userId, err := u.service.Register(c, reqBody)
	if err != nil {
		if errors.Is(err, inErrors.ErrEmailTaken) {
			logger.Info().Msg("email already in use")
			httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
				map[string]interface{}{"message": inErrors.ErrEmailTaken.Error()})
			return
		}
		err = fmt.Errorf("failed registering user with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{"message": "internal server error"})
		return
	}
	logger.Info().Msg("registered user")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusCreated,
		map[string]interface{}{
			"message": "user registered successfully",
			"userId":  userId,
		})
}

func (u Controller) UpdateCart(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "UserController UpdateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController UpdateCart").
		Logger()
	c = logger.WithContext(c)

	userId := mux.Vars(r)["userId"]
	logger = logger.With().Str(log.KeyUserID, userId).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := UpdateCartRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusBadRequest,
			map[string]interface{}{"success": false, "message": "user id and cart are required"})
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
			map[string]interface{}{"success": false, "message": "user id and cart are required"})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating cart mirror").Logger()
	logger.Info().Msg("updating cart mirror")
	c = logger.WithContext(c)
	err := u.service.UpdateCart(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating cart mirror with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{"success": false, "message": "failed to update cart"})
		return
	}
	logger.Info().Msg("updated cart mirror")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK,
		map[string]interface{}{"success": true})
}
