package menu

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"quickbite/internal/errors"
	"quickbite/internal/httpx"
	"quickbite/internal/log"
	"quickbite/internal/otel/trace"
)

type Controller struct {
	service *Service
}

func AttachController(router *mux.Router, service *Service) {
	controller := Controller{service: service}
	router.HandleFunc("/menu", controller.FindMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/offers", controller.FindOffers).Methods(http.MethodGet)
}

func (m Controller) FindMenuItems(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "MenuController FindMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MenuController FindMenuItems").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding menu items").Logger()
	logger.Info().Msg("finding menu items")
	c = logger.WithContext(c)
	items, err := m.service.FindMenuItems(c)
	if err != nil {
		err = fmt.Errorf("failed finding menu items with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{
				"status":  "error",
				"message": "failed fetching menu",
			})
		return
	}
	logger.Info().Msg("found menu items")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, items)
}

func (m Controller) FindOffers(w http.ResponseWriter, r *http.Request) {
	c, span := trace.Tracer.Start(r.Context(), "MenuController FindOffers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MenuController FindOffers").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding offers").Logger()
	logger.Info().Msg("finding offers")
	c = logger.WithContext(c)
	offers, err := m.service.FindOffers(c)
	if err != nil {
		err = fmt.Errorf("failed finding offers with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
			map[string]interface{}{
				"status":  "error",
				"message": "failed fetching offers",
			})
		return
	}
	logger.Info().Msg("found offers")

	httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusOK, offers)
}
