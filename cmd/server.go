package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"quickbite/internal/config"
	"quickbite/internal/constants"
	"quickbite/internal/httpx"
	"quickbite/internal/infra"
	"quickbite/internal/log"
	"quickbite/internal/menu"
	"quickbite/internal/middleware"
	"quickbite/internal/order"
	"quickbite/internal/otel"
	"quickbite/internal/user"
)

func RunServer(c context.Context) {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppName)).
		With().
		Str(log.KeyAppName, constants.AppName).
		Str(log.KeyTag, "main RunServer").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "init config").
		Msg("initializing config")
	cfg := config.InitConfig(c, constants.AppName)
	logger.Info().
		Str(log.KeyProcess, "init config").
		Msg("initialized config")

	logger.Info().
		Str(log.KeyProcess, "init otel sdk").
		Msg("initializing otel sdk")
	otelEndpoint := fmt.Sprintf("%s:%d", cfg.Otel.Host, cfg.Otel.Port)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppName, otelEndpoint)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "init otel sdk").
			Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().
		Str(log.KeyProcess, "init otel sdk").
		Msg("initialized otel sdk")

	logger.Info().
		Str(log.KeyProcess, "init database").
		Msg("initializing database")
	db := infra.NewDatabaseClient(c, cfg.Database)
	logger.Info().
		Str(log.KeyProcess, "init database").
		Msg("initialized database")

	logger.Info().
		Str(log.KeyProcess, "init cache").
		Msg("initializing cache")
	cache := infra.NewCacheClient(c, cfg.Cache)
	logger.Info().
		Str(log.KeyProcess, "init cache").
		Msg("initialized cache")

	logger.Info().
		Str(log.KeyProcess, "init services").
		Msg("initializing services")
	menuService := menu.NewService(menu.NewRepository(db), cache)
	userRepository := user.NewRepository(db)
	userService := user.NewService(userRepository)
	orderService := order.NewService(order.NewRepository(db), userRepository)
	logger.Info().
		Str(log.KeyProcess, "init services").
		Msg("initialized services")

	logger.Info().
		Str(log.KeyProcess, "init router").
		Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(constants.AppName))
	router.Use(middleware.Logging)
	router.Use(middleware.RecoverPanic)
	router.Use(middleware.Metrics)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	menu.AttachController(api, menuService)
	user.AttachController(api, userService)
	order.AttachController(api, orderService)
	logger.Info().
		Str(log.KeyProcess, "init router").
		Msg("initialized router")

	logger.Info().
		Str(log.KeyProcess, "start server").
		Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().
		Str(log.KeyProcess, "start server").
		Msg("initialized server")

	go func() {
		logger.Info().
			Str(log.KeyProcess, "start server").
			Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Str(log.KeyProcess, "start server").
				Msgf("error=%s occured while server is running", err.Error())
		}
	}()

	<-c.Done()
	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("received interruption signal, shutting down")

	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("shutting down otel")
	err = otel.ShutdownOtel(c, otelShutdowns)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "shutdown server").
			Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("shutdown otel")

	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("shutting down http server")
	err = server.Shutdown(c)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "shutdown server").
			Msgf("failed shutting down http server with error=%s", err.Error())
	}
	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("shutdown http server")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJsonResponse(r.Context(), w, map[string]string{}, http.StatusOK,
		map[string]interface{}{
			"status":    "OK",
			"message":   "server is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
}
