package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"quickbite/internal/errors"
	"quickbite/internal/httpx"
	"quickbite/internal/otel/trace"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := trace.Tracer.Start(r.Context(), "middleware RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c)
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				logger.Error().Err(err).Stack().Msg("recovered from panic")
				errors.HandleError(err, span)
				httpx.WriteJsonResponse(c, w, map[string]string{}, http.StatusInternalServerError,
					map[string]interface{}{
						"status":  "failed",
						"message": "Internal Server Error",
					})
			}
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
