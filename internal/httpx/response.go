package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"quickbite/internal/otel/trace"
)

// WriteJsonResponse writes body as JSON with the given status code. body may be
// a map, a struct, or a bare slice; the storefront reads return bare arrays.
func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	statusCode int,
	body interface{},
) {
	c, span := trace.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c)

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error().
			Err(err).
			Msgf("failed encoding response body with error=%s", err.Error())
		return
	}
}
