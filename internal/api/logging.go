package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func middlewareAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(wrapped, request)
		log.Debug().
			Str("request_id", middleware.GetReqID(request.Context())).
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Int("status", wrapped.Status()).
			Int("bytes", wrapped.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}
