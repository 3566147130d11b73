package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/skybi/bitflags/internal/api/schema"
	"github.com/skybi/bitflags/internal/apikey"
)

type contextKey struct{}

var keyContextKey = contextKey{}

var (
	errAuthInsufficientCapabilities = func(provided, required apikey.Capabilities) *schema.Error {
		return &schema.Error{
			Type:    "access.insufficientKeyCapabilities",
			Message: "The specified API key lacks at least one capability required for this action.",
			Details: map[string]any{
				"provided": provided.Names(),
				"required": required.Names(),
				"missing":  provided.Missing(required).Names(),
			},
		}
	}
	errAuthQuotaExceeded = func(quota int64) *schema.Error {
		return &schema.Error{
			Type:    "access.quotaExceeded",
			Message: fmt.Sprintf("The specified API key has exceeded its quota of %d requests.", quota),
			Details: map[string]any{
				"quota": quota,
			},
		}
	}
)

// keyFromContext extracts the API key injected by MiddlewareVerifyKey
func keyFromContext(ctx context.Context) (*apikey.Key, bool) {
	key, ok := ctx.Value(keyContextKey).(*apikey.Key)
	return key, ok
}

// MiddlewareVerifyKey makes sure that the requesting client has provided a valid API key.
// Additionally, it injects the API key object itself into the request context.
func (service *Service) MiddlewareVerifyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		rawKey, ok := strings.CutPrefix(request.Header.Get("Authorization"), "Bearer ")
		rawKey = strings.TrimSpace(rawKey)
		if !ok || rawKey == "" {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		key, err := service.Storage.APIKeys().GetByRawKey(request.Context(), rawKey)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if key == nil {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), keyContextKey, key)))
	})
}

// MiddlewareVerifyKeyQuota makes sure that the provided API key has quota left and consumes one unit of it
func (service *Service) MiddlewareVerifyKeyQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key, ok := keyFromContext(request.Context())
		if !ok {
			service.writer.WriteInternalError(writer, errors.New("API key quota check without API key verification"))
			return
		}

		if !service.QuotaTracker.HasQuotaLeft(key) {
			service.writer.WriteErrors(writer, http.StatusTooManyRequests, errAuthQuotaExceeded(key.Quota))
			return
		}
		service.QuotaTracker.Accumulate(key)

		next.ServeHTTP(writer, request)
	})
}

// MiddlewareVerifyKeyCapabilities makes sure that the provided API key has a set of required capabilities
func (service *Service) MiddlewareVerifyKeyCapabilities(caps ...apikey.Capability) func(http.Handler) http.Handler {
	required := apikey.EmptyCapabilities.With(caps...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key, ok := keyFromContext(request.Context())
			if !ok {
				service.writer.WriteInternalError(writer, errors.New("API key capability check without API key verification"))
				return
			}

			if !key.Capabilities.Has(caps...) {
				service.writer.WriteErrors(writer, http.StatusForbidden, errAuthInsufficientCapabilities(key.Capabilities, required))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
