package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/skybi/bitflags/internal/api/schema"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/apikey/quota"
	"github.com/skybi/bitflags/internal/config"
	"github.com/skybi/bitflags/internal/storage"
)

// Service represents the register API service
type Service struct {
	server *http.Server

	Config       *config.Config
	Storage      storage.Driver
	QuotaTracker *quota.Tracker

	writer *schema.Writer

	// mutations serializes read-modify-write cycles on registers
	mutations sync.Mutex
}

// Handler builds the HTTP router serving the register API
func (service *Service) Handler() http.Handler {
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the register API experienced an unexpected error")
		},
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RedirectSlashes)
	router.Use(middlewareAccessLog)
	router.Use(middleware.Recoverer)
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	service.registerEndpoints(router)
	return router
}

// Startup starts up the register API.
// Errors other than http.ErrServerClosed are sent to errs.
func (service *Service) Startup(errs chan<- error) {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.Handler(),
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown gracefully shuts down the register API
func (service *Service) Shutdown(ctx context.Context) error {
	if service.server == nil {
		return nil
	}
	err := service.server.Shutdown(ctx)
	service.server = nil
	return err
}

func (service *Service) registerEndpoints(router chi.Router) {
	authenticated := router.With(service.MiddlewareVerifyKey, service.MiddlewareVerifyKeyQuota)

	authenticated.Get("/v1/key_info", service.EndpointGetKeyInfo)

	keys := authenticated.With(service.MiddlewareVerifyKeyCapabilities(apikey.CapabilityManageKeys))
	keys.Post("/v1/keys", service.EndpointCreateAPIKey)
	keys.Delete("/v1/keys/{id}", service.EndpointDeleteAPIKey)

	read := authenticated.With(service.MiddlewareVerifyKeyCapabilities(apikey.CapabilityReadRegisters))
	read.Get("/v1/registers", service.EndpointGetRegisters)
	read.Get("/v1/registers/{id}", service.EndpointGetRegister)
	read.Get("/v1/registers/{id}/bits/{pos}", service.EndpointGetRegisterBit)
	read.Get("/v1/registers/{id}/range", service.EndpointGetRegisterRange)

	write := authenticated.With(service.MiddlewareVerifyKeyCapabilities(apikey.CapabilityWriteRegisters))
	write.Post("/v1/registers", service.EndpointCreateRegister)
	write.Delete("/v1/registers/{id}", service.EndpointDeleteRegister)
	write.Put("/v1/registers/{id}/bits/{pos}", service.EndpointSetRegisterBit)
	write.Put("/v1/registers/{id}/range", service.EndpointSetRegisterRange)
	write.Post("/v1/registers/{id}/add", service.EndpointAddToRegister)
	write.Post("/v1/registers/{id}/clear", service.EndpointClearRegister)
}
