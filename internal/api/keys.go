package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/skybi/bitflags/internal/api/schema"
	"github.com/skybi/bitflags/internal/api/validation"
	"github.com/skybi/bitflags/internal/apikey"
)

var errAPIKeyUnknownCapabilities = func(unknown apikey.Capabilities) *schema.Error {
	return &schema.Error{
		Type:    "apiKey.unknownCapabilities",
		Message: "The requested API key capabilities contain bits that do not map to a known capability.",
		Details: map[string]any{
			"unknown": unknown,
		},
	}
}

// EndpointGetKeyInfo handles the 'GET /v1/key_info' endpoint
func (service *Service) EndpointGetKeyInfo(writer http.ResponseWriter, request *http.Request) {
	key, _ := keyFromContext(request.Context())
	cpy := *key
	cpy.UsedQuota = service.QuotaTracker.Get(key)
	service.writer.WriteJSON(writer, cpy)
}

type endpointCreateAPIKeyRequestPayload struct {
	Description  *string              `json:"description"`
	Quota        *int64               `json:"quota" required:"true"`
	Capabilities *apikey.Capabilities `json:"capabilities" required:"true"`
}

type endpointCreateAPIKeyResponse struct {
	*apikey.Key
	Raw string `json:"key"`
}

// EndpointCreateAPIKey handles the 'POST /v1/keys' endpoint
func (service *Service) EndpointCreateAPIKey(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateAPIKeyRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	if unknown := apikey.AllCapabilities().Missing(*payload.Capabilities); !unknown.IsEmpty() {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errAPIKeyUnknownCapabilities(unknown))
		return
	}
	if *payload.Quota < 0 {
		*payload.Quota = -1
	}
	description := ""
	if payload.Description != nil {
		description = apikey.SanitizeDescription(*payload.Description)
	}

	key, raw, err := service.Storage.APIKeys().Create(request.Context(), &apikey.Create{
		Description:  description,
		Quota:        *payload.Quota,
		Capabilities: *payload.Capabilities,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	log.Info().Str("key_id", key.ID.String()).Strs("capabilities", key.Capabilities.Names()).Msg("created API key")
	service.writer.WriteJSONCode(writer, http.StatusCreated, &endpointCreateAPIKeyResponse{
		Key: key,
		Raw: raw,
	})
}

// EndpointDeleteAPIKey handles the 'DELETE /v1/keys/{id}' endpoint
func (service *Service) EndpointDeleteAPIKey(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathUUID(request, "id")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	key, err := service.Storage.APIKeys().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if key == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	if err := service.Storage.APIKeys().Delete(request.Context(), id); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.QuotaTracker.Forget(id)

	log.Info().Str("key_id", id.String()).Msg("deleted API key")
	service.writer.WriteNoContent(writer)
}
