package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/api/schema"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("The query parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errParameterInvalidType = func(location, name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    fmt.Sprintf("validation.%s.parameter.invalidType", location),
			Message: fmt.Sprintf("The %s parameter '%s' ('%s') could not be assigned to the required type (%s).", location, name, value, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errParameterNumberOutOfRange = func(location, name string, value, max uint64) *schema.Error {
		return &schema.Error{
			Type:    fmt.Sprintf("validation.%s.parameter.number.outOfRange", location),
			Message: fmt.Sprintf("The %s parameter '%s' is out of the required range (%d [given] > %d [max]).", location, name, value, max),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       0,
				"max":       max,
			},
		}
	}
)

// QueryNumber extracts and validates an unsigned integer out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, required bool, def, max uint64) (uint64, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}
	return parseNumber("query", key, value, max)
}

// PathNumber extracts and validates an unsigned integer out of the URL path parameters of the given request
func PathNumber(request *http.Request, key string, max uint64) (uint64, *schema.Error) {
	return parseNumber("path", key, chi.URLParam(request, key), max)
}

// PathUUID extracts and validates a UUID out of the URL path parameters of the given request
func PathUUID(request *http.Request, key string) (uuid.UUID, *schema.Error) {
	value := chi.URLParam(request, key)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errParameterInvalidType("path", key, value, "uuid")
	}
	return id, nil
}

func parseNumber(location, key, value string, max uint64) (uint64, *schema.Error) {
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errParameterInvalidType(location, key, value, "number")
	}
	if parsed > max {
		return 0, errParameterNumberOutOfRange(location, key, parsed, max)
	}
	return parsed, nil
}
