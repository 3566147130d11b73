package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// maxBodySize is the maximum amount of bytes read from a request body
const maxBodySize = 1 << 20

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errRequestBodyParameterNumberOutOfRange = func(name string, value any, min, max int64) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.number.outOfRange",
			Message: fmt.Sprintf("The request body parameter '%s' is out of the required range (%d..%d).", name, min, max),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Struct fields support the tags `required:"true"`, `min:"<int>"` and `max:"<int>"`; optional fields have to be
// pointers.
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		}
		return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
	}

	ref := reflect.ValueOf(target).Elem()
	if ref.Kind() != reflect.Struct {
		return nil, nil, errors.New("illegal call to UnmarshalBody with non-struct type parameter")
	}
	return target, validateStruct("", ref), nil
}

func validateStruct(fieldPrefix string, ref reflect.Value) []*Error {
	typ := ref.Type()
	var errs []*Error

	for i := 0; i < typ.NumField(); i++ {
		fieldDef := typ.Field(i)
		if !fieldDef.IsExported() {
			continue
		}
		fieldName := fieldPrefix + getFieldName(fieldDef)
		field := ref.Field(i)

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if strings.EqualFold(fieldDef.Tag.Get("required"), "true") {
					errs = append(errs, errRequestBodyParameterMissing(fieldName))
				}
				continue
			}
			field = field.Elem()
		}

		lower := parseBound(fieldDef.Tag.Get("min"), math.MinInt64)
		upper := parseBound(fieldDef.Tag.Get("max"), math.MaxInt64)

		switch {
		case field.CanInt():
			if val := field.Int(); val < lower || val > upper {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, lower, upper))
			}
		case field.CanUint():
			val := field.Uint()
			if (lower > 0 && val < uint64(lower)) || (upper < math.MaxInt64 && (upper < 0 || val > uint64(upper))) {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, lower, upper))
			}
		case field.Kind() == reflect.Struct && !reflect.PointerTo(field.Type()).Implements(unmarshalerType):
			errs = append(errs, validateStruct(fieldName+".", field)...)
		}
	}

	return errs
}

func parseBound(raw string, def int64) int64 {
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return val
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
