package schema

import (
	"encoding/json"
	"net/http"
)

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value any) {
	val, err := json.Marshal(value)
	if err != nil {
		writer.WriteInternalError(rw, err)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_, _ = rw.Write(val)
}

// WriteJSON writes the JSON representation of value to the given response writer.
// This method sends 200 OK as the HTTP status code; use WriteJSONCode to use a different one.
func (writer *Writer) WriteJSON(rw http.ResponseWriter, value any) {
	writer.WriteJSONCode(rw, http.StatusOK, value)
}

// WriteNoContent sends an empty 204 No Content response
func (writer *Writer) WriteNoContent(rw http.ResponseWriter) {
	rw.WriteHeader(http.StatusNoContent)
}

// WriteErrors sends an error response
func (writer *Writer) WriteErrors(rw http.ResponseWriter, code int, errors ...*Error) {
	if errors == nil {
		errors = []*Error{}
	}
	response := &ErrorResponse{
		Status: code,
		Errors: errors,
	}
	for i, err := range response.Errors {
		if err.Details == nil {
			// The shared generic errors must not be mutated
			cpy := *err
			cpy.Details = map[string]any{}
			response.Errors[i] = &cpy
		}
	}
	writer.WriteJSONCode(rw, code, response)
}

// WriteInternalError processes an internal server error and writes it to the response
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	if writer.InternalErrorHook != nil {
		writer.InternalErrorHook(err)
	}
	writer.WriteErrors(rw, http.StatusInternalServerError, ErrInternal)
}
