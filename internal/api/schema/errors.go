package schema

// Generic errors shared by every endpoint.
// Their Details stay nil; the Writer renders them as an empty object.
var (
	ErrInternal         = &Error{Type: "generic.internal", Message: "An internal error occurred."}
	ErrNotFound         = &Error{Type: "generic.notFound", Message: "Resource not found."}
	ErrMethodNotAllowed = &Error{Type: "generic.methodNotAllowed", Message: "Method not allowed."}
	ErrUnauthorized     = &Error{Type: "access.unauthorized", Message: "A valid API key has to be provided as a bearer token."}
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error is a single machine-readable error.
// Type is a dot-separated identifier clients can switch on; Message is meant for humans.
type Error struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func (err *Error) Error() string {
	return err.Type + ": " + err.Message
}
