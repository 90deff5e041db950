package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Application error codes. They loosely map to HTTP status codes, but are
// transport-agnostic: the services only ever speak in these codes and it's up
// to ReturnError to translate them for the wire.
const (
	ECONFLICT     = "conflict"     // uniqueness violation, e.g. duplicate email
	EFORBIDDEN    = "forbidden"    // authenticated, but not allowed to mutate this resource
	EINTERNAL     = "internal"     // something unexpected, never the caller's fault
	EINVALID      = "invalid"      // malformed input or an unresolvable reference
	ENOTFOUND     = "not_found"    // referenced entity does not exist
	EUNAUTHORIZED = "unauthorized" // missing, invalid or expired credential
	EUNAVAILABLE  = "unavailable"  // underlying byte or record store failed
)

// Error is an application error. Code is one of the constants above and
// Message is safe to show to an API consumer.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not meant for end users.
func (e *Error) Error() string {
	return fmt.Sprintf("chirp error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps the application error code of any error.
// Non-application errors count as internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps the message of any error. Non-application errors get a
// generic message so internals don't leak to the client.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// errorStatusCodes maps application error codes to HTTP status codes.
var errorStatusCodes = map[string]int{
	ECONFLICT:     http.StatusConflict,
	EFORBIDDEN:    http.StatusForbidden,
	EINTERNAL:     http.StatusInternalServerError,
	EINVALID:      http.StatusBadRequest,
	ENOTFOUND:     http.StatusNotFound,
	EUNAUTHORIZED: http.StatusUnauthorized,
	EUNAVAILABLE:  http.StatusServiceUnavailable,
}

// StatusCode returns the HTTP status code for an application error code.
func StatusCode(code string) int {
	if status, ok := errorStatusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorResponse is the wire shape of a failed request.
type errorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// ReturnError writes an error to the response, translating its application
// error code to an HTTP status code. Internal errors additionally get logged,
// since their real message is hidden from the client.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL {
		LogError(r, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(code))
	json.NewEncoder(w).Encode(&errorResponse{
		Result:       false,
		ErrorType:    code,
		ErrorMessage: message,
	})
}

// LogError logs an error together with the request it occurred on.
func LogError(r *http.Request, err error) {
	log.Printf("[http] error: %s %s: %s", r.Method, r.URL.Path, err)
}
