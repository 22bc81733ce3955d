package records

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass labels a failed retrieval for metrics and diagnostics.
// Every class is handled the same way by Retrieve.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassUnexpected represents any other non-200 status (1xx, 2xx, 3xx).
	ErrorClassUnexpected ErrorClass = "unexpected"

	// ErrorClassNetwork represents requests that never completed.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents 200 responses whose body was not a record list.
	ErrorClassDecode ErrorClass = "decode"
)

// FailureKind says which degraded shape Retrieve returned.
type FailureKind int

const (
	// FailureNone means the retrieval succeeded.
	FailureNone FailureKind = iota

	// FailureHTTP means the server answered with a status other than 200.
	FailureHTTP

	// FailureNetwork means no usable response was produced.
	FailureNetwork
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureHTTP:
		return "http"
	case FailureNetwork:
		return "network"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// ErrInvalidConfig is wrapped by New when the configuration is rejected.
var ErrInvalidConfig = errors.New("invalid records client config")

var (
	errNullBody   = errors.New("decode body: null is not a record list")
	errNullRecord = errors.New("record is null")
)

// StatusError is returned when /records answers with a status other than 200.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("records request %s: unexpected status %d (%s)", e.URL, e.StatusCode, e.StatusText())
}

// StatusText returns the reason phrase of the response, falling back to the
// standard text for the code when the server sent none.
func (e *StatusError) StatusText() string {
	if text := statusText(e.Status, e.StatusCode); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// Class returns the error class of the status code.
func (e *StatusError) Class() ErrorClass {
	return classifyStatus(e.StatusCode)
}

// TransportError is returned when the request did not produce a decodable
// record list.
type TransportError struct {
	URL   string
	Class ErrorClass
	Err   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("records request %s: %s error: %v", e.URL, e.Class, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind reports which failure an error returned by Retrieve represents.
func Kind(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return FailureHTTP
	}
	return FailureNetwork
}

func classifyStatus(code int) ErrorClass {
	switch {
	case code >= 400 && code < 500:
		return ErrorClassClient
	case code >= 500:
		return ErrorClassServer
	default:
		return ErrorClassUnexpected
	}
}

// statusText strips the leading code from an http.Response Status such as
// "500 Internal Server Error".
func statusText(status string, code int) string {
	prefix := fmt.Sprintf("%d ", code)
	if len(status) >= len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	if status == fmt.Sprintf("%d", code) {
		return ""
	}
	return status
}
