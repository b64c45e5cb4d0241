package go_facturacom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMode indicates an unrecognized environment mode (not SANDBOX/PRODUCTION).
	ErrInvalidMode = errors.New("facturacom: invalid mode")
	// ErrValidation indicates a client-side validation issue (missing required fields, invalid input).
	ErrValidation = errors.New("facturacom: validation error")
	// ErrEncode indicates a client-side encoding issue (failed to marshal JSON, etc).
	ErrEncode = errors.New("facturacom: encode error")
	// ErrTransport indicates a network/transport error (timeouts, DNS, TLS, etc).
	ErrTransport = errors.New("facturacom: transport error")
	// ErrDecode indicates a client-side decoding issue (failed to unmarshal JSON, empty body, etc).
	ErrDecode = errors.New("facturacom: decode error")

	// ErrAPI indicates a failure reported by the API itself: either a non-2xx
	// HTTP status or a non-success envelope status.
	ErrAPI = errors.New("facturacom: api error")

	// ErrBadRequest corresponds to HTTP 400 from API.
	ErrBadRequest = errors.New("facturacom: bad request")
	// ErrInvalidCredentials corresponds to HTTP 401/403 from API (key/secret rejected).
	ErrInvalidCredentials = errors.New("facturacom: invalid credentials")
	// ErrNotFound corresponds to HTTP 404 from API.
	ErrNotFound = errors.New("facturacom: not found")
	// ErrMethodNotAllowed corresponds to HTTP 405 from API.
	ErrMethodNotAllowed = errors.New("facturacom: method not allowed")
	// ErrRateLimited corresponds to HTTP 429 from API.
	ErrRateLimited = errors.New("facturacom: rate limited")
	// ErrServerError corresponds to HTTP 5xx from API.
	ErrServerError = errors.New("facturacom: server error")
	// ErrUnexpectedResponse is returned when API responds in an unexpected way
	// (unknown status code, envelope without a status field, malformed data).
	ErrUnexpectedResponse = errors.New("facturacom: unexpected response")
)

// InvalidModeError is returned when an environment mode outside
// {SANDBOX, PRODUCTION} is set or read.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	if e == nil {
		return ErrInvalidMode.Error()
	}
	return fmt.Sprintf("%s: %q (choose between: %s, %s)", ErrInvalidMode.Error(), string(e.Mode), ModeSandbox, ModeProduction)
}

func (e *InvalidModeError) Is(target error) bool {
	return target == ErrInvalidMode
}

// ValidationError indicates that a call is missing required fields or has invalid values.
type ValidationError struct {
	Op    string
	Msg   string
	Cause error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	base := ErrValidation.Error()
	if e.Op != "" {
		base += ": " + e.Op
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	return base
}

func (e *ValidationError) Unwrap() error { return e.Cause }
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EncodeError indicates a request encoding issue (JSON marshal, etc).
type EncodeError struct {
	Op    string
	Msg   string
	Cause error
}

func (e *EncodeError) Error() string {
	if e == nil {
		return ErrEncode.Error()
	}
	base := ErrEncode.Error()
	if e.Op != "" {
		base += ": " + e.Op
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	return base
}

func (e *EncodeError) Unwrap() error { return e.Cause }
func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

// TransportError indicates a networking error while calling the API.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Cause  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ErrTransport.Error()
	}
	parts := []string{ErrTransport.Error()}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Method != "" && e.URL != "" {
		parts = append(parts, e.Method+" "+e.URL)
	} else if e.URL != "" {
		parts = append(parts, e.URL)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *TransportError) Unwrap() error { return e.Cause }
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError indicates an issue decoding an API response.
type DecodeError struct {
	Op    string
	Msg   string
	Body  []byte
	Cause error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ErrDecode.Error()
	}
	base := ErrDecode.Error()
	if e.Op != "" {
		base += ": " + e.Op
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Cause != nil {
		base += ": " + e.Cause.Error()
	}
	return base
}

func (e *DecodeError) Unwrap() error { return e.Cause }
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// UnexpectedResponseError indicates an API response that doesn't match the
// documented envelope (no status field, data is not an object/list, etc).
type UnexpectedResponseError struct {
	Op         string
	Method     string
	Endpoint   string
	StatusCode int
	Msg        string
	Body       []byte
}

func (e *UnexpectedResponseError) Error() string {
	if e == nil {
		return ErrUnexpectedResponse.Error()
	}
	base := ErrUnexpectedResponse.Error()
	if e.Op != "" {
		base += ": " + e.Op
	}
	if e.Method != "" && e.Endpoint != "" {
		base += ": " + e.Method + " " + e.Endpoint
	} else if e.Endpoint != "" {
		base += ": " + e.Endpoint
	}
	if e.StatusCode != 0 {
		base += fmt.Sprintf(": status=%d", e.StatusCode)
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	return base
}

func (e *UnexpectedResponseError) Is(target error) bool { return target == ErrUnexpectedResponse }

// APIError represents a failure reported by the Factura.com API.
//
// Two flavors share this type:
//   - HTTP-level: a non-2xx response; Kind classifies the status code and
//     Body carries the truncated raw body.
//   - Envelope-level: a 2xx response whose envelope status is not "success";
//     Status carries the reported status value and Payload the remaining
//     envelope fields (status removed) for inspection.
type APIError struct {
	// Kind classifies HTTP-level failures for errors.Is(...) matching
	// (ErrBadRequest, ErrInvalidCredentials, ...). Nil for envelope-level failures.
	Kind error

	Method   string
	Endpoint string

	StatusCode  int
	ContentType string

	// Status is the envelope status value when it was present and not "success".
	Status string

	// Payload holds the envelope fields minus the status field (envelope-level failures).
	Payload map[string]any

	// Body is a truncated raw response body (HTTP-level failures).
	Body []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return ErrAPI.Error()
	}

	msg := ErrAPI.Error()
	if e.Kind != nil {
		msg = e.Kind.Error()
	}

	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status=%d", e.StatusCode)
	}
	if e.Method != "" && e.Endpoint != "" {
		msg += " " + e.Method + " " + e.Endpoint
	} else if e.Endpoint != "" {
		msg += " endpoint=" + e.Endpoint
	}

	if strings.TrimSpace(e.Status) != "" {
		msg += " apiStatus=" + strings.TrimSpace(e.Status)
	}
	if detail := e.detail(); detail != "" {
		msg += " detail=" + detail
	}

	return msg
}

// detail extracts a best-effort human message from the error payload.
func (e *APIError) detail() string {
	if e == nil || len(e.Payload) == 0 {
		return ""
	}
	for _, key := range []string{"message", "error", "detail"} {
		if v, ok := e.Payload[key]; ok {
			if s := anyToString(v); s != "" {
				return s
			}
		}
	}
	if len(e.Payload) == 1 {
		for _, v := range e.Payload {
			return anyToString(v)
		}
	}
	return ""
}

func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrAPI {
		return true
	}
	return e.Kind != nil && target == e.Kind
}

// --- internal helpers ---

func kindFromStatus(status int) error {
	switch status {
	case 400:
		return ErrBadRequest
	case 401, 403:
		return ErrInvalidCredentials
	case 404:
		return ErrNotFound
	case 405:
		return ErrMethodNotAllowed
	case 429:
		return ErrRateLimited
	default:
		if status >= 500 && status <= 599 {
			return ErrServerError
		}
		return ErrUnexpectedResponse
	}
}

func trimBody(b []byte, max int) []byte {
	if max <= 0 || len(b) <= max {
		return b
	}
	out := make([]byte, max)
	copy(out, b[:max])
	return out
}
