package errs

import (
	"net/http"
)

// CodeEnrichmentFailed marks failures reported by the geolocation provider.
const CodeEnrichmentFailed = "ENRICHMENT_FAILED"

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
//   - action: optional client instruction (e.g. redirect)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewServiceUnavailableError creates a 503 Service Unavailable HTTPError.
func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusServiceUnavailable),
		Message:  message,
		Status:   http.StatusServiceUnavailable,
		Override: false,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewGatewayTimeoutError creates a 504 Gateway Timeout HTTPError.
func NewGatewayTimeoutError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusGatewayTimeout),
		Message:  http.StatusText(http.StatusGatewayTimeout),
		Status:   http.StatusGatewayTimeout,
		Override: false,
	}
}

// NewUpstreamError converts a failure reported by an upstream provider.
//
// The provider's status is reused when it is a valid 4xx/5xx code so a
// "zip not found" (404) reaches the client as a 404. Anything else becomes
// 502 Bad Gateway. The provider message is passed through with Override
// set, since it describes the client's input.
func NewUpstreamError(status int, message string) *HTTPError {
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusBadGateway
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return &HTTPError{
		Code:     CodeEnrichmentFailed,
		Message:  message,
		Status:   status,
		Override: true,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
