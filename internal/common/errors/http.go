// internal/common/errors/http.go
package errors

import (
	goerrors "errors"
	"net/http"
)

// Response is the JSON error body returned by the HTTP layer. Alert
// tells the page glue whether to surface a blocking message.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Alert   bool   `json:"alert,omitempty"`
}

// HTTPStatus maps an error code to the status the handlers respond with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyPayslipText, ErrCodeValidationFailed,
		ErrCodeGeolocationUnsupported, ErrCodeGeolocationUnavailable:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound, ErrCodeBusinessNotFound:
		return http.StatusNotFound
	case ErrCodeSessionSuperseded:
		return http.StatusConflict
	case ErrCodeExtractionPending:
		return http.StatusAccepted
	case ErrCodeAdvisorTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf resolves the response status for any error. Errors that are
// not StandardError report as internal.
func StatusOf(err error) int {
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return HTTPStatus(stdErr.Code)
	}
	return http.StatusInternalServerError
}

// ToResponse converts any error into the wire shape. Unknown errors are
// reported with a generic message so internals do not leak.
func ToResponse(err error) Response {
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		msg := stdErr.Message
		if stdErr.Details != "" && stdErr.Alert {
			msg = stdErr.Message + ": " + stdErr.Details
		}
		return Response{
			Success: false,
			Error:   msg,
			Code:    string(stdErr.Code),
			Alert:   stdErr.Alert,
		}
	}
	return Response{
		Success: false,
		Error:   "internal error",
	}
}
