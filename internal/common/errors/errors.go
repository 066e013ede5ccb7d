// Package errors provides standardized error handling for the service packages.
package errors

import (
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Payslip pipeline
	ErrCodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrCodeExtractionPending ErrorCode = "EXTRACTION_PENDING"
	ErrCodeEmptyPayslipText  ErrorCode = "EMPTY_PAYSLIP_TEXT"
	ErrCodeAnalysisFailed    ErrorCode = "ANALYSIS_FAILED"
	ErrCodeAnalysisInvalid   ErrorCode = "ANALYSIS_INVALID"
	ErrCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionSuperseded ErrorCode = "SESSION_SUPERSEDED"

	// Registration map picker
	ErrCodeGeolocationUnsupported ErrorCode = "GEOLOCATION_UNSUPPORTED"
	ErrCodeGeolocationUnavailable ErrorCode = "GEOLOCATION_UNAVAILABLE"

	// Directory
	ErrCodeBusinessNotFound ErrorCode = "BUSINESS_NOT_FOUND"
	ErrCodeSearchFailed     ErrorCode = "SEARCH_FAILED"

	// Shared infrastructure
	ErrCodeValidationFailed         ErrorCode = "VALIDATION_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeAdvisorTimeout           ErrorCode = "ADVISOR_TIMEOUT"
	ErrCodeAdvisorFailed            ErrorCode = "ADVISOR_FAILED"
	ErrCodeEncryptionFailed         ErrorCode = "ENCRYPTION_FAILED"
	ErrCodeDecryptionFailed         ErrorCode = "DECRYPTION_FAILED"
	ErrCodeExternalService          ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// StandardError is the error type surfaced by services. The Alert flag
// marks errors that must reach the user as a blocking message rather
// than a log line.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Alert     bool      `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return string(e.Code) + ": " + e.Message + " (" + e.Details + ")"
	}
	return string(e.Code) + ": " + e.Message
}

// Is allows errors.Is matching on the code.
func (e *StandardError) Is(target error) bool {
	other, ok := target.(*StandardError)
	return ok && other.Code == e.Code
}

func newError(code ErrorCode, message, details string, retryable, alert bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Alert:     alert,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError is logged but never alerted on its own; the
// outer pipeline decides the user-visible outcome.
func NewExtractionFailedError(details string) *StandardError {
	return newError(ErrCodeExtractionFailed, "payslip text extraction failed", details, true, false)
}

func NewExtractionPendingError() *StandardError {
	return newError(ErrCodeExtractionPending, "text extraction still in progress", "", true, false)
}

// NewEmptyPayslipTextError aborts analysis before any network call.
func NewEmptyPayslipTextError() *StandardError {
	return newError(ErrCodeEmptyPayslipText, "Please wait for text extraction to complete", "", false, true)
}

func NewAnalysisFailedError(details string) *StandardError {
	if details == "" {
		details = "Unknown error"
	}
	return newError(ErrCodeAnalysisFailed, "Analysis failed", details, true, true)
}

func NewAnalysisInvalidError(details string) *StandardError {
	return newError(ErrCodeAnalysisInvalid, "analysis payload failed schema validation", details, false, true)
}

func NewSessionNotFoundError(token string) *StandardError {
	return newError(ErrCodeSessionNotFound, "no payslip session for token", token, false, true)
}

// NewSessionSupersededError marks a stale in-flight result that lost to
// a newer file selection.
func NewSessionSupersededError(token string) *StandardError {
	return newError(ErrCodeSessionSuperseded, "session superseded by a newer upload", token, false, false)
}

func NewGeolocationUnsupportedError() *StandardError {
	return newError(ErrCodeGeolocationUnsupported, "Geolocation is not supported by this device", "", false, true)
}

func NewGeolocationUnavailableError(details string) *StandardError {
	return newError(ErrCodeGeolocationUnavailable, "Unable to determine your location", details, false, true)
}

func NewBusinessNotFoundError(id string) *StandardError {
	return newError(ErrCodeBusinessNotFound, "business not found", id, false, false)
}

func NewSearchFailedError(err error) *StandardError {
	return newError(ErrCodeSearchFailed, "directory search failed", errDetails(err), true, false)
}

func NewValidationFailedError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "validation failed", details, false, true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "database connection failed", errDetails(err), true, false)
}

func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "query execution failed: "+operation, errDetails(err), true, false)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "failed to send "+channel+" notification", errDetails(err), true, false)
}

func NewAdvisorTimeoutError() *StandardError {
	return newError(ErrCodeAdvisorTimeout, "advisor request timed out", "", true, true)
}

func NewAdvisorFailedError(err error) *StandardError {
	return newError(ErrCodeAdvisorFailed, "advisor request failed", errDetails(err), true, true)
}

func NewEncryptionFailedError(err error) *StandardError {
	return newError(ErrCodeEncryptionFailed, "encryption failed", errDetails(err), false, true)
}

func NewDecryptionFailedError(err error) *StandardError {
	return newError(ErrCodeDecryptionFailed, "decryption failed", errDetails(err), false, true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, service+" request failed", errDetails(err), true, false)
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsRetryableErrorCode reports whether a code is worth retrying.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeExtractionFailed, ErrCodeExtractionPending, ErrCodeAnalysisFailed,
		ErrCodeSearchFailed, ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed, ErrCodeAdvisorTimeout, ErrCodeAdvisorFailed,
		ErrCodeExternalService:
		return true
	}
	return false
}

// GetErrorCategory groups codes for metric labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeExtractionFailed, ErrCodeExtractionPending, ErrCodeEmptyPayslipText,
		ErrCodeAnalysisFailed, ErrCodeAnalysisInvalid, ErrCodeSessionNotFound,
		ErrCodeSessionSuperseded:
		return "pipeline"
	case ErrCodeGeolocationUnsupported, ErrCodeGeolocationUnavailable:
		return "geolocation"
	case ErrCodeBusinessNotFound, ErrCodeSearchFailed:
		return "directory"
	case ErrCodeValidationFailed:
		return "validation"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed:
		return "database"
	case ErrCodeNotificationSendFailed:
		return "notification"
	case ErrCodeAdvisorTimeout, ErrCodeAdvisorFailed:
		return "advisor"
	case ErrCodeEncryptionFailed, ErrCodeDecryptionFailed:
		return "crypto"
	default:
		return "general"
	}
}
