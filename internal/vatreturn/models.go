// internal/vatreturn/models.go
package vatreturn

import "time"

// FilingInput is one submitted VAT return.
type FilingInput struct {
	BusinessName    string  `json:"business_name" binding:"required"`
	BusinessID      string  `json:"business_id" binding:"required"`
	VATCollected    float64 `json:"vat_collected" binding:"min=0"`
	VATPaid         float64 `json:"vat_paid" binding:"min=0"`
	ReportingPeriod string  `json:"reporting_period" binding:"required"`
	PhoneNumber     string  `json:"phone_number" binding:"required"`
}

// Return is a stored VAT return with its encrypted summary.
type Return struct {
	ID               int64     `json:"id"`
	BusinessName     string    `json:"business_name"`
	BusinessID       string    `json:"business_id"`
	VATCollected     float64   `json:"vat_collected"`
	VATPaid          float64   `json:"vat_paid"`
	ReportingPeriod  string    `json:"reporting_period"`
	PhoneNumber      string    `json:"phone_number"`
	EncryptedMessage string    `json:"encrypted_message"`
	CreatedAt        time.Time `json:"created_at"`
}

// Receipt reports the outcome of a filing: the ciphertext plus the SMS
// delivery status. A failed or disabled SMS never fails the filing.
type Receipt struct {
	ReturnID    int64  `json:"return_id"`
	Encrypted   string `json:"encrypted"`
	PhoneNumber string `json:"phone_number"`
	SMSSent     bool   `json:"sms_sent"`
	SMSID       string `json:"sms_sid,omitempty"`
	SMSError    string `json:"sms_error,omitempty"`
}
