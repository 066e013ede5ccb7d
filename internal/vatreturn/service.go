// internal/vatreturn/service.go
package vatreturn

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/aws"
	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/validation"
)

// Service files VAT returns: it builds the plaintext summary, encrypts
// it, persists the filing and delivers the ciphertext over SMS. SMS
// delivery is best effort; its outcome is reported on the receipt but
// never blocks the filing itself.
type Service struct {
	config *Config
	cipher *Cipher
	store  *Store
	sms    *aws.SNSClient
	logger logger.Logger
}

func NewService(config *Config, cipher *Cipher, store *Store, sms *aws.SNSClient, log logger.Logger) *Service {
	return &Service{
		config: config,
		cipher: cipher,
		store:  store,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{"component": "vatreturn-service"}),
	}
}

// SubmitFiling processes one VAT return end to end.
func (s *Service) SubmitFiling(ctx context.Context, input *FilingInput) (*Receipt, error) {
	if !validation.ValidatePhone(input.PhoneNumber) {
		return nil, stderrors.NewValidationFailedError("phone number is not valid")
	}

	encrypted, err := s.cipher.Encrypt(filingSummary(input))
	if err != nil {
		return nil, err
	}

	id, err := s.store.Save(ctx, input, encrypted)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		ReturnID:    id,
		Encrypted:   encrypted,
		PhoneNumber: input.PhoneNumber,
	}
	s.deliverSMS(ctx, receipt)
	return receipt, nil
}

// Decrypt exposes the offline decrypt tool for received ciphertexts.
func (s *Service) Decrypt(ciphertext string) (string, error) {
	return s.cipher.Decrypt(ciphertext)
}

func (s *Service) deliverSMS(ctx context.Context, receipt *Receipt) {
	if !s.config.SMSEnabled || s.sms == nil {
		receipt.SMSError = "SMS delivery is not configured"
		return
	}

	messageID, err := s.sms.PublishSMS(ctx, receipt.PhoneNumber, receipt.Encrypted)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("sms", "error").Inc()
		s.logger.Warn("vat return SMS delivery failed", map[string]interface{}{
			"returnId": receipt.ReturnID,
			"error":    err.Error(),
		})
		receipt.SMSError = err.Error()
		return
	}

	metrics.NotificationsSent.WithLabelValues("sms", "success").Inc()
	receipt.SMSSent = true
	receipt.SMSID = messageID
}

// filingSummary renders the plaintext that gets encrypted. The field
// order matches the historical filing message.
func filingSummary(input *FilingInput) string {
	return fmt.Sprintf(
		"Business Name: %s\nBusiness ID: %s\nVAT Collected: %s\nVAT Paid: %s\nReporting Period: %s",
		input.BusinessName,
		input.BusinessID,
		formatAmount(input.VATCollected),
		formatAmount(input.VATPaid),
		input.ReportingPeriod,
	)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
