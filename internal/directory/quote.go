// internal/directory/quote.go
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/aws"
	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/genai"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/validation"
)

const (
	quoteMaxTokens   = 400
	quoteTemperature = 0.4
)

// QuoteService drafts a quotation request for a listed business and
// emails it. Drafting goes through the text-generation API; when that
// is unavailable the raw message goes out under a plain template.
type QuoteService struct {
	config    *Config
	store     *Store
	generator genai.Generator
	mailer    *aws.SESClient
	logger    logger.Logger
}

func NewQuoteService(config *Config, store *Store, generator genai.Generator, mailer *aws.SESClient, log logger.Logger) *QuoteService {
	return &QuoteService{
		config:    config,
		store:     store,
		generator: generator,
		mailer:    mailer,
		logger:    log.WithFields(map[string]interface{}{"component": "directory-quote"}),
	}
}

// RequestQuote resolves the target business, drafts the email and
// sends it to the business contact address.
func (q *QuoteService) RequestQuote(ctx context.Context, input *QuoteInput) (string, error) {
	if !validation.ValidateEmail(input.SenderMail) {
		return "", stderrors.NewValidationFailedError("sender email is not valid")
	}

	business, err := q.store.GetBusiness(ctx, input.BusinessID)
	if err != nil {
		return "", err
	}
	if business.Email == "" {
		return "", stderrors.NewValidationFailedError("business has no contact email")
	}

	if q.mailer == nil {
		return "", stderrors.NewNotificationSendFailedError("email",
			fmt.Errorf("quote emails are not configured"))
	}

	body := q.draftBody(ctx, business, input)
	subject := fmt.Sprintf("Quotation request from %s", input.SenderName)

	messageID, err := q.mailer.SendEmail(ctx, business.Email, subject, body)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
		return "", stderrors.NewNotificationSendFailedError("email", err)
	}
	metrics.NotificationsSent.WithLabelValues("email", "success").Inc()

	q.logger.Info("quotation email sent", map[string]interface{}{
		"businessId": business.ID,
		"messageId":  messageID,
	})
	return messageID, nil
}

func (q *QuoteService) draftBody(ctx context.Context, business *Business, input *QuoteInput) string {
	resp, err := q.generator.Generate(ctx, &genai.Request{
		Prompt:      q.buildPrompt(business, input),
		MaxTokens:   quoteMaxTokens,
		Temperature: quoteTemperature,
	})
	if err != nil || resp.Text == "" {
		if err != nil {
			q.logger.Warn("quote drafting failed, using template", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return fmt.Sprintf("Dear %s,\n\n%s\n\nRegards,\n%s (%s)",
			business.Name, input.Message, input.SenderName, input.SenderMail)
	}
	return resp.Text
}

func (q *QuoteService) buildPrompt(business *Business, input *QuoteInput) string {
	var parts []string

	parts = append(parts, "You draft short, polite quotation-request emails for a waste-exchange marketplace in Mauritius.")
	parts = append(parts, fmt.Sprintf("\nBusiness: %s", business.Name))
	if business.Waste != "" {
		parts = append(parts, fmt.Sprintf("Waste handled: %s", business.Waste))
	}
	parts = append(parts, fmt.Sprintf("\nSender: %s <%s>", input.SenderName, input.SenderMail))
	parts = append(parts, fmt.Sprintf("Request: %s", input.Message))

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Write the email body only, no subject line")
	parts = append(parts, "- Keep it under 150 words")
	parts = append(parts, "- Do not invent prices or quantities")

	return strings.Join(parts, "\n")
}
