// internal/greenaudit/advisor.go
package greenaudit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/genai"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
)

const advisorPrompt = `You are a sustainability auditor. Your job is to analyze the following sustainability practices provided by a company. Based on the provided details, provide actionable insights and data analysis. Highlight areas of improvement, potential cost-saving opportunities, and sustainability metrics.

The following is the company's sustainability audit data:

%s

Please provide actionable insights, suggestions for improvements, and overall sustainability performance analysis.`

// Advisor turns free-form audit text into a narrative sustainability
// assessment and records the exchange. Figures recognized in the text
// are stored alongside the narrative so the history view can derive
// consumption metrics.
type Advisor struct {
	config    *Config
	generator genai.Generator
	store     *Store
	logger    logger.Logger
}

func NewAdvisor(config *Config, generator genai.Generator, store *Store, log logger.Logger) *Advisor {
	return &Advisor{
		config:    config,
		generator: generator,
		store:     store,
		logger:    log.WithFields(map[string]interface{}{"component": "greenaudit-advisor"}),
	}
}

// Analyze runs one audit. Oversized input is truncated rather than
// rejected.
func (a *Advisor) Analyze(ctx context.Context, auditText string) (*Audit, error) {
	auditText = strings.TrimSpace(auditText)
	if auditText == "" {
		return nil, stderrors.NewValidationFailedError("Please enter audit details.")
	}
	if len(auditText) > a.config.MaxTextLength {
		auditText = auditText[:a.config.MaxTextLength]
	}

	resp, err := a.generator.Generate(ctx, &genai.Request{
		Prompt:      fmt.Sprintf(advisorPrompt, auditText),
		MaxTokens:   a.config.AdvisorMaxTokens,
		Temperature: a.config.AdvisorTemperature,
	})
	if err != nil {
		if errors.Is(err, genai.ErrGenerationTimeout) {
			return nil, stderrors.NewAdvisorTimeoutError()
		}
		return nil, stderrors.NewAdvisorFailedError(err)
	}

	audit := &Audit{
		AuditText:      auditText,
		AnalysisResult: strings.TrimSpace(resp.Text),
	}
	bill := ParseBillData(auditText)
	audit.BillNumber = bill.BillNumber
	audit.AccountNumber = bill.AccountNumber
	audit.KWhConsumption = bill.KWhConsumption
	audit.TotalAmount = bill.TotalAmount

	if a.store != nil {
		id, err := a.store.SaveAudit(ctx, audit)
		if err != nil {
			// the narrative still reaches the user when the write fails
			a.logger.Warn("audit history write failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			audit.ID = id
		}
	}

	a.logger.Info("audit analyzed", map[string]interface{}{
		"auditId":    audit.ID,
		"textLength": len(auditText),
	})
	return audit, nil
}
