// internal/greenloan/pipeline.go
package greenloan

import (
	"context"
	"errors"
	"sync"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"
)

// BackendClient is the slice of the payslip backend the pipeline
// needs; tests substitute a canned implementation.
type BackendClient interface {
	ExtractPayslip(ctx context.Context, filename string, image []byte) (string, error)
	AnalyzePayslip(ctx context.Context, payslipText, filename string, image []byte) (*AnalysisResult, *ExtractedFinancialData, error)
}

// Outcome is a finished analysis: the rendered view plus its charts.
type Outcome struct {
	Token    string    `json:"token"`
	View     *View     `json:"view"`
	Charts   *ChartSet `json:"charts,omitempty"`
	RecordID int64     `json:"record_id,omitempty"`
}

// Notice is the transient "still extracting" reply of the gated
// variant: the trigger re-enables and the label reverts after the
// given duration.
type Notice struct {
	Message     string        `json:"message"`
	RevertAfter time.Duration `json:"revert_after_ms"`
}

// Pipeline drives one payslip from upload through extraction and
// analysis to a rendered outcome. Sequencing between extraction and
// analysis is either automatic after a fixed delay or gated on an
// explicit analyze call that polls for completion, depending on the
// configured trigger.
type Pipeline struct {
	config   *Config
	client   BackendClient
	sessions *SessionManager
	renderer *Renderer
	store    *Store
	logger   logger.Logger

	mu       sync.Mutex
	outcomes map[string]*Outcome
}

func NewPipeline(config *Config, client BackendClient, sessions *SessionManager, store *Store, log logger.Logger) *Pipeline {
	return &Pipeline{
		config:   config,
		client:   client,
		sessions: sessions,
		renderer: NewRenderer(config),
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "payslip-pipeline"}),
		outcomes: make(map[string]*Outcome),
	}
}

// Upload starts a new session for a selected file and kicks off
// extraction in the background. A new upload supersedes any previous
// one; its in-flight results will be discarded on arrival.
func (p *Pipeline) Upload(ctx context.Context, filename string, image []byte) (*Session, error) {
	if len(image) == 0 {
		return nil, stderrors.NewValidationFailedError("no file selected")
	}

	session := p.sessions.Begin(ctx, filename, image)
	if err := p.sessions.Update(ctx, session.Token, func(s *Session) {
		s.State = StateExtracting
	}); err != nil {
		return nil, err
	}

	go p.runExtraction(session.Token)

	snapshot, err := p.sessions.Get(session.Token)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// runExtraction performs the OCR call and, in auto mode, chains into
// analysis after the configured delay.
func (p *Pipeline) runExtraction(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.Timeout)
	defer cancel()

	session, err := p.sessions.Get(token)
	if err != nil {
		return
	}

	start := time.Now()
	text, err := p.client.ExtractPayslip(ctx, session.FileName, session.Image())
	metrics.PipelineStageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())

	if err != nil {
		// extraction failure alone is never user-blocking; the analysis
		// step decides the visible outcome
		p.logger.Warn("payslip extraction failed", map[string]interface{}{
			"token": token,
			"error": err.Error(),
		})
	}

	if err := p.sessions.Update(ctx, token, func(s *Session) {
		s.ExtractedText = text
		s.ExtractionDone = true
		s.ExtractionFailed = err != nil
		s.State = StateExtractionDone
	}); err != nil {
		// superseded by a newer upload, drop the result
		return
	}

	if p.config.Trigger == TriggerAuto {
		time.Sleep(p.config.AutoAnalyzeDelay)
		if _, err := p.Analyze(context.Background(), token); err != nil {
			p.logger.Warn("auto analysis did not complete", map[string]interface{}{
				"token": token,
				"error": err.Error(),
			})
		}
	}
}

// Analyze runs the analysis step for a session. In gated mode this is
// the user-triggered entry point: when extraction has not finished it
// polls the completion flag a bounded number of times before giving up
// with a transient notice.
func (p *Pipeline) Analyze(ctx context.Context, token string) (*Outcome, error) {
	session, err := p.sessions.Get(token)
	if err != nil {
		return nil, err
	}
	if !p.sessions.IsCurrent(token) {
		return nil, stderrors.NewSessionSupersededError(token)
	}

	if !session.ExtractionDone {
		done, err := p.waitForExtraction(ctx, token)
		if err != nil {
			return nil, err
		}
		if !done {
			return nil, stderrors.NewExtractionPendingError()
		}
		session, err = p.sessions.Get(token)
		if err != nil {
			return nil, err
		}
	}

	// precondition: no network call without extracted text
	if session.ExtractedText == "" {
		metrics.PipelineAnalyses.WithLabelValues("empty_text").Inc()
		return nil, stderrors.NewEmptyPayslipTextError()
	}

	if err := p.sessions.Update(ctx, token, func(s *Session) {
		s.State = StateAnalyzing
	}); err != nil {
		return nil, err
	}

	start := time.Now()
	analysis, extracted, err := p.client.AnalyzePayslip(ctx, session.ExtractedText, session.FileName, session.Image())
	metrics.PipelineStageDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipelineAnalyses.WithLabelValues("failed").Inc()
		p.resetToIdle(ctx, token)
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			return nil, stdErr
		}
		return nil, stderrors.NewAnalysisFailedError(err.Error())
	}

	// a newer upload wins over this in-flight result
	if !p.sessions.IsCurrent(token) {
		metrics.PipelineAnalyses.WithLabelValues("superseded").Inc()
		return nil, stderrors.NewSessionSupersededError(token)
	}

	view := p.renderer.Render(analysis, extracted)

	var charts *ChartSet
	if view.ChartsScheduled {
		// let the results section settle before the charts go in
		time.Sleep(p.config.ChartDelay)
		charts = BuildCharts(&p.config.Charts, analysis, extracted)
	}

	outcome := &Outcome{Token: token, View: view, Charts: charts}

	if p.store != nil {
		if id, err := p.store.SaveAnalysis(ctx, session, analysis, extracted); err != nil {
			p.logger.Warn("analysis history write failed", map[string]interface{}{
				"token": token,
				"error": err.Error(),
			})
		} else {
			outcome.RecordID = id
		}
	}

	if err := p.sessions.Update(ctx, token, func(s *Session) {
		s.State = StateRendered
	}); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.outcomes[token] = outcome
	p.mu.Unlock()

	metrics.PipelineAnalyses.WithLabelValues("rendered").Inc()
	p.logger.Info("payslip analysis rendered", map[string]interface{}{
		"token":    token,
		"approved": view.StatusBanner.Approved,
	})
	return outcome, nil
}

// Outcome returns the finished result for a token, if any.
func (p *Pipeline) Outcome(token string) (*Outcome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	outcome, ok := p.outcomes[token]
	return outcome, ok
}

// StillExtractingNotice describes the transient label shown when the
// bounded poll gives up.
func (p *Pipeline) StillExtractingNotice() *Notice {
	return &Notice{
		Message:     "Still extracting text, please try again shortly",
		RevertAfter: p.config.NoticeRevert,
	}
}

// waitForExtraction polls the completion flag on a fixed interval, a
// bounded number of attempts. It reports whether extraction finished.
func (p *Pipeline) waitForExtraction(ctx context.Context, token string) (bool, error) {
	for attempt := 0; attempt < p.config.PollMaxAttempts; attempt++ {
		select {
		case <-time.After(p.config.PollInterval):
		case <-ctx.Done():
			return false, ctx.Err()
		}

		session, err := p.sessions.Get(token)
		if err != nil {
			return false, err
		}
		if session.ExtractionDone {
			return true, nil
		}
	}
	return false, nil
}

// resetToIdle restores an interactive, re-enabled state after a failed
// analysis. The extracted text survives so the user can retry.
func (p *Pipeline) resetToIdle(ctx context.Context, token string) {
	if err := p.sessions.Update(ctx, token, func(s *Session) {
		s.State = StateExtractionDone
	}); err != nil {
		p.logger.Debug("idle reset skipped", map[string]interface{}{
			"token": token,
			"error": err.Error(),
		})
	}
}
