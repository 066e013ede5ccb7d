// internal/greenloan/pipeline_test.go
package greenloan

import (
	"context"
	"sync"
	"testing"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu sync.Mutex

	extractText  string
	extractErr   error
	extractDelay time.Duration

	analysis   *AnalysisResult
	extracted  *ExtractedFinancialData
	analyzeErr error

	extractCalls int
	analyzeCalls int
	lastText     string
}

func (f *fakeBackend) ExtractPayslip(_ context.Context, _ string, _ []byte) (string, error) {
	f.mu.Lock()
	f.extractCalls++
	delay := f.extractDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return f.extractText, f.extractErr
}

func (f *fakeBackend) AnalyzePayslip(_ context.Context, text, _ string, _ []byte) (*AnalysisResult, *ExtractedFinancialData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzeCalls++
	f.lastText = text
	if f.analyzeErr != nil {
		return nil, nil, f.analyzeErr
	}
	return f.analysis, f.extracted, nil
}

func (f *fakeBackend) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.extractCalls, f.analyzeCalls
}

func testPipelineConfig(trigger TriggerMode) *Config {
	cfg := LoadConfig()
	cfg.Trigger = trigger
	cfg.AutoAnalyzeDelay = time.Millisecond
	cfg.PollInterval = time.Millisecond
	cfg.PollMaxAttempts = 10
	cfg.ChartDelay = time.Millisecond
	cfg.NoticeRevert = 2 * time.Second
	return cfg
}

func createTestPipeline(t *testing.T, cfg *Config, backend BackendClient) *Pipeline {
	t.Helper()
	sessions := NewSessionManager(cfg, nil, logger.NewNoOpLogger())
	return NewPipeline(cfg, backend, sessions, nil, logger.NewNoOpLogger())
}

func approvedAnalysis() (*AnalysisResult, *ExtractedFinancialData) {
	return &AnalysisResult{
			LoanAvailable: true,
			MaxLoanAmount: fptr(500000),
			InterestRate:  fptr(5.5),
		}, &ExtractedFinancialData{
			MonthlySalary: fptr(50000),
		}
}

func waitForOutcome(t *testing.T, p *Pipeline, token string) *Outcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if outcome, ok := p.Outcome(token); ok {
			return outcome
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("no outcome produced before deadline")
	return nil
}

func TestPipeline_AutoTrigger_RendersOutcome(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText: "Gross Pay: MUR 50,000",
		analysis:    analysis,
		extracted:   extracted,
	}
	p := createTestPipeline(t, testPipelineConfig(TriggerAuto), backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)
	assert.Equal(t, StateExtracting, session.State)

	outcome := waitForOutcome(t, p, session.Token)
	assert.True(t, outcome.View.StatusBanner.Approved)
	assert.True(t, outcome.View.ChartsScheduled)
	require.NotNil(t, outcome.Charts)
	assert.Equal(t, []float64{500000, 100000, 50000}, outcome.Charts.Affordability.Values)

	extractCalls, analyzeCalls := backend.calls()
	assert.Equal(t, 1, extractCalls)
	assert.Equal(t, 1, analyzeCalls)
	assert.Equal(t, "Gross Pay: MUR 50,000", backend.lastText)
}

func TestPipeline_AutoTrigger_FailedExtractionShortCircuits(t *testing.T) {
	backend := &fakeBackend{
		extractErr: stderrors.NewExtractionFailedError("low confidence"),
	}
	p := createTestPipeline(t, testPipelineConfig(TriggerAuto), backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)

	// the auto trigger still fires after the delay, but empty text
	// must block analysis before any network call
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		s, err := p.sessions.Get(session.Token)
		require.NoError(t, err)
		if s.ExtractionDone {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	_, analyzeCalls := backend.calls()
	assert.Equal(t, 0, analyzeCalls)

	_, ok := p.Outcome(session.Token)
	assert.False(t, ok)

	s, err := p.sessions.Get(session.Token)
	require.NoError(t, err)
	assert.True(t, s.ExtractionFailed)
	assert.Empty(t, s.ExtractedText)
}

func TestPipeline_Gated_AnalyzeWithEmptyText(t *testing.T) {
	backend := &fakeBackend{extractText: ""}
	p := createTestPipeline(t, testPipelineConfig(TriggerGated), backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)

	// analyze polls until extraction flips, then hits the empty-text
	// precondition
	_, err = p.Analyze(context.Background(), session.Token)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeEmptyPayslipText, stdErr.Code)
	assert.True(t, stdErr.Alert)

	_, analyzeCalls := backend.calls()
	assert.Equal(t, 0, analyzeCalls)
}

func TestPipeline_Gated_PollTimesOut(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText:  "text",
		extractDelay: 500 * time.Millisecond,
		analysis:     analysis,
		extracted:    extracted,
	}
	cfg := testPipelineConfig(TriggerGated)
	cfg.PollInterval = time.Millisecond
	cfg.PollMaxAttempts = 3
	p := createTestPipeline(t, cfg, backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), session.Token)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeExtractionPending, stdErr.Code)

	notice := p.StillExtractingNotice()
	assert.Equal(t, 2*time.Second, notice.RevertAfter)
	assert.NotEmpty(t, notice.Message)
}

func TestPipeline_Gated_AnalyzeAfterPollSucceeds(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText:  "Gross Pay: MUR 50,000",
		extractDelay: 10 * time.Millisecond,
		analysis:     analysis,
		extracted:    extracted,
	}
	cfg := testPipelineConfig(TriggerGated)
	cfg.PollInterval = 5 * time.Millisecond
	p := createTestPipeline(t, cfg, backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)

	outcome, err := p.Analyze(context.Background(), session.Token)
	require.NoError(t, err)
	assert.True(t, outcome.View.StatusBanner.Approved)

	s, err := p.sessions.Get(session.Token)
	require.NoError(t, err)
	assert.Equal(t, StateRendered, s.State)
}

func TestPipeline_AnalysisFailureRestoresIdleState(t *testing.T) {
	backend := &fakeBackend{
		extractText: "some text",
		analyzeErr:  stderrors.NewAnalysisFailedError("model unavailable"),
	}
	p := createTestPipeline(t, testPipelineConfig(TriggerGated), backend)

	session, err := p.Upload(context.Background(), "payslip.png", []byte{1})
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), session.Token)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeAnalysisFailed, stdErr.Code)
	assert.True(t, stdErr.Alert)

	// controls are re-enabled: the session is interactive again and
	// the extracted text survives for a retry
	s, err := p.sessions.Get(session.Token)
	require.NoError(t, err)
	assert.Equal(t, StateExtractionDone, s.State)
	assert.Equal(t, "some text", s.ExtractedText)
}

func TestPipeline_NewUploadDiscardsStaleAnalysis(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText: "text",
		analysis:    analysis,
		extracted:   extracted,
	}
	p := createTestPipeline(t, testPipelineConfig(TriggerGated), backend)
	ctx := context.Background()

	first, err := p.Upload(ctx, "one.png", []byte{1})
	require.NoError(t, err)

	// wait for the first extraction to land
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s, err := p.sessions.Get(first.Token); err == nil && s.ExtractionDone {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}

	// a new selection supersedes the first session entirely
	_, err = p.Upload(ctx, "two.png", []byte{2})
	require.NoError(t, err)

	_, err = p.Analyze(ctx, first.Token)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeSessionNotFound, stdErr.Code)
}

func TestPipeline_UploadRequiresFile(t *testing.T) {
	p := createTestPipeline(t, testPipelineConfig(TriggerGated), &fakeBackend{})

	_, err := p.Upload(context.Background(), "empty.png", nil)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}
