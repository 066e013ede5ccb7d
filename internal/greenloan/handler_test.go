// internal/greenloan/handler_test.go
package greenloan

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRouter(t *testing.T, cfg *Config, backend BackendClient) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := NewSessionManager(cfg, nil, logger.NewNoOpLogger())
	pipeline := NewPipeline(cfg, backend, sessions, nil, logger.NewNoOpLogger())
	handler := NewHandler(cfg, pipeline, sessions, nil, logger.NewNoOpLogger())

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, handler
}

func uploadPayslipRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "payslip.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/green_loan/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandler_Upload(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText: "Gross Pay: MUR 50,000",
		analysis:    analysis,
		extracted:   extracted,
	}
	router, _ := createTestRouter(t, testPipelineConfig(TriggerGated), backend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadPayslipRequest(t))

	require.Equal(t, http.StatusAccepted, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, string(StateExtracting), body["state"])
}

func TestHandler_Upload_MissingFile(t *testing.T) {
	router, _ := createTestRouter(t, testPipelineConfig(TriggerGated), &fakeBackend{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/green_loan/api/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body stderrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, string(stderrors.ErrCodeValidationFailed), body.Code)
	assert.True(t, body.Alert)
}

func TestHandler_AnalyzeAfterUpload(t *testing.T) {
	analysis, extracted := approvedAnalysis()
	backend := &fakeBackend{
		extractText: "Gross Pay: MUR 50,000",
		analysis:    analysis,
		extracted:   extracted,
	}
	router, _ := createTestRouter(t, testPipelineConfig(TriggerGated), backend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadPayslipRequest(t))
	require.Equal(t, http.StatusAccepted, w.Code)

	var upload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upload))
	token := upload["token"]

	// let the background extraction land before triggering analysis
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls, _ := backend.calls(); calls > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}

	w = httptest.NewRecorder()
	payload, _ := json.Marshal(gin.H{"token": token})
	req := httptest.NewRequest(http.MethodPost, "/green_loan/api/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool `json:"success"`
		Result  struct {
			View View `json:"view"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.True(t, body.Result.View.StatusBanner.Approved)
}

func TestHandler_Analyze_UnknownToken(t *testing.T) {
	router, _ := createTestRouter(t, testPipelineConfig(TriggerGated), &fakeBackend{})

	w := httptest.NewRecorder()
	payload, _ := json.Marshal(gin.H{"token": "no-such-token"})
	req := httptest.NewRequest(http.MethodPost, "/green_loan/api/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body stderrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(stderrors.ErrCodeSessionNotFound), body.Code)
}

func TestHandler_Analyze_PendingExtraction(t *testing.T) {
	cfg := testPipelineConfig(TriggerGated)
	cfg.PollMaxAttempts = 2
	backend := &fakeBackend{
		extractText:  "Gross Pay: MUR 50,000",
		extractDelay: 500 * time.Millisecond,
	}
	router, _ := createTestRouter(t, cfg, backend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadPayslipRequest(t))
	var upload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upload))

	w = httptest.NewRecorder()
	payload, _ := json.Marshal(gin.H{"token": upload["token"]})
	req := httptest.NewRequest(http.MethodPost, "/green_loan/api/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var body struct {
		Success bool    `json:"success"`
		Code    string  `json:"code"`
		Notice  *Notice `json:"notice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, string(stderrors.ErrCodeExtractionPending), body.Code)
	require.NotNil(t, body.Notice)
	assert.Contains(t, body.Notice.Message, "Still extracting")
}

func TestHandler_GetSession(t *testing.T) {
	backend := &fakeBackend{extractText: "Gross Pay: MUR 50,000"}
	router, _ := createTestRouter(t, testPipelineConfig(TriggerGated), backend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadPayslipRequest(t))
	var upload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upload))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/green_loan/api/session/"+upload["token"], nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, upload["token"], body["token"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/green_loan/api/session/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
