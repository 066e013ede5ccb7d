// internal/greenloan/client.go
package greenloan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	commonhttp "github.com/Nishal72/InnoMinds-Code4Good/internal/common/http"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
)

const (
	extractPath = "/green_loan/api/extract-payslip/"
	analyzePath = "/green_loan/api/analyze-payslip/"
)

// Client calls the payslip backend. The two endpoint paths are fixed
// for compatibility with the existing service.
type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: commonhttp.NewClient(config.Timeout),
		logger:     log.WithFields(map[string]interface{}{"component": "payslip-client"}),
	}
}

// ExtractPayslip submits the payslip image for OCR and returns the
// extracted text. A server-side failure comes back as an error with
// whatever text (possibly none) the server produced.
func (c *Client) ExtractPayslip(ctx context.Context, filename string, image []byte) (string, error) {
	body, contentType, err := buildMultipart(nil, filename, image)
	if err != nil {
		return "", stderrors.NewExtractionFailedError(err.Error())
	}

	raw, err := c.post(ctx, extractPath, contentType, body)
	if err != nil {
		return "", stderrors.NewExtractionFailedError(err.Error())
	}

	var resp extractResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", stderrors.NewExtractionFailedError("malformed extraction response: " + err.Error())
	}
	if !resp.Success {
		return "", stderrors.NewExtractionFailedError(resp.Error)
	}
	return resp.ExtractedText, nil
}

// AnalyzePayslip submits the extracted text plus the original image
// for eligibility analysis.
func (c *Client) AnalyzePayslip(ctx context.Context, payslipText, filename string, image []byte) (*AnalysisResult, *ExtractedFinancialData, error) {
	fields := map[string]string{"payslip_text": payslipText}
	body, contentType, err := buildMultipart(fields, filename, image)
	if err != nil {
		return nil, nil, stderrors.NewAnalysisFailedError(err.Error())
	}

	raw, err := c.post(ctx, analyzePath, contentType, body)
	if err != nil {
		return nil, nil, stderrors.NewAnalysisFailedError(err.Error())
	}

	if err := validateAnalysisPayload(raw); err != nil {
		return nil, nil, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, stderrors.NewAnalysisFailedError("malformed analysis response: " + err.Error())
	}
	if !resp.Success {
		return nil, nil, stderrors.NewAnalysisFailedError(resp.Error)
	}
	if resp.Analysis == nil {
		return nil, nil, stderrors.NewAnalysisInvalidError("response carries no analysis object")
	}
	if resp.ExtractedData == nil {
		resp.ExtractedData = &ExtractedFinancialData{}
	}
	return resp.Analysis, resp.ExtractedData, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body *bytes.Buffer) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("payslip backend returned non-OK status", map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

// buildMultipart assembles the request body: optional text fields plus
// the payslip binary under the fixed field name "image".
func buildMultipart(fields map[string]string, filename string, image []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
