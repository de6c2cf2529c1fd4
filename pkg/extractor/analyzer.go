package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by the disabled analyzer. The extractor
// falls back to a placeholder string instead of failing the pipeline.
var ErrNotConfigured = errors.New("document analyzer not configured")

// DocumentAnalyzer extracts text from formats the service cannot parse
// locally (DOCX, images). Typically a hosted document-intelligence API.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, content []byte, fileType string) (string, error)
	Enabled() bool
}

// HTTPAnalyzer calls an external analysis endpoint with the raw bytes and
// expects a JSON body carrying the extracted text.
type HTTPAnalyzer struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewHTTPAnalyzer(endpoint, apiKey string) DocumentAnalyzer {
	return &HTTPAnalyzer{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type analyzerResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAnalyzer) Enabled() bool {
	return true
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, content []byte, fileType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", fileType)
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analyzer error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed analyzerResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal analyzer response: %w", err)
	}

	return parsed.Text, nil
}

// DisabledAnalyzer stands in when no analysis endpoint is configured.
type DisabledAnalyzer struct{}

func NewDisabledAnalyzer() DocumentAnalyzer {
	return &DisabledAnalyzer{}
}

func (a *DisabledAnalyzer) Enabled() bool {
	return false
}

func (a *DisabledAnalyzer) Analyze(ctx context.Context, content []byte, fileType string) (string, error) {
	return "", ErrNotConfigured
}
