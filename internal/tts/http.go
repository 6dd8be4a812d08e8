package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	apiSynthesize = "/v1/synthesize"
	apiHealth     = "/health"

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Request is the JSON payload for the synthesis endpoint.
type Request struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// errorResponse is the structured error body the service may return.
type errorResponse struct {
	Detail string `json:"detail"`
}

// HTTPEngine speaks to a standalone TTS HTTP service that accepts
// {text, voice} and answers with raw audio bytes.
type HTTPEngine struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPEngine creates a client for the service at baseURL. The timeout
// applies to every request, synthesis and health checks alike.
func NewHTTPEngine(baseURL string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Synthesize requests audio for one segment and writes it to outPath.
func (e *HTTPEngine) Synthesize(ctx context.Context, text, voice, outPath string) error {
	if err := validateInputs(text, voice, outPath); err != nil {
		return err
	}

	body, err := json.Marshal(Request{Text: text, Voice: voice})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+apiSynthesize, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to TTS service at %s: %w", e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return e.parseErrorResponse(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read audio data: %w", err)
	}

	if len(audio) == 0 {
		return ErrEmptyAudio
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	return nil
}

// HealthCheck verifies the service is reachable before a run starts, so a
// dead service fails the run up front instead of on the first segment.
func (e *HTTPEngine) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		e.baseURL+apiHealth, http.NoBody)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check for service at %s: %w", e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %s", resp.Status)
	}

	return nil
}

func (e *HTTPEngine) parseErrorResponse(resp *http.Response) error {
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
		return fmt.Errorf("TTS service error (%s): %s", resp.Status, errResp.Detail)
	}

	body, _ := io.ReadAll(resp.Body)

	return fmt.Errorf("TTS service returned non-OK status: %s, body: %s",
		resp.Status, string(body))
}
