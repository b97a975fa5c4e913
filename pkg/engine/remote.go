package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultRemoteURL is the default base URL for a remote inference server.
	DefaultRemoteURL = "http://localhost:8500"
	// DefaultRemoteTimeout bounds a single generation request. Beam search
	// over long inputs can be slow on CPU, so this is generous.
	DefaultRemoteTimeout = 5 * time.Minute
)

// RemoteClient implements Engine against an external inference server that
// hosts the seq2seq model behind a small HTTP API.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewRemoteClient creates a client for a remote inference server.
func NewRemoteClient(baseURL string, logger *logrus.Logger) *RemoteClient {
	if baseURL == "" {
		baseURL = DefaultRemoteURL
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &RemoteClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultRemoteTimeout,
		},
		logger: logger,
	}
}

// generateRequest is the inference server's generation payload.
type generateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	MaxLength  int    `json:"max_length"`
	NumBeams   int    `json:"num_beams"`
}

// generateResponse is the inference server's generation result.
type generateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Generate requests one translation from the inference server.
func (c *RemoteClient) Generate(ctx context.Context, text, sourceLang, targetLang string, maxLength, numBeams int) (string, error) {
	c.logger.WithFields(logrus.Fields{
		"source_lang": sourceLang,
		"target_lang": targetLang,
		"text_length": len(text),
		"max_length":  maxLength,
		"num_beams":   numBeams,
	}).Debug("Requesting generation from remote engine")

	reqPayload := generateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		MaxLength:  maxLength,
		NumBeams:   numBeams,
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&reqPayload); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url": url,
		}).Error("Generation request failed")
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(bodyBytes),
		}).Error("Generation request returned non-OK status")
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": sourceLang,
		"target_lang": targetLang,
		"duration_ms": duration.Milliseconds(),
	}).Info("Generation completed")

	return genResp.TranslatedText, nil
}

// CheckHealth verifies the inference server is up and has a model loaded.
func (c *RemoteClient) CheckHealth(ctx context.Context) error {
	url := c.baseURL + "/model/info"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

// ModelInfo fetches model metadata from the inference server.
func (c *RemoteClient) ModelInfo(ctx context.Context) (map[string]interface{}, error) {
	url := c.baseURL + "/model/info"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create model info request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var info map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return info, nil
}
