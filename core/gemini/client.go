// Package gemini is the HTTP client for the generative language model
// endpoint that produces song recommendations.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"moodfm/logger"
	"moodfm/model"
)

// Config contains the Gemini client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the generateContent endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a Gemini client. The default timeout mirrors the
// transport ceiling of the rest of the system.
func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 360 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GenerateText sends the prompt and returns the first candidate text of the
// response. Missing response structure yields an empty string, not an error:
// the pipeline treats that as "no usable text".
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := model.NewGeminiRequest(prompt)
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Auth is a query-string key parameter, not a header.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.Model, url.QueryEscape(c.config.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if IsRateLimitSignal(resp.StatusCode, string(body)) {
			logger.Warn("[Gemini] rate limit signalled",
				logger.Int("status", resp.StatusCode))
			return "", fmt.Errorf("%w (status %d)", ErrRateLimited, resp.StatusCode)
		}
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp model.GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := genResp.FirstText()
	logger.Debug("[Gemini] generateContent complete",
		logger.Int("responseLength", len(text)))
	return text, nil
}
