// Package gemini is a minimal client for the Gemini generateContent API.
// One logical operation is exposed: generate structured content from an
// instruction string, biased toward deterministic output.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"impactsim/internal/logging"
)

// Config holds client configuration.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float64
	Timeout         time.Duration
	MaxOutputTokens int
	MaxRetries      int
}

// DefaultConfig returns sensible defaults: a low sampling temperature so
// repeated runs of the same scenario stay comparable.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.5-flash",
		Temperature:     0.2,
		Timeout:         2 * time.Minute,
		MaxOutputTokens: 8192,
		MaxRetries:      3,
	}
}

// Client calls the Gemini API over plain HTTP.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	temperature     float64
	maxOutputTokens int
	maxRetries      int
	httpClient      *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// New creates a client from config, filling zero values with defaults.
func New(cfg Config) *Client {
	def := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = def.Model
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		maxRetries:      cfg.MaxRetries,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// GenerateJSON sends one instruction and returns the raw response text.
// The declared schema is passed along as a structured-output hint; callers
// must still decode and validate the text themselves. Transport-level
// retries on 429s and connection failures happen inside this call, so
// from the caller's view it is a single request/response exchange.
func (c *Client) GenerateJSON(ctx context.Context, instruction string, schema map[string]interface{}) (string, error) {
	// Auto-apply timeout if the context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.APIDebug("[Gemini] GenerateJSON: model=%s instruction_len=%d", c.model, len(instruction))

	if c.apiKey == "" {
		logging.APIError("[Gemini] GenerateJSON: API key not configured")
		return "", fmt.Errorf("API key not configured")
	}

	// Minimal spacing between requests.
	c.mu.Lock()
	if elapsed := time.Since(c.lastRequest); elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: instruction}}},
		},
		GenerationConfig: generationConfig{
			Temperature:      c.temperature,
			MaxOutputTokens:  c.maxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(1<<uint(i-1)) * time.Second)
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			// Some models reject response_schema; retry once without it.
			if reqBody.GenerationConfig.ResponseSchema != nil && resp.StatusCode == http.StatusBadRequest {
				bodyLower := strings.ToLower(string(body))
				if strings.Contains(bodyLower, "response_schema") || strings.Contains(bodyLower, "responseschema") {
					reqBody.GenerationConfig.ResponseSchema = nil
					lastErr = fmt.Errorf("request rejected structured output, retrying without schema: %s", string(body))
					continue
				}
			}
			return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var genResp generateResponse
		if err := json.Unmarshal(body, &genResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if genResp.Error != nil {
			return "", fmt.Errorf("API error: %s", genResp.Error.Message)
		}
		if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no completion returned")
		}

		var result strings.Builder
		for _, p := range genResp.Candidates[0].Content.Parts {
			result.WriteString(p.Text)
		}
		text := strings.TrimSpace(result.String())

		logging.API("[Gemini] GenerateJSON: completed in %v response_len=%d tokens=%d",
			time.Since(startTime), len(text), genResp.UsageMetadata.TotalTokenCount)
		return text, nil
	}

	logging.APIError("[Gemini] GenerateJSON: max retries exceeded after %v: %v", time.Since(startTime), lastErr)
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}
