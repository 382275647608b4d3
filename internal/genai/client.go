package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"mentorlab/internal/domain"
	"mentorlab/internal/logger"

	"go.uber.org/zap"
)

// fallbackModels is the fixed sequence tried after the configured default
// model. Entries are tried in order; the first usable response wins.
var fallbackModels = []string{
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-2.0-flash-exp",
}

// ClientConfig carries the settings for a generative API client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	// Model is the primary candidate, tried before the fallback sequence.
	Model string
	// MinRequestInterval is the pacing floor between outbound calls.
	MinRequestInterval time.Duration
	// CallTimeout bounds each individual attempt.
	CallTimeout time.Duration
	// PrimaryRetryDelay and RetryDelay are the pauses after a failed attempt
	// on the primary and on fallback models respectively. Zero values pick
	// the defaults; tests set them very low.
	PrimaryRetryDelay time.Duration
	RetryDelay        time.Duration
}

// Client invokes the generative language REST API with ordered model
// fallback. Only one model is attempted at a time; attempts share a single
// process-wide pacing clock.
type Client struct {
	httpClient        *http.Client
	apiKey            string
	baseURL           string
	models            []string
	pacer             *Pacer
	callTimeout       time.Duration
	primaryRetryDelay time.Duration
	retryDelay        time.Duration
}

// NewClient creates a generative API client. The candidate list is the
// configured model followed by the fixed fallback sequence.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generative API key cannot be empty")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("generative API base URL cannot be empty")
	}

	models := make([]string, 0, len(fallbackModels)+1)
	if cfg.Model != "" {
		models = append(models, cfg.Model)
	}
	for _, m := range fallbackModels {
		if m != cfg.Model {
			models = append(models, m)
		}
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	primaryRetryDelay := cfg.PrimaryRetryDelay
	if primaryRetryDelay <= 0 {
		primaryRetryDelay = 2 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 500 * time.Millisecond
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: callTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		},
		apiKey:            cfg.APIKey,
		baseURL:           cfg.BaseURL,
		models:            models,
		pacer:             NewPacer(cfg.MinRequestInterval),
		callTimeout:       callTimeout,
		primaryRetryDelay: primaryRetryDelay,
		retryDelay:        retryDelay,
	}, nil
}

// Request/response shapes of the generateContent endpoint.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate tries each candidate model in order and returns the first
// candidate text produced. A 404 moves on to the next model, a 429 aborts
// the whole sequence with a RateLimitedError, and any other failure is
// logged and retried on the next model after a short pause. When every model
// fails for a non-quota reason, a NoModelAvailableError is returned.
func (c *Client) Generate(ctx context.Context, prompt string, params domain.GenerationParams) (string, error) {
	l := logger.Get()

	for i, model := range c.models {
		if err := c.pacer.Acquire(ctx); err != nil {
			return "", err
		}

		text, err := c.generateOnce(ctx, model, prompt, params)
		if err == nil {
			l.Info("Generated content",
				zap.String("model", model),
				zap.Int("attempt", i+1))
			return text, nil
		}

		var rl *RateLimitedError
		if errors.As(err, &rl) {
			l.Error("Rate limit exceeded, skipping remaining models",
				zap.String("model", model))
			return "", err
		}

		var nf *modelNotFoundError
		if errors.As(err, &nf) {
			l.Warn("Model not found, trying next model", zap.String("model", model))
		} else {
			l.Error("Generation attempt failed",
				zap.String("model", model),
				zap.Error(err))
		}

		if i < len(c.models)-1 {
			// Pause before the next candidate; the primary model gets a
			// longer cool-down.
			delay := c.retryDelay
			if i == 0 {
				delay = c.primaryRetryDelay
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return "", &NoModelAvailableError{Models: c.models}
}

// generateOnce issues a single request against one model.
func (c *Client) generateOnce(ctx context.Context, model, prompt string, params domain.GenerationParams) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
			TopP:            params.TopP,
			TopK:            params.TopK,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to model %s failed: %w", model, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &modelNotFoundError{Model: model}
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &RateLimitedError{Model: model, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model %s returned status %d: %s", model, resp.StatusCode, snippet)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response from model %s: %w", model, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

var _ domain.TextGenerator = (*Client)(nil)
