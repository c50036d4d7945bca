package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"atelier-studio-server/modules/common/config"
)

// ErrMissingKey marks the configuration error for an absent FAL key. It is
// checked before any network call so the caller can answer with a 500-class
// "Configuration Error" instead of a provider failure.
var ErrMissingKey = errors.New("FAL_KEY missing")

// ProviderError carries the provider's HTTP status and a best-effort
// human-readable message extracted from its error body.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fal API error (status %d): %s", e.StatusCode, e.Message)
}

// Request is the wire payload for fal-ai/nano-banana-pro/edit.
type Request struct {
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	ImageURLs      []string `json:"image_urls"`
	AspectRatio    string   `json:"aspect_ratio,omitempty"`
	Resolution     string   `json:"resolution,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	OutputFormat   string   `json:"output_format,omitempty"`
}

// Response is the provider's success body.
type Response struct {
	Images []ResponseImage `json:"images"`
	Seed   int64           `json:"seed,omitempty"`
}

type ResponseImage struct {
	URL string `json:"url"`
}

type providerErrorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type Client struct {
	Endpoint   string
	Key        string
	HTTPClient *http.Client
}

// NewClient builds a client from the loaded config. The key may be empty;
// Invoke reports that as ErrMissingKey.
func NewClient() *Client {
	cfg := config.GetConfig()
	return &Client{
		Endpoint: cfg.FalEndpoint,
		Key:      cfg.FalKey,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second, // hosting platform wall-clock budget
		},
	}
}

// Invoke sends one generation request and returns the output image URLs.
// No retries: a failed generation is reported immediately.
func (c *Client) Invoke(ctx context.Context, req *Request) (*Response, error) {
	if c.Key == "" {
		return nil, ErrMissingKey
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fal payload: %w", err)
	}

	log.Printf("🎨 [Fal] Sending request with %d assets, seed=%v, resolution=%s",
		len(req.ImageURLs), seedForLog(req.Seed), req.Resolution)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build fal request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Key "+c.Key)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fal request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read fal response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		log.Printf("❌ [Fal] API error %d: %s", httpResp.StatusCode, truncate(string(body), 300))
		return nil, &ProviderError{
			StatusCode: httpResp.StatusCode,
			Message:    extractErrorMessage(body),
		}
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse fal response: %w", err)
	}

	log.Printf("✅ [Fal] Received %d image(s)", len(resp.Images))
	return &resp, nil
}

// extractErrorMessage pulls detail/message/error fields out of a provider
// error body, falling back to the raw text.
func extractErrorMessage(body []byte) string {
	var parsed providerErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Detail) > 0 {
			var detailStr string
			if err := json.Unmarshal(parsed.Detail, &detailStr); err == nil && detailStr != "" {
				return detailStr
			}
			return string(parsed.Detail)
		}
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return string(body)
}

func seedForLog(seed *int64) interface{} {
	if seed == nil {
		return "none"
	}
	return *seed
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
