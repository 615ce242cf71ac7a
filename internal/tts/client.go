// Package tts provides a client for an OpenAI-compatible speech engine and
// the background worker that narrates segments through it.
package tts

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

// ErrNotConfigured is returned when no engine URL is set.
var ErrNotConfigured = errors.New("tts: speech engine not configured")

// Client talks to the speech engine's HTTP API.
type Client struct {
	baseURL    string
	voice      string
	speed      float64
	httpClient *http.Client
}

// NewClient creates a speech engine client. baseURL must not have a
// trailing slash.
func NewClient(baseURL, voice string, speed float64, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		voice:   voice,
		speed:   speed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Voice returns the narration voice this client synthesizes with.
func (c *Client) Voice() string {
	return c.voice
}

// Health checks that the engine is reachable.
func (c *Client) Health(ctx context.Context) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}

type speechRequest struct {
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize narrates text and returns the WAV bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	jsonBody, err := json.Marshal(speechRequest{
		Input:          text,
		Voice:          c.voice,
		Speed:          c.speed,
		ResponseFormat: "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/speech", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The engine puts the reason in the body; keep it short.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(detail))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("engine returned no audio")
	}
	return data, nil
}
