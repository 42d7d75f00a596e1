// Package backend talks to the club REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10

	// interstitialHeader skips the tunnel host's browser warning page.
	interstitialHeader = "skip_zrok_interstitial"
)

// Config captures the backend location and per-request timeout.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.Backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Do sends body as JSON and decodes a 2xx answer into out. A 401 becomes
// domain.ErrSessionInvalid; any other non-2xx becomes *domain.BackendError.
func (c *Client) Do(ctx context.Context, token, method, path string, body, out any) error {
	resp, err := c.send(ctx, token, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrBackend, method, path, err)
	}
	return nil
}

// Download streams a 2xx answer to the caller, who must close Body.
func (c *Client) Download(ctx context.Context, token, path string) (*ports.Download, error) {
	resp, err := c.send(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return &ports.Download{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		Disposition:   resp.Header.Get("Content-Disposition"),
		ContentLength: resp.ContentLength,
	}, nil
}

// send performs the request and returns the response only for 2xx answers.
func (c *Client) send(ctx context.Context, token, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set(interstitialHeader, "true")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackend, method, path, err)
	}
	metrics.BackendRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Info().Str("method", method).Str("path", path).Msg("backend rejected session")
		return nil, domain.ErrSessionInvalid
	}

	msg := errorMessage(resp.Body)
	c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", msg).Msg("backend request failed")
	return nil, &domain.BackendError{Status: resp.StatusCode, Message: msg}
}

// errorMessage extracts a message from a JSON {"message"} / {"error"} body or
// falls back to the trimmed text.
func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(data))
}
