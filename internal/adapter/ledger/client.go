// Package ledger is the HTTP client for the operator's ledger API.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// Client implements ports.LedgerClient.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a ledger client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Callback posts a sealed balance adjustment to {base}/callback.
func (c *Client) Callback(ctx context.Context, env domain.Envelope) (*ports.LedgerCallbackResult, error) {
	var out ports.LedgerCallbackResult
	if err := c.post(ctx, "/callback", env, &out, func() (int, string) { return out.Code, out.Msg }); err != nil {
		return nil, err
	}
	return &out, nil
}

type launchResult struct {
	Code          int    `json:"code"`
	Msg           string `json:"msg"`
	GameLaunchURL string `json:"game_launch_url"`
}

// Launch posts a plain JSON launch request to {base}/launch.
func (c *Client) Launch(ctx context.Context, req *domain.LaunchRequest) (string, error) {
	var out launchResult
	if err := c.post(ctx, "/launch", req, &out, func() (int, string) { return out.Code, out.Msg }); err != nil {
		return "", err
	}
	if out.GameLaunchURL == "" {
		return "", &ports.LedgerError{HTTPStatus: http.StatusOK, Code: out.Code, Msg: "Ledger returned no launch URL"}
	}
	return out.GameLaunchURL, nil
}

// post sends body as JSON and decodes the answer into out. status reads the
// protocol code and message after decoding.
func (c *Client) post(ctx context.Context, path string, body, out any, status func() (int, string)) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode ledger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ledger %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read ledger %s response: %w", path, err)
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("ledger call")

	decodeErr := json.Unmarshal(respBody, out)
	code, msg := status()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr != nil {
			msg = ""
		}
		return &ports.LedgerError{HTTPStatus: resp.StatusCode, Code: code, Msg: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode ledger %s response: %w", path, decodeErr)
	}
	if code != domain.CodeSuccess {
		return &ports.LedgerError{HTTPStatus: resp.StatusCode, Code: code, Msg: msg}
	}
	return nil
}
