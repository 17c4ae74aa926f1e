// Package provider calls a tenant's upstream game provider over the envelope
// protocol.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// Client implements ports.ProviderClient.
type Client struct {
	http *http.Client
	log  zerolog.Logger
	now  func() time.Time
}

func NewClient(timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
		now:  time.Now,
	}
}

type providerResponse struct {
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	Payload json.RawMessage `json:"payload"`
}

type launchPayload struct {
	GameLaunchURL string `json:"game_launch_url"`
}

// Launch seals req with keys[0], posts it to keys[0].UpstreamURL and returns
// the game URL from the reply.
func (c *Client) Launch(ctx context.Context, keys []domain.Credential, req *domain.LaunchRequest) (string, error) {
	if len(keys) == 0 {
		return "", errors.New("provider launch: no credentials")
	}
	primary := keys[0]
	if primary.UpstreamURL == "" {
		return "", fmt.Errorf("provider launch: tenant %s has no upstream_url", primary.TenantID)
	}

	env, err := envelope.Seal(req, primary, c.now())
	if err != nil {
		return "", fmt.Errorf("seal launch request: %w", err)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode launch envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, primary.UpstreamURL, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("provider launch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read provider response: %w", err)
	}

	c.log.Debug().
		Str("tenant_id", primary.TenantID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("provider launch")

	var out providerResponse
	decodeErr := json.Unmarshal(body, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr != nil {
			out = providerResponse{}
		}
		return "", &ports.ProviderError{HTTPStatus: resp.StatusCode, Code: out.Code, Msg: out.Msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode provider response: %w", decodeErr)
	}
	if out.Code != domain.CodeSuccess {
		return "", &ports.ProviderError{HTTPStatus: resp.StatusCode, Code: out.Code, Msg: out.Msg}
	}

	lp, err := openLaunchPayload(out.Payload, keys)
	if err != nil {
		return "", &ports.ProviderError{HTTPStatus: resp.StatusCode, Code: out.Code, Msg: err.Error()}
	}
	return lp.GameLaunchURL, nil
}

// openLaunchPayload accepts a base64 ciphertext string, a full envelope
// object, or an unencrypted {game_launch_url} object.
func openLaunchPayload(raw json.RawMessage, keys []domain.Credential) (*launchPayload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New("provider returned no payload")
	}

	var ciphertext string
	if err := json.Unmarshal(raw, &ciphertext); err != nil {
		var obj struct {
			Payload       string `json:"payload"`
			GameLaunchURL string `json:"game_launch_url"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unreadable provider payload: %w", err)
		}
		if obj.Payload == "" {
			return &launchPayload{GameLaunchURL: obj.GameLaunchURL}, nil
		}
		ciphertext = obj.Payload
	}

	_, plain, err := envelope.Open(ciphertext, keys)
	if err != nil {
		return nil, fmt.Errorf("open provider payload: %w", err)
	}
	var lp launchPayload
	if err := json.Unmarshal(plain, &lp); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return &lp, nil
}
