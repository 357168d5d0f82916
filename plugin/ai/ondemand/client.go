package ondemand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/timeout"
)

// Config carries the provider connection settings.
type Config struct {
	APIKey       string
	ChatBaseURL  string // e.g. https://api.on-demand.io/chat/v1
	MediaBaseURL string // e.g. https://api.on-demand.io/media/v1

	// RequestsPerSecond limits outbound calls to the provider.
	// Zero disables rate limiting.
	RequestsPerSecond float64
}

// Client talks to the on-demand chat and media APIs. It is safe for
// concurrent use; each request owns its own buffers and accumulator.
type Client struct {
	apiKey       string
	chatBaseURL  string
	mediaBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// NewClient creates a new provider client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider API key is required")
	}
	if cfg.ChatBaseURL == "" {
		return nil, fmt.Errorf("provider chat base URL is required")
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		apiKey:       cfg.APIKey,
		chatBaseURL:  cfg.ChatBaseURL,
		mediaBaseURL: cfg.MediaBaseURL,
		// No overall client timeout: streaming reads outlive any fixed
		// request deadline. Per-call deadlines come from the context.
		httpClient: &http.Client{},
		limiter:    limiter,
		logger:     slog.Default(),
	}, nil
}

type openSessionRequest struct {
	AgentIDs       []string   `json:"agentIds"`
	ExternalUserID string     `json:"externalUserId"`
	Metadata       []Metadata `json:"contextMetadata"`
}

type openSessionResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// OpenSession creates a conversation session with the provider.
//
// The call is never retried here; retry policy, if any, belongs to the
// caller. A non-201 response returns a *StatusError carrying the HTTP
// status and body text.
func (c *Client) OpenSession(ctx context.Context, agentIDs []string, externalUserID string, metadata []Metadata) (*Session, error) {
	if len(agentIDs) == 0 {
		return nil, fmt.Errorf("at least one agent ID is required")
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout.SessionOpenTimeout)
	defer cancel()

	body, err := json.Marshal(&openSessionRequest{
		AgentIDs:       agentIDs,
		ExternalUserID: externalUserID,
		Metadata:       metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatBaseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}
	c.setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, &StatusError{Op: "open session", Status: resp.StatusCode, Body: readBodyText(resp.Body)}
	}

	var decoded openSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if decoded.Data.ID == "" {
		return nil, fmt.Errorf("session response missing id")
	}

	c.logger.Debug("provider session created",
		slog.String("session_id", decoded.Data.ID),
		slog.String("external_user_id", externalUserID))

	return &Session{
		ID:             decoded.Data.ID,
		ExternalUserID: externalUserID,
		Metadata:       metadata,
	}, nil
}

func (c *Client) setJSONHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// readBodyText reads a capped amount of a response body for error reporting.
func readBodyText(r io.Reader) string {
	const maxErrBody = 4 << 10
	b, _ := io.ReadAll(io.LimitReader(r, maxErrBody))
	return string(b)
}
