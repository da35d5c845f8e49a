package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/errors"
)

// Client talks to a running daemon's HTTP API on behalf of the playground.
// It implements contracts.LogFetcher for the poller.
type Client struct {
	baseURL string
	http    *http.Client
	logger  hclog.Logger
}

// NewClient creates a client for the daemon API at baseURL, e.g.
// "http://localhost:12005".
func NewClient(baseURL string, logger hclog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger.Named("client"),
	}
}

// CreateSession starts a playground session for the profile.
func (c *Client) CreateSession(ctx context.Context, profileID string) (domain.Session, error) {
	var session domain.Session
	url := fmt.Sprintf("%s/api/v1/profiles/%s/sessions", c.baseURL, profileID)
	if err := c.do(ctx, http.MethodPost, url, nil, &session); err != nil {
		return domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// EndSession marks the session as finished.
func (c *Client) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	url := fmt.Sprintf("%s/api/v1/sessions/%s", c.baseURL, sessionID)
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

// FetchLogs returns the ordered log tail for the session.
func (c *Client) FetchLogs(ctx context.Context, sessionID uuid.UUID) (domain.FetchResult, error) {
	var result domain.FetchResult
	url := fmt.Sprintf("%s/api/v1/sessions/%s/logs", c.baseURL, sessionID)
	if err := c.do(ctx, http.MethodGet, url, nil, &result); err != nil {
		return domain.FetchResult{}, fmt.Errorf("%w: %w", errors.ErrFetchFailed, err)
	}

	return result, nil
}

// SendMessage appends the user's chat message to the session log.
func (c *Client) SendMessage(ctx context.Context, sessionID uuid.UUID, content string) error {
	msg, err := json.Marshal(domain.Message{
		Role:      domain.RoleHuman,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	body := map[string]string{
		"type":    string(domain.LogTypeResponse),
		"message": string(msg),
	}
	url := fmt.Sprintf("%s/api/v1/sessions/%s/logs", c.baseURL, sessionID)
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method string, url string, in any, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
