// Package webhook forwards validated event envelopes to the external
// automation endpoint. The far side is a black box; this client only speaks
// the envelope contract.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"staffsync/internal/config"
	"staffsync/internal/events"
)

// ErrNotConfigured is returned when no webhook URL is set. Callers treat it
// as "forwarding disabled", not a failure of the local mutation.
var ErrNotConfigured = errors.New("webhook url not configured")

// Client posts envelopes to the automation webhook, attaching the shared key
// in the configured mode (request header, bearer token, or query parameter).
type Client struct {
	cfg  config.Webhook
	http *http.Client
	lg   *zap.SugaredLogger
}

// New builds a forwarder from the webhook settings.
func New(cfg config.Webhook, lg *zap.SugaredLogger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		lg:   lg,
	}
}

// Enabled reports whether a destination is configured.
func (c *Client) Enabled() bool {
	return c.cfg.URL != ""
}

// Send validates the envelope and posts it. An invalid envelope is refused
// locally, before any network I/O, with every violated constraint listed.
// The response body is decoded as JSON when possible and otherwise returned
// as an acknowledgement.
func (c *Client) Send(ctx context.Context, ev events.Envelope) (map[string]any, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	if v := events.Validate(ev); !v.OK {
		return nil, fmt.Errorf("invalid event envelope: %s", strings.Join(v.Errors, ", "))
	}

	target := c.cfg.URL
	if c.cfg.Key != "" && c.cfg.KeyMode == "query" {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("webhook url: %w", err)
		}
		q := u.Query()
		q.Set(c.cfg.KeyQueryParam, c.cfg.Key)
		u.RawQuery = q.Encode()
		target = u.String()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Key != "" {
		switch c.cfg.KeyMode {
		case "bearer":
			req.Header.Set("Authorization", "Bearer "+c.cfg.Key)
		case "header":
			req.Header.Set(c.cfg.KeyHeader, c.cfg.Key)
		}
	}

	c.lg.Debugw("webhook send",
		"actionType", ev.ActionType,
		"requestId", ev.RequestID,
		"keyMode", c.cfg.KeyMode,
		"hasKey", c.cfg.Key != "")

	resp, err := c.http.Do(req)
	if err != nil {
		c.lg.Warnw("webhook network error", "error", err)
		return nil, fmt.Errorf("could not reach automation webhook: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.lg.Warnw("webhook non-2xx", "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("webhook request failed (HTTP %d)", resp.StatusCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed != nil {
		return parsed, nil
	}
	if len(raw) > 0 {
		return map[string]any{"ok": true, "body": string(raw)}, nil
	}
	return map[string]any{"ok": true}, nil
}
