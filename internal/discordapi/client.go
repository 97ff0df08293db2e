// Package discordapi is a thin Discord REST client covering the two
// surfaces the bot needs: webhook follow-up edits/deletes addressed by
// the interaction continuation token, and bulk command registration.
package discordapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skyhigh636/Skybot/internal/discord"
	"github.com/valyala/fasthttp"
)

const defaultBaseURL = "https://discord.com/api/v10"

type Client struct {
	baseURL string
	appID   string
	token   string
	http    *fasthttp.Client

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func NewClient(appID, botToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:        defaultBaseURL,
		appID:          strings.TrimSpace(appID),
		token:          strings.TrimSpace(botToken),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) followupPath(interactionToken, messageID string) string {
	return fmt.Sprintf("/webhooks/%s/%s/messages/%s", c.appID, interactionToken, messageID)
}

// DeleteFollowupMessage removes a previously sent message via the
// interaction's continuation token.
func (c *Client) DeleteFollowupMessage(ctx context.Context, interactionToken, messageID string) error {
	return c.doJSON(ctx, fasthttp.MethodDelete, c.followupPath(interactionToken, messageID), nil, nil, false)
}

// EditFollowupMessage replaces the components of a previously sent
// message via the interaction's continuation token.
func (c *Client) EditFollowupMessage(ctx context.Context, interactionToken, messageID string, components []discord.Component) error {
	body := map[string]any{"components": components}
	return c.doJSON(ctx, fasthttp.MethodPatch, c.followupPath(interactionToken, messageID), body, nil, false)
}

// RegisterCommands overwrites the application's global command list.
func (c *Client) RegisterCommands(ctx context.Context, cmds []Command) error {
	return c.doJSON(ctx, fasthttp.MethodPut, "/applications/"+c.appID+"/commands", cmds, nil, true)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bot "+c.token)
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := 1
	if retry && c.retryMax > 1 {
		attempts = c.retryMax
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx))
		if err != nil {
			if attempt == attempts || !retry {
				return fmt.Errorf("request failed: %w", err)
			}
			lastErr = err
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			err := fmt.Errorf("discord api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
			if attempt == attempts || !retry || !shouldRetryStatus(status) {
				return err
			}
			lastErr = err
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if out != nil && len(resp.Body()) > 0 {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
