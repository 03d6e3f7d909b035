package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultEndpointBase = "https://api.line.me"

// Client is a minimal LINE Messaging API client covering what the bot
// needs: push, reply and profile lookup.
type Client struct {
	channelAccessToken string
	endpointBase       string
	httpClient         *http.Client
}

// ClientOption is a functional option for configuring the client
type ClientOption func(*Client)

// WithEndpointBase overrides the API endpoint base, for tests.
func WithEndpointBase(endpointBase string) ClientOption {
	return func(c *Client) {
		c.endpointBase = endpointBase
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Messaging API client for the given channel token.
func NewClient(channelAccessToken string, options ...ClientOption) *Client {
	c := &Client{
		channelAccessToken: channelAccessToken,
		endpointBase:       defaultEndpointBase,
		httpClient:         http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Push sends messages to a user outside of a reply context.
func (c *Client) Push(ctx context.Context, to string, messages ...Message) error {
	payload := map[string]any{
		"to":       to,
		"messages": messages,
	}
	return c.post(ctx, "/v2/bot/message/push", payload)
}

// Reply answers a webhook event using its reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...Message) error {
	payload := map[string]any{
		"replyToken": replyToken,
		"messages":   messages,
	}
	return c.post(ctx, "/v2/bot/message/reply", payload)
}

// Profile is the subset of the LINE profile the bot uses.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// GetProfile resolves a LIFF access token to the LINE user it belongs to.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointBase+"/v2/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &profile, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointBase+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelAccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("message request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("message request returned status %d", resp.StatusCode)
	}
	return nil
}
