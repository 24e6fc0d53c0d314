// Package assistant wraps the external generative-text service behind a
// narrow interface. Callers always receive user-facing text: any failure
// of the upstream service degrades to a fixed fallback message.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/awnumar/memguard"
)

// systemInstruction steers the model toward the storefront's domain.
const systemInstruction = "You are the RoyalKeys Assistant. You are an expert in Windows keys, " +
	"Office licenses, Antivirus (Kaspersky, Norton), and Games (Steam, Xbox). " +
	"Keep answers professional and short. Always recommend a product from the " +
	"RoyalKeys catalog when helpful."

// Canned replies used when the upstream service cannot produce text.
const (
	fallbackMaintenance = "I am currently performing maintenance on my royal scrolls. How else can I assist you with our products?"
	fallbackResetting   = "The connection to the AI brain is being reset. Please try again in a moment."
	fallbackEmpty       = "I'm here to help you find the perfect digital key!"
)

// DefaultModel is the text-generation model requested from the service.
const DefaultModel = "gemini-3-flash-preview"

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the settings for the generative-text client.
type Config struct {
	// Endpoint is the base URL of the service, without a trailing slash.
	Endpoint string
	// Model selects the generation model. Empty means DefaultModel.
	Model string
	// APIKey authenticates requests. It is moved into a guarded enclave
	// and wiped from this struct by NewClient.
	APIKey string
}

// Client talks to a generateContent-style HTTP endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   *memguard.Enclave
	client   *http.Client
}

var _ Completer = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client for the given service. The API key is held in
// a memguard enclave and only materialized per request.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if cfg.APIKey != "" {
		c.apiKey = memguard.NewEnclave([]byte(cfg.APIKey))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	SystemInstruction content   `json:"system_instruction"`
	Contents          []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends prompt to the service and returns the first candidate's
// text. Errors are returned raw; use Respond for user-facing handling.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != nil {
		keyBuf, err := c.apiKey.Open()
		if err != nil {
			return "", fmt.Errorf("opening API key enclave: %w", err)
		}
		req.Header.Set("X-Goog-Api-Key", string(keyBuf.Bytes()))
		keyBuf.Destroy()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("assistant service returned %d: %s", resp.StatusCode, string(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding assistant response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// Respond turns a prompt into text the chat widget can always display.
// Upstream failures never surface: a missing-entity error maps to the
// resetting message, everything else to the maintenance message, and an
// empty completion to a friendly default.
func Respond(ctx context.Context, c Completer, prompt string) string {
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		if strings.Contains(err.Error(), "entity was not found") {
			return fallbackResetting
		}
		return fallbackMaintenance
	}
	if text == "" {
		return fallbackEmpty
	}
	return text
}
