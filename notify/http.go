package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPNotifier sends mail through a Mailgun-shaped HTTP API: form-encoded
// POST to /v3/{domain}/messages with API-key basic auth.
type HTTPNotifier struct {
	BaseURL string // e.g. "https://api.mailgun.net"
	Domain  string // sending domain
	APIKey  string
	client  *http.Client
}

// NewHTTPNotifier creates an HTTPNotifier for the given domain and key.
func NewHTTPNotifier(baseURL, domain, apiKey string) (*HTTPNotifier, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if baseURL == "" {
		baseURL = "https://api.mailgun.net"
	}
	return &HTTPNotifier{
		BaseURL: baseURL,
		Domain:  domain,
		APIKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}, nil
}

// Send delivers one message through the API.
func (n *HTTPNotifier) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("from", msg.From)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", n.BaseURL, n.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", n.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}
	return nil
}
