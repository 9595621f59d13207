package custody

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvider talks to a wallet-custody service over its HTTPS API.
// The endpoint is either fixed (BaseURL) or discovered per email domain via
// SRV records, falling back to BaseURL when discovery finds nothing.
type HTTPProvider struct {
	BaseURL  string      // e.g. "https://custody.example.com"
	APIKey   string      // bearer token
	Resolver DNSResolver // nil disables SRV discovery
	client   *http.Client
}

// NewHTTPProvider creates an HTTPProvider for the given endpoint and API key.
func NewHTTPProvider(baseURL, apiKey string) (*HTTPProvider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return &HTTPProvider{
		BaseURL: baseURL,
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

// provisionResponse is the provider's wallet-creation response body.
type provisionResponse struct {
	Email   string `json:"email"`
	Address string `json:"address"`
}

// balanceResponse is the provider's balance response body.
type balanceResponse struct {
	Balance float64 `json:"balance"`
}

// ProvisionWallet creates or fetches the custodial wallet for email.
func (p *HTTPProvider) ProvisionWallet(ctx context.Context, email string) (*Wallet, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("custody: marshal request: %w", err)
	}

	var resp provisionResponse
	if err := p.do(ctx, email, http.MethodPost, "/v1/wallets", body, &resp); err != nil {
		return nil, err
	}
	if resp.Address == "" {
		return nil, fmt.Errorf("%w: missing wallet address", ErrInvalidResponse)
	}

	return &Wallet{Email: email, Address: resp.Address}, nil
}

// WalletBalance returns the SOL balance of the custodial wallet for email.
func (p *HTTPProvider) WalletBalance(ctx context.Context, email string) (float64, error) {
	if email == "" {
		return 0, ErrEmptyEmail
	}

	path := "/v1/wallets/" + url.PathEscape(email) + "/balance"
	var resp balanceResponse
	if err := p.do(ctx, email, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// endpoint picks the service base URL for an email: SRV discovery on the email
// domain when a resolver is configured, else the fixed BaseURL.
func (p *HTTPProvider) endpoint(email string) string {
	if p.Resolver != nil {
		if domain := EmailDomain(email); domain != "" {
			if eps, err := DiscoverEndpointsWithResolver(domain, p.Resolver); err == nil && len(eps) > 0 {
				return "https://" + eps[0]
			}
		}
	}
	return p.BaseURL
}

// do performs one authenticated API call and decodes the JSON response.
func (p *HTTPProvider) do(ctx context.Context, email, method, path string, body []byte, result interface{}) error {
	base := p.endpoint(email)
	if base == "" {
		return fmt.Errorf("%w: no endpoint configured or discovered", ErrNoEndpoints)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("custody: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrProviderRequest, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}
	return nil
}
