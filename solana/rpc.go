package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// RPCClient is a JSON-RPC 2.0 client for the ledger gateway. Read paths map
// onto the public node RPC (getBalance, requestAirdrop, token account lookup);
// mint creation and transfer submission go to the gateway, which holds the
// transaction-assembly and signing machinery this server deliberately does not.
type RPCClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

// rpcRequest represents a JSON-RPC 2.0 request payload.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcResponse represents a JSON-RPC 2.0 response payload.
type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcError represents an error returned by the JSON-RPC server.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCClient creates a new JSON-RPC client for the given configuration.
func NewRPCClient(cfg RPCConfig) *RPCClient {
	return &RPCClient{
		url: cfg.URL,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// Call invokes a JSON-RPC method on the endpoint. If params is nil an empty
// params array is sent; if result is nil the response result is discarded.
//
// Call returns ErrConnectionFailed if the HTTP request fails and
// ErrInvalidResponse if the response cannot be decoded. RPC-level errors are
// returned as plain errors with the server's error message.
func (c *RPCClient) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("solana: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("solana: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrConnectionFailed, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}

	if rpcResp.ID != reqBody.ID {
		return fmt.Errorf("%w: response ID mismatch: expected %d, got %d",
			ErrInvalidResponse, reqBody.ID, rpcResp.ID)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("solana: rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %w", ErrInvalidResponse, err)
		}
	}
	return nil
}

// balanceResult is the getBalance response shape.
type balanceResult struct {
	Value uint64 `json:"value"`
}

// Balance returns the SOL balance of an address.
func (c *RPCClient) Balance(ctx context.Context, address string) (float64, error) {
	if err := ValidateAddress(address); err != nil {
		return 0, err
	}
	var res balanceResult
	if err := c.Call(ctx, "getBalance", []interface{}{address}, &res); err != nil {
		return 0, err
	}
	return float64(res.Value) / LamportsPerSOL, nil
}

// RequestAirdrop asks the faucet to fund an address with the given SOL amount.
func (c *RPCClient) RequestAirdrop(ctx context.Context, address string, sol float64) (string, error) {
	if err := ValidateAddress(address); err != nil {
		return "", err
	}
	lamports := uint64(sol * LamportsPerSOL)
	var signature string
	if err := c.Call(ctx, "requestAirdrop", []interface{}{address, lamports}, &signature); err != nil {
		return "", err
	}
	return signature, nil
}

// CreateMint creates a new token mint via the gateway.
func (c *RPCClient) CreateMint(ctx context.Context, req CreateMintRequest) (*Mint, error) {
	var mint Mint
	if err := c.Call(ctx, "createMint", []interface{}{req}, &mint); err != nil {
		return nil, err
	}
	if mint.Address == "" {
		return nil, fmt.Errorf("%w: missing mint address", ErrInvalidResponse)
	}
	return &mint, nil
}

// tokenAccountResult is the token-account lookup response shape.
type tokenAccountResult struct {
	Exists bool `json:"exists"`
}

// HasTokenAccount reports whether owner has a token account for mint.
func (c *RPCClient) HasTokenAccount(ctx context.Context, owner, mint string) (bool, error) {
	var res tokenAccountResult
	if err := c.Call(ctx, "hasTokenAccount", []interface{}{owner, mint}, &res); err != nil {
		return false, err
	}
	return res.Exists, nil
}

// SubmitTransfer submits one atomic transfer transaction via the gateway.
func (c *RPCClient) SubmitTransfer(ctx context.Context, req TransferRequest) (string, error) {
	var signature string
	if err := c.Call(ctx, "submitTransfer", []interface{}{req}, &signature); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	if signature == "" {
		return "", fmt.Errorf("%w: empty signature", ErrInvalidResponse)
	}
	return signature, nil
}
