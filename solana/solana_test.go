package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeypairRoundTrip(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	parsed, err := ParsePrivateKey(kp.EncodePrivateKey())
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), parsed.Address())
	assert.Equal(t, kp.PrivateKey, parsed.PrivateKey)
}

func TestKeypairFromSeed_Deterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	a, err := KeypairFromSeed(seed)
	require.NoError(t, err)
	b, err := KeypairFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a.Address(), b.Address())
}

func TestKeypairFromSeed_WrongLength(t *testing.T) {
	_, err := KeypairFromSeed(make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-base58-0OIl", "abc"} {
		_, err := ParsePrivateKey(in)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey, in)
	}
}

func TestValidateAddress(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)
	assert.NoError(t, ValidateAddress(kp.Address()))

	assert.ErrorIs(t, ValidateAddress("abc"), ErrInvalidAddress)
	assert.ErrorIs(t, ValidateAddress(""), ErrInvalidAddress)
}

func TestResolveConfig_Layering(t *testing.T) {
	// Preset only.
	cfg, err := ResolveConfig("", nil, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.URL)

	// Env overrides preset.
	cfg, err = ResolveConfig("", map[string]string{"AIRDROP_RPC_URL": "http://env:8899"}, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://env:8899", cfg.URL)

	// Explicit URL wins over everything.
	cfg, err = ResolveConfig("http://flag:8899", map[string]string{"AIRDROP_RPC_URL": "http://env:8899"}, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:8899", cfg.URL)
}

func TestResolveConfig_MainnetRequiresURL(t *testing.T) {
	_, err := ResolveConfig("", nil, "mainnet")
	require.Error(t, err)

	cfg, err := ResolveConfig("https://rpc.example.com", nil, "mainnet")
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com", cfg.URL)
}

func TestRPCClientBalance(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getBalance", req.Method)

		resp := rpcResponse{ID: req.ID, Result: json.RawMessage(`{"value": 2500000000}`)}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	balance, err := client.Balance(context.Background(), kp.Address())
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)
}

func TestRPCClientRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := rpcResponse{ID: req.ID, Error: &rpcError{Code: -32602, Message: "invalid params"}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	var result json.RawMessage
	err := client.Call(context.Background(), "createMint", []interface{}{}, &result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid params")
}

func TestRPCClientConnectionError(t *testing.T) {
	client := NewRPCClient(RPCConfig{URL: "http://localhost:1"})
	var result int
	err := client.Call(context.Background(), "getBalance", nil, &result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestRPCClientAbsentResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Success envelope with no result field at all.
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d}`, req.ID)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	var result balanceResult
	err := client.Call(context.Background(), "getBalance", nil, &result)
	require.NoError(t, err)
	assert.Zero(t, result.Value)
}

func TestRPCClientIDMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := rpcResponse{ID: 9999, Result: json.RawMessage(`1`)}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	var result int
	err := client.Call(context.Background(), "getBalance", nil, &result)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSimulatedLedger_MintAndTransfer(t *testing.T) {
	ledger := NewSimulatedLedger()
	ctx := context.Background()

	mint, err := ledger.CreateMint(ctx, CreateMintRequest{
		Name: "HR Token", Symbol: "HRT", Supply: 1000000, Decimals: 9, Authority: "senderAddr",
	})
	require.NoError(t, err)
	assert.True(t, mint.Simulated)
	assert.NotEmpty(t, mint.Address)

	// Authority got a source token account.
	has, err := ledger.HasTokenAccount(ctx, "senderAddr", mint.Address)
	require.NoError(t, err)
	assert.True(t, has)

	// Recipient has none yet.
	has, err = ledger.HasTokenAccount(ctx, "recipient", mint.Address)
	require.NoError(t, err)
	assert.False(t, has)

	// Transfer without a create-account instruction fails.
	_, err = ledger.SubmitTransfer(ctx, TransferRequest{
		Mint:   mint.Address,
		Sender: "senderAddr",
		Instructions: []Instruction{
			{Type: InstructionTransfer, Owner: "recipient", Amount: 100},
		},
	})
	assert.ErrorIs(t, err, ErrSubmitFailed)

	// Create-account then transfer in the same transaction succeeds.
	sig, err := ledger.SubmitTransfer(ctx, TransferRequest{
		Mint:   mint.Address,
		Sender: "senderAddr",
		Instructions: []Instruction{
			{Type: InstructionCreateAccount, Owner: "recipient"},
			{Type: InstructionTransfer, Owner: "recipient", Amount: 100},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, sig, "SIM")
}

func TestSimulatedLedger_AirdropAndBalance(t *testing.T) {
	ledger := NewSimulatedLedger()
	ctx := context.Background()

	balance, err := ledger.Balance(ctx, "addr")
	require.NoError(t, err)
	assert.Zero(t, balance)

	_, err = ledger.RequestAirdrop(ctx, "addr", 1.5)
	require.NoError(t, err)

	balance, err = ledger.Balance(ctx, "addr")
	require.NoError(t, err)
	assert.Equal(t, 1.5, balance)

	// SetBalance overwrites rather than credits.
	ledger.SetBalance("addr", 0.25)
	balance, err = ledger.Balance(ctx, "addr")
	require.NoError(t, err)
	assert.Equal(t, 0.25, balance)
}
