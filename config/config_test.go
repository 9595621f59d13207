package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
network: testnet
log_level: debug
metrics_addr: "127.0.0.1:9464"
email:
  domain: mg.acme.io
  from: hr@acme.io
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.Equal(t, "mg.acme.io", cfg.Email.Domain)
	assert.Equal(t, "hr@acme.io", cfg.Email.From)
	// Unset fields keep their defaults.
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: [broken"), 0o600))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"AIRDROP_NETWORK":         "mainnet",
		"AIRDROP_RPC_URL":         "https://rpc.example.com",
		"AIRDROP_CUSTODY_API_KEY": "ck",
		"AIRDROP_EMAIL_DOMAIN":    "mg.acme.io",
	}
	applyEnv(&cfg, func(key string) string { return env[key] })

	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, "https://rpc.example.com", cfg.RPCURL)
	assert.Equal(t, "ck", cfg.Custody.APIKey)
	assert.Equal(t, "mg.acme.io", cfg.Email.Domain)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad network", func(c *Config) { c.Network = "localnet" }, ErrInvalidNetwork},
		{"mainnet without rpc", func(c *Config) { c.Network = "mainnet" }, ErrMainnetRPC},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
