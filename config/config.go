// Package config loads the server configuration: YAML file, overlaid by
// environment variables, then validated. Everything has a working default
// except mainnet RPC, which must be configured explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up inside the data directory.
const DefaultFileName = "config.yaml"

// Config is the full server configuration.
type Config struct {
	// Network selects the ledger network: devnet, testnet or mainnet.
	Network string `yaml:"network"`
	// RPCURL overrides the network's preset RPC endpoint. Required for
	// mainnet.
	RPCURL string `yaml:"rpc_url"`
	// DataDir holds the funding keystore and the distribution audit log.
	DataDir string `yaml:"data_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MetricsAddr enables the Prometheus listener when non-empty,
	// e.g. "127.0.0.1:9464".
	MetricsAddr string `yaml:"metrics_addr"`

	Custody CustodyConfig `yaml:"custody"`
	Email   EmailConfig   `yaml:"email"`
}

// CustodyConfig configures the wallet custody provider. An empty APIKey means
// custody runs simulated.
type CustodyConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// EmailConfig configures the notification provider. An empty APIKey means
// delivery runs simulated.
type EmailConfig struct {
	BaseURL string `yaml:"base_url"`
	Domain  string `yaml:"domain"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Network:  "devnet",
		DataDir:  defaultDataDir(),
		LogLevel: "info",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".airdrop-mcp"
	}
	return filepath.Join(home, ".airdrop-mcp")
}

// Load reads the configuration: defaults, then the YAML file at path (missing
// file is fine when path is empty; an explicit path must exist), then
// environment variables, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = filepath.Join(cfg.DataDir, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file is a valid setup.
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigNotFound, path, err)
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overlays AIRDROP_* environment variables onto cfg.
func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Network, "AIRDROP_NETWORK")
	set(&cfg.RPCURL, "AIRDROP_RPC_URL")
	set(&cfg.DataDir, "AIRDROP_DATA_DIR")
	set(&cfg.LogLevel, "AIRDROP_LOG_LEVEL")
	set(&cfg.MetricsAddr, "AIRDROP_METRICS_ADDR")
	set(&cfg.Custody.BaseURL, "AIRDROP_CUSTODY_URL")
	set(&cfg.Custody.APIKey, "AIRDROP_CUSTODY_API_KEY")
	set(&cfg.Email.BaseURL, "AIRDROP_EMAIL_URL")
	set(&cfg.Email.Domain, "AIRDROP_EMAIL_DOMAIN")
	set(&cfg.Email.APIKey, "AIRDROP_EMAIL_API_KEY")
	set(&cfg.Email.From, "AIRDROP_EMAIL_FROM")
}
