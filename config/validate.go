package config

import "fmt"

var validNetworks = map[string]bool{
	"devnet":  true,
	"testnet": true,
	"mainnet": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if !validNetworks[c.Network] {
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, c.Network)
	}
	if c.Network == "mainnet" && c.RPCURL == "" {
		return ErrMainnetRPC
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}
	return nil
}
