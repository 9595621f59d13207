package solana

import "fmt"

// RPCConfig holds the connection parameters for a ledger RPC endpoint.
type RPCConfig struct {
	URL     string `json:"url" yaml:"url"`
	Network string `json:"network" yaml:"network"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Mainnet is intentionally omitted to require explicit configuration;
// distributing real value should never happen against an implied endpoint.
var NetworkPresets = map[string]RPCConfig{
	"devnet":  {URL: "https://api.devnet.solana.com", Network: "devnet"},
	"testnet": {URL: "https://api.testnet.solana.com", Network: "testnet"},
}

// ResolveConfig merges RPC configuration from three sources with decreasing
// priority:
//  1. Explicit URL (tool argument or CLI flag, highest priority)
//  2. Environment variables (AIRDROP_RPC_URL)
//  3. Network presets (devnet/testnet only)
func ResolveConfig(explicitURL string, env map[string]string, network string) (*RPCConfig, error) {
	result := RPCConfig{Network: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
	}

	if env != nil {
		if v, ok := env["AIRDROP_RPC_URL"]; ok && v != "" {
			result.URL = v
		}
	}

	if explicitURL != "" {
		result.URL = explicitURL
	}

	if result.URL == "" {
		return nil, fmt.Errorf("solana: %s requires explicit RPC configuration (set rpcUrl or AIRDROP_RPC_URL)", network)
	}

	return &result, nil
}
