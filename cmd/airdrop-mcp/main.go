package main

import (
	"os"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/cmd/airdrop-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
