// Package commands wires the airdrop-mcp CLI: the MCP server plus a few
// operator utilities around the keystore and the audit trail.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/config"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/logging"
)

var (
	configPath string
	cfg        *config.Config
)

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "airdrop-mcp",
		Short:         "MCP server orchestrating employee token airdrops",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default {data-dir}/config.yaml)")

	root.AddCommand(serveCmd(), keygenCmd(), runsCmd())
	return root.Execute()
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, cfg.LogLevel)
}
