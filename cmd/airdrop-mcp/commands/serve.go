package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/airdrop"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/custody"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/keystore"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/logging"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/mcp"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/metrics"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/notify"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/workflow"
)

// auditFileName is the bbolt database inside the data directory.
const auditFileName = "audit.db"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the airdrop workflow as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			audit, err := airdrop.OpenAuditStore(filepath.Join(cfg.DataDir, auditFileName))
			if err != nil {
				return err
			}
			defer audit.Close()

			opts := workflow.Options{
				Audit:  audit,
				Keys:   keystore.NewStore(cfg.DataDir, os.Getenv("AIRDROP_KEY_PASSWORD")),
				Logger: log,
				LedgerFactory: func(rpcURL string) (solana.LedgerService, error) {
					resolved, err := solana.ResolveConfig(rpcURL, envMap(), cfg.Network)
					if err != nil {
						return nil, err
					}
					return solana.NewRPCClient(*resolved), nil
				},
				CustodyFactory: func(apiKey string) (custody.Provider, error) {
					return custody.NewHTTPProvider(cfg.Custody.BaseURL, apiKey)
				},
				NotifierFactory: func(apiKey string) (notify.Notifier, error) {
					return notify.NewHTTPNotifier(cfg.Email.BaseURL, cfg.Email.Domain, apiKey)
				},
			}

			// Config-level credentials wire the default collaborators; tool
			// arguments can still swap them per call.
			if resolved, err := solana.ResolveConfig(cfg.RPCURL, envMap(), cfg.Network); err == nil {
				opts.Ledger = solana.NewRPCClient(*resolved)
			} else {
				log.Warn("no RPC endpoint resolved, ledger runs simulated", "error", err)
			}
			if cfg.Custody.APIKey != "" {
				provider, err := custody.NewHTTPProvider(cfg.Custody.BaseURL, cfg.Custody.APIKey)
				if err != nil {
					return err
				}
				opts.Custody = provider
				log.Info("custody provider configured", "key", logging.Redact(cfg.Custody.APIKey))
			}
			if cfg.Email.APIKey != "" {
				notifier, err := notify.NewHTTPNotifier(cfg.Email.BaseURL, cfg.Email.Domain, cfg.Email.APIKey)
				if err != nil {
					return err
				}
				opts.Notifier = &notify.FallbackNotifier{
					Primary:  notifier,
					Fallback: notify.NewSimulatedNotifier(),
				}
				log.Info("email provider configured", "domain", cfg.Email.Domain)
			}

			server, err := mcp.NewServer(workflow.New(opts), log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
						log.Error("metrics listener failed", "addr", cfg.MetricsAddr, "error", err)
					}
				}()
				log.Info("metrics listener enabled", "addr", cfg.MetricsAddr)
			}

			log.Info("serving MCP over stdio",
				"network", cfg.Network, "data_dir", cfg.DataDir)
			return server.Serve(ctx)
		},
	}
}

func envMap() map[string]string {
	return map[string]string{
		"AIRDROP_RPC_URL": os.Getenv("AIRDROP_RPC_URL"),
	}
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded distribution runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, err := airdrop.OpenAuditStore(filepath.Join(cfg.DataDir, auditFileName))
			if err != nil {
				return err
			}
			defer audit.Close()

			runs, err := audit.ListRuns()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no distribution runs recorded")
				return nil
			}
			for _, run := range runs {
				status := "completed"
				if !run.Completed {
					status = "aborted"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  mint=%s recipients=%d batches=%d  %s\n",
					run.StartedAt.Format("2006-01-02 15:04:05"), status,
					run.Mint, run.Recipients, len(run.Batches), run.ID)
			}
			return nil
		},
	}
}
