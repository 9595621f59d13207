package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/keystore"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

func keygenCmd() *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the funding keypair",
		Long: `Create the encrypted funding keypair in the data directory and print its
address and recovery mnemonic. With --ephemeral the keypair is only printed,
never stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ephemeral {
				keypair, err := solana.NewKeypair()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "address:     %s\nprivate key: %s\n",
					keypair.Address(), keypair.EncodePrivateKey())
				return nil
			}

			store := keystore.NewStore(cfg.DataDir, os.Getenv("AIRDROP_KEY_PASSWORD"))
			if store.Exists() {
				return fmt.Errorf("funding keypair already exists at %s", store.Path())
			}
			keypair, mnemonic, err := store.Create()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nkeyfile: %s\n\n", keypair.Address(), store.Path())
			fmt.Fprintln(cmd.OutOrStdout(), "Recovery mnemonic, shown once. Write it down and keep it offline:")
			fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "print a keypair without storing it")
	return cmd
}
