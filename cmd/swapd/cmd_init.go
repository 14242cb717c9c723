package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokenswap/swapper/app"
)

func initCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Initialize the ledger from a genesis file",
		Long: `Initialize the ledger stored in the home directory from a genesis file.

The genesis file declares the chain id and the initial state:

  {
    "chain_id": "swap-local",
    "app_state": {
      "conf": {
        "token": {"lamports_per_byte_year": 3480, "exemption_years": 2},
        "offer": {"program_id": "HezVxzdFxE8hfLJGp24nLQ31M6jjzJD8Uyj1QCxJGJ45"}
      },
      "wallets": [{"address": "<address>", "lamports": 1000000000}],
      "mints": [{"address": "<mint>", "authority": "<address>", "decimals": 6, "payer": "<address>"}],
      "balances": [{"owner": "<address>", "mint": "<mint>", "amount": 1000}]
    }
  }

A ledger can be initialized only once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			node, closeFn, err := e.openNode()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := node.InitChain(gen, app.Initializer()); err != nil {
				return err
			}
			id, err := node.Commit()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s initialized at height %d, hash %X\n", gen.ChainID, id.Version, id.Hash)
			return err
		},
	}
}
