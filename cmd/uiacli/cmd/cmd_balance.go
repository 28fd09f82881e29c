package cmd

import (
	"fmt"

	"github.com/uiachain/uianode/internal/holdings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdBalance = &cobra.Command{
	Use:   "balance <currency> [address]",
	Short: "Print confirmed balances for a currency.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("Missing currency")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		if len(args) > 1 {
			balance, err := holdings.Balance(ctx, masterDB, args[0], args[1])
			if err != nil {
				return errors.Wrap(err, "Failed to fetch balance")
			}

			fmt.Printf("%s %s : %s\n", args[0], args[1], balance.String())
			return nil
		}

		all, err := holdings.List(ctx, masterDB, args[0])
		if err != nil {
			return errors.Wrap(err, "Failed to list holdings")
		}

		for _, h := range all {
			fmt.Printf("%s %s : %s\n", h.Currency, h.Address, h.Balance.String())
		}
		return nil
	},
}
