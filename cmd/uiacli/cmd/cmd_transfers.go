package cmd

import (
	"fmt"

	"github.com/uiachain/uianode/internal/transfer"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdTransfers = &cobra.Command{
	Use:   "transfers [txid]",
	Short: "Print persisted transfer rows.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		if len(args) > 0 {
			row, err := transfer.FetchRow(ctx, masterDB, args[0])
			if err != nil {
				return errors.Wrap(err, "Failed to fetch transfer")
			}

			return dumpJSON(row)
		}

		rows, err := transfer.ListRows(ctx, masterDB)
		if err != nil {
			return errors.Wrap(err, "Failed to list transfers")
		}

		for _, row := range rows {
			a := transfer.Read(row)
			if a == nil {
				continue
			}
			fmt.Printf("%s : %s %s\n", row.TxID, a.Amount, a.Currency)
		}
		return nil
	},
}
