package cmd

import (
	"fmt"

	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/platform/node"
	"github.com/uiachain/uianode/internal/platform/state"
	"github.com/uiachain/uianode/internal/pool"
	"github.com/uiachain/uianode/internal/transfer"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// cmdTransfer runs a transfer through the full handler life cycle against
// local storage: normalize, verify, confirmed apply, persist. Intended for
// standalone mode maintenance and testing.
var cmdTransfer = &cobra.Command{
	Use:   "transfer <currency> <amount> <senderAddress> <recipientAddress>",
	Short: "Verify and apply a transfer against local storage.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 4 {
			return errors.New("Requires currency, amount, sender and recipient")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		feeValue, err := amount.Parse(cfg.Node.FeeValue)
		if err != nil {
			return errors.Wrap(err, "Invalid fee value")
		}

		nodeConfig := &node.Config{
			OperatorName: cfg.Node.OperatorName,
			Version:      cfg.Node.Version,
			FeeValue:     feeValue,
			IsTest:       cfg.Node.IsTest,
		}

		handler := transfer.NewTransfer(masterDB, nodeConfig, pool.New())

		tx := handler.Create(&transfer.CreateTransfer{
			RecipientID: args[3],
			Currency:    args[0],
			Amount:      args[1],
		})

		uid, _ := uuid.NewRandom()
		tx.ID = uid.String()

		sender := &state.Account{Address: args[2]}

		if err := handler.Normalize(tx); err != nil {
			return errors.Wrap(err, "Rejected")
		}
		if err := handler.Verify(ctx, tx, sender); err != nil {
			return errors.Wrap(err, "Rejected")
		}

		if err := handler.Apply(ctx, tx, sender); err != nil {
			return errors.Wrap(err, "Failed to apply transfer")
		}

		if err := handler.Save(ctx, tx); err != nil {
			return errors.Wrap(err, "Failed to persist transfer")
		}

		fmt.Printf("Applied transfer %s : %s %s from %s to %s\n",
			tx.ID, args[1], args[0], args[2], args[3])
		return nil
	},
}
