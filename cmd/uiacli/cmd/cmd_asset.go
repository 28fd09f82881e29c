package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/uiachain/uianode/internal/asset"
	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/state"
	"github.com/uiachain/uianode/internal/transfer"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdAsset = &cobra.Command{
	Use:   "asset",
	Short: "Manage asset registry entries.",
}

var cmdAssetRegister = &cobra.Command{
	Use:   "register <code> <issuerAddress>",
	Short: "Register a new asset.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Requires code and issuer address")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		aclMode := state.ACLBlacklist
		if whitelist, _ := c.Flags().GetBool("whitelist"); whitelist {
			aclMode = state.ACLWhitelist
		}

		nu := asset.NewAsset{
			Code:          args[0],
			IssuerAddress: args[1],
			ACL:           aclMode,
		}
		if err := transfer.ValidateAsset(&transfer.Asset{Currency: nu.Code, Amount: "1"}); err != nil {
			return errors.Wrap(err, "Invalid asset code")
		}

		if err := asset.Create(ctx, masterDB, &nu, time.Now()); err != nil {
			return errors.Wrap(err, "Failed to register asset")
		}

		return showAsset(ctx, masterDB, nu.Code)
	},
}

var cmdAssetShow = &cobra.Command{
	Use:   "show <code>",
	Short: "Load and print an asset registry entry.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("Missing asset code")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		return showAsset(ctx, masterDB, args[0])
	},
}

var cmdAssetWriteoff = &cobra.Command{
	Use:   "writeoff <code>",
	Short: "Permanently disable transfers of an asset.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("Missing asset code")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		writeoff := true
		upd := asset.UpdateAsset{Writeoff: &writeoff}

		if err := asset.Update(ctx, masterDB, args[0], &upd, time.Now()); err != nil {
			return errors.Wrap(err, "Failed to writeoff asset")
		}

		return showAsset(ctx, masterDB, args[0])
	},
}

var cmdAssetList = &cobra.Command{
	Use:   "list",
	Short: "List all registered assets.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		assets, err := asset.List(ctx, masterDB)
		if err != nil {
			return errors.Wrap(err, "Failed to list assets")
		}

		for _, a := range assets {
			fmt.Printf("# Asset %s\n\n", a.Code)
			if err := dumpJSON(a); err != nil {
				return err
			}
		}

		return nil
	},
}

func showAsset(ctx context.Context, masterDB *db.DB, code string) error {
	a, err := asset.Fetch(ctx, masterDB, code)
	if err != nil {
		return err
	}

	fmt.Printf("# Asset %s\n\n", a.Code)
	return dumpJSON(a)
}

func init() {
	cmdAssetRegister.Flags().Bool("whitelist", false, "gate recipients with a whitelist instead of a blacklist")
	cmdAsset.AddCommand(cmdAssetRegister)
	cmdAsset.AddCommand(cmdAssetShow)
	cmdAsset.AddCommand(cmdAssetWriteoff)
	cmdAsset.AddCommand(cmdAssetList)
}
