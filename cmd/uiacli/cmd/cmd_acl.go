package cmd

import (
	"fmt"

	"github.com/uiachain/uianode/internal/acl"
	"github.com/uiachain/uianode/internal/asset"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdACL = &cobra.Command{
	Use:   "acl",
	Short: "Manage per-asset access control lists.",
}

var cmdACLAdd = &cobra.Command{
	Use:   "add <currency> <address>",
	Short: "Add an address to the asset's active list.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Requires currency and address")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		as, err := asset.Retrieve(ctx, masterDB, args[0])
		if err != nil {
			return err
		}

		if err := acl.Add(ctx, masterDB, as.ACL.ListName(), as.Code, args[1]); err != nil {
			return errors.Wrap(err, "Failed to add acl entry")
		}

		fmt.Printf("Added %s to %s for %s\n", args[1], as.ACL.ListName(), as.Code)
		return nil
	},
}

var cmdACLRemove = &cobra.Command{
	Use:   "remove <currency> <address>",
	Short: "Remove an address from the asset's active list.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Requires currency and address")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		as, err := asset.Retrieve(ctx, masterDB, args[0])
		if err != nil {
			return err
		}

		if err := acl.Remove(ctx, masterDB, as.ACL.ListName(), as.Code, args[1]); err != nil {
			return errors.Wrap(err, "Failed to remove acl entry")
		}

		fmt.Printf("Removed %s from %s for %s\n", args[1], as.ACL.ListName(), as.Code)
		return nil
	},
}

var cmdACLCheck = &cobra.Command{
	Use:   "check <currency> <address>",
	Short: "Report whether the address may receive the asset.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Requires currency and address")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		as, err := asset.Retrieve(ctx, masterDB, args[0])
		if err != nil {
			return err
		}

		allowed, err := acl.Allowed(ctx, masterDB, as, args[1])
		if err != nil {
			return errors.Wrap(err, "Failed to check acl")
		}

		if allowed {
			fmt.Printf("%s may receive %s\n", args[1], as.Code)
		} else {
			fmt.Printf("%s may NOT receive %s\n", args[1], as.Code)
		}
		return nil
	},
}

var cmdACLList = &cobra.Command{
	Use:   "list <currency>",
	Short: "List the asset's active list members.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("Missing currency")
		}

		ctx := newContext()
		cfg := newConfigFromEnv(ctx)
		masterDB := newMasterDB(ctx, cfg)
		defer masterDB.Close()

		as, err := asset.Retrieve(ctx, masterDB, args[0])
		if err != nil {
			return err
		}

		members, err := acl.Members(ctx, masterDB, as.ACL.ListName(), as.Code)
		if err != nil {
			return errors.Wrap(err, "Failed to list acl members")
		}

		fmt.Printf("# %s %s\n\n", as.Code, as.ACL.ListName())
		for _, address := range members {
			fmt.Printf("%s\n", address)
		}
		return nil
	},
}

func init() {
	cmdACL.AddCommand(cmdACLAdd)
	cmdACL.AddCommand(cmdACLRemove)
	cmdACL.AddCommand(cmdACLCheck)
	cmdACL.AddCommand(cmdACLList)
}
