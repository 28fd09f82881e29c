package cmd

import (
	"github.com/spf13/cobra"
)

var cliCmd = &cobra.Command{
	Use:   "uiacli",
	Short: "UIA Ledger CLI",
}

func Execute() {
	cliCmd.AddCommand(cmdAsset)
	cliCmd.AddCommand(cmdACL)
	cliCmd.AddCommand(cmdBalance)
	cliCmd.AddCommand(cmdTransfer)
	cliCmd.AddCommand(cmdTransfers)
	cliCmd.Execute()
}
