package main

import (
	"github.com/uiachain/uianode/cmd/uiacli/cmd"
)

// UIA Ledger CLI
//
func main() {
	cmd.Execute()
}
