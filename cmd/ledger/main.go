package main

import (
	"os"

	"github.com/sheikh-saqib/payments-ledger-engine/cmd/ledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
