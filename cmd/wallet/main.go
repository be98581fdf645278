package main

import (
	"os"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/cmd/wallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
