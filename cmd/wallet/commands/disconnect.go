package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the stored wallet session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Wallet.Disconnect(); err != nil {
				return err
			}
			fmt.Println("Disconnected")
			return nil
		},
	}
}
