package commands

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/transfer"
)

func confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <signature>",
		Short: "Look up the confirmation status of a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := solana.SignatureFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("signature %q: %w", args[0], err)
			}
			status, err := appCtx.Transfers.Status(cmd.Context(), sig)
			if err != nil {
				return err
			}
			fmt.Printf("Status:   %s\n", status)
			fmt.Printf("Explorer: %s\n", transfer.ExplorerURL(sig))
			return nil
		},
	}
}
