package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/crypto"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection state and balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			session, ok, err := appCtx.Wallet.Session(passphrase)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Not connected. Run connect first.")
				return nil
			}

			fmt.Printf("Connected to %s\n", session.PortalURL)
			fmt.Printf("Smart wallet: %s\n", session.SmartWallet)
			fmt.Printf("Credential:   %s\n", crypto.Fingerprint([]byte(session.CredentialID)))

			// Balance is display-only; an unreachable RPC should not turn
			// the whole status red.
			balance, err := appCtx.Wallet.Balance(cmd.Context(), passphrase)
			if err != nil {
				fmt.Printf("Balance:      unavailable (%v)\n", err)
				return nil
			}
			fmt.Printf("Balance:      %s SOL\n", balance.SOL())
			return nil
		},
	}
}
