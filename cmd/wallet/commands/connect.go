package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/crypto"
)

func connectCmd() *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a passkey smart wallet, resuming any stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			session, err := appCtx.Wallet.Connect(cmd.Context(), passphrase, fresh)
			if err != nil {
				return err
			}
			fmt.Printf("Connected.\nSmart wallet: %s\nCredential:   %s\n",
				session.SmartWallet, crypto.Fingerprint([]byte(session.CredentialID)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fresh, "new", false, "mint a new wallet even if a session exists")
	return cmd
}
