package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/app"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/config"
)

var (
	home       string
	passphrase string

	rpcURL       string
	portalURL    string
	paymasterURL string

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "wallet",
		Short: "Passkey smart-wallet demo for Solana devnet",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(home)
			if err != nil {
				return err
			}

			// Endpoint flags outrank env and config file.
			if rpcURL != "" {
				c.RPCURL = rpcURL
			}
			if portalURL != "" {
				c.PortalURL = portalURL
			}
			if paymasterURL != "" {
				c.PaymasterURL = paymasterURL
			}
			if err := c.Validate(); err != nil {
				return err
			}
			if err := os.MkdirAll(c.Home, 0o700); err != nil {
				return err
			}

			appCtx, err = app.NewWire(c)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "wallet dir (default ~/.lazorkit)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the wallet session")
	root.PersistentFlags().StringVar(&rpcURL, "rpc", "", "Solana RPC endpoint override")
	root.PersistentFlags().StringVar(&portalURL, "portal", "", "passkey portal endpoint override")
	root.PersistentFlags().StringVar(&paymasterURL, "paymaster", "", "paymaster endpoint override")

	root.AddCommand(connectCmd(), disconnectCmd(), statusCmd(), transferCmd(), confirmCmd(), feesCmd(), historyCmd())
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
