package commands

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

func transferCmd() *cobra.Command {
	var memo, feeToken string
	cmd := &cobra.Command{
		Use:   "transfer <recipient> <amount-sol>",
		Short: "Send SOL with the network fee covered by the paymaster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			recipient, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("recipient %q: %w", args[0], err)
			}
			amount, err := domain.ParseSOL(args[1])
			if err != nil {
				return err
			}

			req := domain.TransferRequest{
				Recipient: recipient,
				Amount:    amount,
				FeeMode:   domain.FeeModeSponsored,
				Memo:      memo,
			}
			if feeToken != "" {
				req.FeeMode = domain.FeeModeToken
				req.FeeToken = feeToken
			}

			receipt, err := appCtx.Transfers.Submit(cmd.Context(), passphrase, req)
			if err != nil {
				return err
			}
			fmt.Printf("Sent %s SOL to %s\n", receipt.Amount.SOL(), receipt.Recipient)
			fmt.Printf("Signature: %s\n", receipt.Signature)
			fmt.Printf("Explorer:  %s\n", receipt.ExplorerURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&memo, "memo", "", "attach a memo to the transfer")
	cmd.Flags().StringVar(&feeToken, "fee-token", "", "pay the network fee in an SPL token instead of SOL sponsorship")
	return cmd
}
