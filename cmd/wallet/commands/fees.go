package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

func feesCmd() *cobra.Command {
	var estimateSOL, feeToken string
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Show paymaster sponsorship rules and accepted fee tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			info, err := appCtx.Paymaster.Config(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Fee payer:     %s\n", info.FeePayer)
			if info.Rules.MaxLamportsPerTransfer > 0 {
				fmt.Printf("Sponsored cap: %s SOL per transfer\n", info.Rules.MaxLamportsPerTransfer.SOL())
			}
			for _, prog := range info.Rules.AllowedPrograms {
				fmt.Printf("Allowed program: %s\n", prog)
			}

			tokens, err := appCtx.Paymaster.SupportedTokens(ctx)
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				fmt.Println("Fee tokens: none (sponsored transfers only)")
			}
			for _, tok := range tokens {
				fmt.Printf("Fee token: %-6s %s (%d decimals)\n", tok.Symbol, tok.Mint, tok.Decimals)
			}

			if estimateSOL == "" {
				return nil
			}

			// Estimation builds a real transaction, so it needs the session.
			// A self-transfer stands in for the prospective recipient.
			if err := requirePassphrase(); err != nil {
				return err
			}
			amount, err := domain.ParseSOL(estimateSOL)
			if err != nil {
				return err
			}
			session, ok, err := appCtx.Wallet.Session(passphrase)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("connect first to estimate fees")
			}

			req := domain.TransferRequest{
				Recipient: session.SmartWallet,
				Amount:    amount,
				FeeMode:   domain.FeeModeSponsored,
			}
			if feeToken != "" {
				req.FeeMode = domain.FeeModeToken
				req.FeeToken = feeToken
			}
			est, err := appCtx.Transfers.Estimate(ctx, passphrase, req)
			if err != nil {
				return err
			}
			fmt.Printf("Estimated fee for %s SOL: %s SOL", amount.SOL(), est.FeeLamports.SOL())
			if est.FeeToken != "" {
				fmt.Printf(" (or %d %s)", est.TokenAmount, est.FeeToken)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&estimateSOL, "estimate", "", "estimate the fee for a transfer of this many SOL")
	cmd.Flags().StringVar(&feeToken, "fee-token", "", "denominate the estimate in an SPL token")
	return cmd
}
