package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	var refresh bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transfers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refresh {
				changed, err := appCtx.Transfers.RefreshHistory(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Updated %d transfer(s)\n", changed)
			}

			recs, err := appCtx.Transfers.History(limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No transfers yet")
				return nil
			}
			for _, rec := range recs {
				when := time.Unix(rec.CreatedUnix, 0).Format("2006-01-02 15:04")
				fmt.Printf("%s  %-9s  %s SOL -> %s  %s\n",
					when, rec.Status, rec.Amount.SOL(), rec.Recipient, rec.Signature)
				if rec.Memo != "" {
					fmt.Printf("    memo: %s\n", rec.Memo)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum entries to show")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-query pending confirmations first")
	return cmd
}
