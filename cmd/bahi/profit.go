package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/filter"
)

func profitCmd() *cobra.Command {
	var (
		clientID      int64
		fromDay       string
		toDay         string
		days          int
		depositAmount string
		depositAt     string
		oldBalance    string
	)

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Show sale and profit totals for a period",
		Long: `Query the backend for the period's totals. Give either an explicit
date range (--from/--to) or a trailing day count (--days), not both.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			spec := filter.Spec{
				ClientID:        optionalID(clientID),
				FromDate:        fromDay,
				ToDate:          toDay,
				Days:            days,
				DepositDatetime: depositAt,
			}
			if depositAmount != "" {
				if spec.DepositAmount, err = parseAmount(depositAmount, "deposit amount"); err != nil {
					return err
				}
			}
			if oldBalance != "" {
				if spec.OldBalance, err = parseAmount(oldBalance, "old balance"); err != nil {
					return err
				}
			}

			summary, err := svcs.sales.Profit(cmd.Context(), spec)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderBox("Profit",
				fmt.Sprintf("Sales  %s\nProfit %s",
					cli.FormatAmount(summary.Sale),
					cli.FormatAmount(summary.Profit))))
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only this client's totals")
	cmd.Flags().StringVar(&fromDay, "from", "", "start day (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toDay, "to", "", "end day (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&days, "days", 0, "trailing day count instead of a range")
	cmd.Flags().StringVar(&depositAmount, "deposit-amount", "", "deposit to fold into the balance")
	cmd.Flags().StringVar(&depositAt, "deposit-at", "", "deposit timestamp (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&oldBalance, "old-balance", "", "carried-over balance")
	return cmd
}
