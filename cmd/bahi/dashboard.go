package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/aggregate"
	"github.com/kunalgarg/bahi/internal/cli"
)

func dashboardCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show per-day sale and profit totals",
		Long:  `Daily totals and summary statistics for today, the last week, or the last month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			summary, err := svcs.sales.Dashboard(cmd.Context(), aggregate.Period(period))
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Dashboard (%s)", period)))
			if len(summary.Labels) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No sales in this period."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Day"),
				cli.TableHeaderStyle.Render("Sales"),
				cli.TableHeaderStyle.Render("Profit"))
			for i, label := range summary.Labels {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					label,
					cli.FormatAmount(summary.SaleTotals[i]),
					cli.FormatAmount(summary.ProfitTotals[i]))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.RenderBox("Statistics", fmt.Sprintf(
				"Average sale    %s\nHighest sale    %s\nAverage profit  %s\nHighest profit  %s",
				cli.FormatAmount(summary.AverageSale),
				cli.FormatAmount(summary.HighestSale),
				cli.FormatAmount(summary.AverageProfit),
				cli.FormatAmount(summary.HighestProfit))))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "today", "today, week, or month")
	return cmd
}
