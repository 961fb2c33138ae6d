package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/filter"
)

func exportCmd() *cobra.Command {
	var (
		clientID int64
		fromDay  string
		toDay    string
		days     int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a sales report as PDF",
		Long:  `Render the filtered sales report on the backend and save the PDF to disk.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			spec := filter.Spec{
				ClientID: optionalID(clientID),
				FromDate: fromDay,
				ToDate:   toDay,
				Days:     days,
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("rendering report"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
			)

			blob, err := svcs.sales.ExportPDF(cmd.Context(), spec)
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, blob, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("report saved to %s (%d bytes)", output, len(blob))))
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only this client's sales")
	cmd.Flags().StringVar(&fromDay, "from", "", "start day (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toDay, "to", "", "end day (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&days, "days", 0, "trailing day count instead of a range")
	cmd.Flags().StringVarP(&output, "output", "o", "sales-report.pdf", "output file")
	return cmd
}
