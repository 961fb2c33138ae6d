package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/service"
	"github.com/kunalgarg/bahi/internal/tui"
)

func depositsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposits",
		Short: "Manage client deposits",
		Long:  `List, add, and delete deposits, or open the interactive ledger.`,
	}

	cmd.AddCommand(listDepositsCmd())
	cmd.AddCommand(addDepositCmd())
	cmd.AddCommand(deleteDepositCmd())
	cmd.AddCommand(ledgerCmd())

	return cmd
}

func listDepositsCmd() *cobra.Command {
	var clientID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deposits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			deposits, err := svcs.deposits.List(cmd.Context(), optionalID(clientID))
			if err != nil {
				return err
			}
			if len(deposits) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No deposits."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, d := range deposits {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					d.ID, d.ClientName, svcs.deposits.DisplayDate(d),
					cli.FormatAmount(d.Amount), d.Note)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only this client's deposits")
	return cmd
}

func addDepositCmd() *cobra.Command {
	var (
		clientID int64
		amount   string
		note     string
		when     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			value, err := parseAmount(amount, "amount")
			if err != nil {
				return err
			}

			input := service.DepositInput{
				ClientID:    clientID,
				Amount:      value,
				Note:        note,
				DepositDate: when,
			}
			if err := svcs.deposits.Add(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("deposit recorded"))
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "deposit amount (required)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&when, "date", "", "deposit date-time (YYYY-MM-DDTHH:MM, default now)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func deleteDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deposit entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid deposit id %q", args[0])
			}
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.deposits.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted deposit %d", id)))
			return nil
		},
	}
}

func ledgerCmd() *cobra.Command {
	var clientID int64

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Open the interactive deposit ledger",
		Long:  `A scrollable deposit list with inline editing of amount and note.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svcs.deposits, optionalID(clientID))
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only this client's deposits")
	return cmd
}
