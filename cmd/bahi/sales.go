package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/model"
	"github.com/kunalgarg/bahi/internal/service"
)

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Manage sale and return entries",
		Long:  `List, add, edit, and delete sales; the list groups entries per day.`,
	}

	cmd.AddCommand(listSalesCmd())
	cmd.AddCommand(addSaleCmd())
	cmd.AddCommand(editSaleCmd())
	cmd.AddCommand(deleteSaleCmd())

	return cmd
}

func listSalesCmd() *cobra.Command {
	var (
		clientID int64
		fromDay  string
		toDay    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			buckets, err := svcs.sales.List(cmd.Context(), optionalID(clientID), fromDay, toDay)
			if err != nil {
				return err
			}
			if len(buckets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No sales in this range."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, b := range buckets {
				fmt.Fprintln(w, cli.FormatDateHeader(b.Date))
				for _, s := range b.Entries {
					kind := " "
					if s.ReturnFlag {
						kind = cli.ReturnStyle.Render("R")
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t×%d\t%s\t%s\t%s\n",
						s.ID, kind, s.AccessoryName, s.Quantity,
						s.ClientName, cli.FormatAmount(s.TotalPrice), s.Note)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only this client's sales")
	cmd.Flags().StringVar(&fromDay, "from", "", "start day (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toDay, "to", "", "end day (YYYY-MM-DD, inclusive)")
	return cmd
}

func addSaleCmd() *cobra.Command {
	var (
		clientID   int64
		accessory  string
		price      string
		profit     string
		note       string
		when       string
		quantity   int
		returnFlag bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a sale or return",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			totalPrice, err := parseAmount(price, "price")
			if err != nil {
				return err
			}
			profitAmount := decimal.Zero
			if profit != "" {
				if profitAmount, err = parseAmount(profit, "profit"); err != nil {
					return err
				}
			}

			input := service.SaleInput{
				ClientID:      clientID,
				AccessoryName: accessory,
				TotalPrice:    totalPrice,
				Profit:        profitAmount,
				Quantity:      quantity,
				Note:          note,
				SaleDateTime:  when,
				ReturnFlag:    returnFlag,
			}
			if err := svcs.sales.Add(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("sale recorded"))
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client id (required)")
	cmd.Flags().StringVar(&accessory, "accessory", "", "accessory name (required)")
	cmd.Flags().StringVar(&price, "price", "", "total price (required)")
	cmd.Flags().StringVar(&profit, "profit", "", "profit on this sale")
	cmd.Flags().IntVar(&quantity, "qty", 0, "quantity (default 1)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&when, "date", "", "sale date-time (YYYY-MM-DDTHH:MM[:SS], default now)")
	cmd.Flags().BoolVar(&returnFlag, "return", false, "record a return instead of a sale")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("accessory")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func editSaleCmd() *cobra.Command {
	var (
		price string
		note  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a sale's amount or note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sale id %q", args[0])
			}
			svcs, err := newServices()
			if err != nil {
				return err
			}

			sale, err := findSale(cmd.Context(), svcs, id)
			if err != nil {
				return err
			}

			draft := svcs.sales.BeginEdit(sale)
			if cmd.Flags().Changed("price") {
				amount, err := parseAmount(price, "price")
				if err != nil {
					return err
				}
				draft.TotalPrice = &amount
			}
			if cmd.Flags().Changed("note") {
				draft.Note = note
			}

			if err := svcs.sales.CommitEdit(cmd.Context(), &sale); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("sale %d updated", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "new total price")
	cmd.Flags().StringVar(&note, "note", "", "new note")
	return cmd
}

func deleteSaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sale entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sale id %q", args[0])
			}
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.sales.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted sale %d", id)))
			return nil
		},
	}
}

func findSale(ctx context.Context, svcs *services, id int64) (model.Sale, error) {
	buckets, err := svcs.sales.List(ctx, nil, "", "")
	if err != nil {
		return model.Sale{}, err
	}
	for _, b := range buckets {
		for _, s := range b.Entries {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return model.Sale{}, fmt.Errorf("sale %d not found", id)
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

func parseAmount(s, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q", name, s)
	}
	return d, nil
}
