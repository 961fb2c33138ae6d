package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/service"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage the client directory",
		Long:  `List, add, rename, and delete the shop's clients.`,
	}

	cmd.AddCommand(listClientsCmd())
	cmd.AddCommand(addClientCmd())
	cmd.AddCommand(renameClientCmd())
	cmd.AddCommand(deleteClientCmd())

	return cmd
}

func listClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.clients.Ensure(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load clients: %w", err)
			}

			clients := svcs.clients.Cache().Get()
			if len(clients) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No clients yet. Use 'bahi clients add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 24))
			for _, c := range clients {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func addClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.clients.Add(cmd.Context(), service.ClientInput{Name: args[0]}); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("added client %q", args[0])))
			return nil
		},
	}
}

func renameClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.clients.Rename(cmd.Context(), id, service.ClientInput{Name: args[1]}); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("renamed client %d to %q", id, args[1])))
			return nil
		},
	}
}

func deleteClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}
			svcs, err := newServices()
			if err != nil {
				return err
			}
			if err := svcs.clients.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted client %d", id)))
			return nil
		},
	}
}
