package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kunalgarg/bahi/internal/cli"
)

func loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, err := newServices()
			if err != nil {
				return err
			}

			if username == "" {
				fmt.Print("Username: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			if err := svcs.session.Login(cmd.Context(), username, string(raw)); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("logged in as %s", username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	return cmd
}
