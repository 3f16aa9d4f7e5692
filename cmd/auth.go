package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var token string

	command := &cobra.Command{
		Use:   "login",
		Short: "Store an API token for subsequent requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.session.SignIn(token); err != nil {
				return err
			}
			fmt.Println("Signed in.")
			return nil
		},
	}

	command.Flags().StringVar(&token, "token", "", "Bearer token issued by the backend")
	command.MarkFlagRequired("token")

	return command
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored token and any queued offline actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.session.SignOut(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}
