package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func queueCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the offline action queue",
	}

	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every queued action",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			actions, err := app.store.List()
			if err != nil {
				return err
			}
			if len(actions) == 0 {
				fmt.Println("Queue is empty.")
				return nil
			}
			return printJSON(actions)
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of queued actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.store.Len()
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard every queued action",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.store.Clear(); err != nil {
				return err
			}
			fmt.Println("Queue cleared.")
			return nil
		},
	})

	return command
}
