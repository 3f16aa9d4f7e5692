package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/buildbidz/buildbidz-go/internal/api"
)

func projectsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "projects",
		Short: "Browse and manage construction projects",
	}

	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			projects, err := app.client.ProjectList(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(projects)
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show aggregate project counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			stats, err := app.client.ProjectStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	})

	command.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			project, err := app.client.ProjectGet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	})

	var (
		name        string
		location    string
		description string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			project, err := app.client.ProjectCreate(cmd.Context(), api.CreateProjectRequest{
				Name:        name,
				Location:    location,
				Description: description,
			})
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	}
	create.Flags().StringVar(&name, "name", "", "Project name")
	create.Flags().StringVar(&location, "location", "", "Project location")
	create.Flags().StringVar(&description, "description", "", "Project description")
	create.MarkFlagRequired("name")
	command.AddCommand(create)

	return command
}
