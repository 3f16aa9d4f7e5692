package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	syncpkg "github.com/buildbidz/buildbidz-go/internal/sync"
)

func syncCmd() *cobra.Command {
	var watch bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Replay queued offline actions against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()

			if !watch {
				result, err := app.coord.Sync(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Replayed %d, failed %d, skipped %d.\n",
					result.Replayed, result.Failed, result.Skipped)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			monitor := syncpkg.NewMonitor(app.client, app.coord, app.cfg.HealthInterval, app.logger)
			monitor.Start(ctx)
			<-ctx.Done()
			monitor.Stop()
			return nil
		},
	}

	command.Flags().BoolVar(&watch, "watch", false,
		"Keep running, probing connectivity and draining the queue whenever the backend comes back")

	return command
}
