// Package cmd implements the buildbidz CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/buildbidz/buildbidz-go/internal/api"
	"github.com/buildbidz/buildbidz-go/internal/config"
	"github.com/buildbidz/buildbidz-go/internal/errors"
	"github.com/buildbidz/buildbidz-go/internal/logging"
	"github.com/buildbidz/buildbidz-go/internal/queue"
	"github.com/buildbidz/buildbidz-go/internal/session"
	syncpkg "github.com/buildbidz/buildbidz-go/internal/sync"
)

// app wires every layer the commands need: config, queue store, session,
// API client, and sync coordinator.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   queue.Store
	session *session.Session
	client  *api.Client
	coord   *syncpkg.Coordinator
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.NewDefault(cfg.LogLevel)

	var store queue.Store
	switch cfg.QueueBackend {
	case config.QueueBackendSQLite:
		store, err = queue.OpenSQLiteStore(cfg.DataDir, cfg.QueueMax)
	default:
		store, err = queue.NewFileStore(cfg.DataDir, cfg.QueueMax)
	}
	if err != nil {
		return nil, err
	}

	sess := session.New(session.NewCredentialStore(cfg.DataDir), store)
	client := api.NewClient(api.Config{
		BaseURL:    cfg.APIURL,
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  cfg.BaseDelay,
		Timeout:    cfg.HTTPTimeout,
	}, sess, logger)
	coord := syncpkg.NewCoordinator(store, client, cfg.MaxReplayAttempts, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		session: sess,
		client:  client,
		coord:   coord,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing queue store")
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// offlineQueueable reports whether a request failure means the backend was
// unreachable or persistently failing, the cases worth queueing for later.
func offlineQueueable(err error) bool {
	return errors.Is(err, errors.ErrUnreachable) || errors.Is(err, errors.ErrAPIRequest)
}

// Run builds the command tree and executes it.
func Run() {
	command := &cobra.Command{
		Use:   "buildbidz",
		Short: "BuildBidz construction management client",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}

	command.AddCommand(loginCmd())
	command.AddCommand(logoutCmd())
	command.AddCommand(syncCmd())
	command.AddCommand(queueCmd())
	command.AddCommand(transcribeCmd())
	command.AddCommand(extractCmd())
	command.AddCommand(projectsCmd())
	command.AddCommand(tendersCmd())
	command.AddCommand(compareCmd())
	command.AddCommand(forecastCmd())
	command.AddCommand(coordinateCmd())

	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
