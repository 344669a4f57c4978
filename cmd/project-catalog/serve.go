// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/project-catalog/internal/query"
	"github.com/pdiddy/project-catalog/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve project search over HTTP",
	Long: `Serve starts the HTTP search endpoint:

  GET /api/v1/projects/search   query parameters mirror the search flags
  GET /health

It runs until interrupted, then drains in-flight requests.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.Default()
	exec, err := query.NewExecutor(store, query.WithLogger(logger))
	if err != nil {
		return err
	}

	server.Version = version
	srv := server.New(cfg.Server, exec,
		server.WithLogger(logger),
		server.WithSearchConfig(cfg.Search),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-cmd.Context().Done():
	}

	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errc
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from config, 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "listen port (default from config, 8080)")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
