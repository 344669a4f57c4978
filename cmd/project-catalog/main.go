// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the project-catalog CLI.
// Subcommands import seed files into the catalog, search and export it,
// and serve the HTTP search endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/project-catalog/internal/environ"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the project-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "project-catalog",
	Short: "Search a catalog of publications, patents, and research projects",
	Long: `project-catalog keeps a local SQLite catalog of projects. Each project is
a publication, a patent, or a research effort, carries tags, and reports its
progress.

Load records with import, query them with search, write filtered sets with
export, and expose the same search over HTTP with serve.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applied, err := environ.Load(".env")
		if err != nil {
			return err
		}
		if len(applied) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded environment: %v\n", applied)
		}
		return setupLogger(viper.GetString("log_level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./project-catalog.yaml or ~/.config/project-catalog/project-catalog.yaml)")
	rootCmd.PersistentFlags().String("data-dir", defaultDataDir, "base directory for the catalog (contains index/)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	viper.BindPFlag("catalog.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("project-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "project-catalog"))
		}
	}

	viper.SetEnvPrefix("PROJECT_CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogger installs a text slog handler on stderr as the default logger.
func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
