// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>...",
	Short: "Load projects and tags from YAML seed files",
	Long: `Import reads YAML seed files and upserts their tags and projects into the
catalog database. Files that have not changed since the last import are
skipped. A project without an id gets one derived from its creation time and
title, so importing the same file twice yields the same records.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(cmd.Context(), args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", summary.Failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
