// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/project-catalog/internal/catalog"
	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or the subset matching the filter flags)
to <data-dir>/index/export.yaml or export.json, in search order. Each entry
carries its detail record and the names of its tags. Use --output to write
elsewhere.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	exportFormat := catalog.ExportFormat(format)
	if exportFormat != catalog.ExportYAML && exportFormat != catalog.ExportJSON {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	crit, err := criteria.Build(rawFromFlags(cmd.Flags(), args))
	if err != nil {
		return err
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	exec, err := query.NewExecutor(store)
	if err != nil {
		return err
	}
	projects, err := exec.Filter(cmd.Context(), crit)
	if err != nil {
		return err
	}

	var tagIDs []uuid.UUID
	for _, p := range projects {
		tagIDs = append(tagIDs, p.TagIDs...)
	}
	names, err := exec.TagNames(cmd.Context(), tagIDs)
	if err != nil {
		return err
	}

	if output == "" {
		output = store.ExportPath(exportFormat)
	}
	if err := catalog.Export(output, exportFormat, projects, names); err != nil {
		return err
	}
	fmt.Println(exportMessage(crit, len(projects), output))
	return nil
}

func exportMessage(crit criteria.Criteria, n int, output string) string {
	if crit.IsEmpty() {
		return fmt.Sprintf("Exported all %d projects to %s", n, output)
	}
	return fmt.Sprintf("Exported %d matching projects to %s", n, output)
}

func init() {
	addFilterFlags(exportCmd.Flags())
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("output", "", "output file (default: <data-dir>/index/export.<format>)")

	rootCmd.AddCommand(exportCmd)
}
