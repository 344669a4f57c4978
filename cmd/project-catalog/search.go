// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/internal/query"
	"github.com/pdiddy/project-catalog/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog with filters, sorting, and paging",
	Long: `Search filters the catalog by any combination of free text, type, tags,
creation date, status, progress, and subtype fields. Filters combine with AND;
list flags (--type, --tag-id, --status) match any of their values.

Results are sorted by --sort-by (default id, which is creation order) and
returned one page at a time.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	raw := rawFromFlags(cmd.Flags(), args)
	if raw.Size == nil && cfg.Search.DefaultPageSize > 0 {
		raw.Size = criteria.String(fmt.Sprint(cfg.Search.DefaultPageSize))
	}
	crit, err := criteria.Build(raw)
	if err != nil {
		return err
	}

	exec, err := query.NewExecutor(store)
	if err != nil {
		return err
	}
	page, err := exec.Search(cmd.Context(), crit)
	if err != nil {
		return err
	}

	var tagIDs []uuid.UUID
	for _, s := range page.Content {
		tagIDs = append(tagIDs, s.TagIDs...)
	}
	names, err := exec.TagNames(cmd.Context(), tagIDs)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(os.Stdout, page, names, jsonOutput)
}

// searchOutput is the JSON rendering of a result page with tag names.
type searchOutput struct {
	types.Page[types.ProjectSummary]

	Tags map[uuid.UUID]string `json:"tags"`
}

func formatSearchOutput(w io.Writer, page types.Page[types.ProjectSummary], names map[uuid.UUID]string, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Page: page, Tags: names})
	}

	if len(page.Content) == 0 {
		fmt.Fprintf(w, "No projects found (%d total).\n", page.TotalElements)
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-11s  %-40s  %-8s  %-10s  %s\n",
		"ID", "Type", "Title", "Progress", "Created", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, s := range page.Content {
		title := truncate(s.Title, 40)
		var tags []string
		for _, id := range s.TagIDs {
			if name, ok := names[id]; ok {
				tags = append(tags, name)
			}
		}
		fmt.Fprintf(w, "%-36s  %-11s  %-40s  %7d%%  %-10s  %s\n",
			s.ID, s.Type, title, s.Progress, s.CreatedAt.Format(criteria.DateLayout), strings.Join(tags, ", "))
	}

	fmt.Fprintf(w, "\npage %d of %d, %d projects\n", page.Page+1, max(page.TotalPages, 1), page.TotalElements)
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// --- shared helpers ---

// addFilterFlags registers the filter and sort flags shared by search and
// export.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.String("query", "", "free-text match on title and description")
	fs.StringSlice("type", nil, "project types: PUBLICATION, PATENT, RESEARCH (repeatable)")
	fs.StringSlice("tag-id", nil, "tag ids; a project matches if it carries any (repeatable)")
	fs.String("date-from", "", "created on or after this day (YYYY-MM-DD)")
	fs.String("date-to", "", "created on or before this day (YYYY-MM-DD)")
	fs.StringSlice("status", nil, "status buckets: assigned, in_progress, completed (repeatable)")
	fs.String("progress-min", "", "minimum progress, 0-100")
	fs.String("progress-max", "", "maximum progress, 0-100")
	fs.String("publication-source", "", "publication source contains")
	fs.String("doi-isbn", "", "publication DOI or ISBN contains")
	fs.String("budget-min", "", "minimum research budget")
	fs.String("budget-max", "", "maximum research budget")
	fs.String("funding-source", "", "research funding source contains")
	fs.String("registration-number", "", "patent registration number contains")
	fs.String("issuing-authority", "", "patent issuing authority contains")
	fs.String("sort-by", "", "sort key: id, title, progress, createdAt, updatedAt, type")
	fs.String("sort-dir", "", "sort direction: asc or desc")
}

// rawFromFlags collects the flags the user set. Flags left at their
// defaults stay unset so criteria.Build applies its own defaults.
func rawFromFlags(fs *pflag.FlagSet, args []string) criteria.Raw {
	str := func(name string) *string {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			return nil
		}
		v, _ := fs.GetString(name)
		return &v
	}
	list := func(name string) []string {
		if !fs.Changed(name) {
			return nil
		}
		v, _ := fs.GetStringSlice(name)
		return v
	}

	raw := criteria.Raw{
		Query:              str("query"),
		Types:              list("type"),
		TagIDs:             list("tag-id"),
		DateFrom:           str("date-from"),
		DateTo:             str("date-to"),
		Status:             list("status"),
		ProgressMin:        str("progress-min"),
		ProgressMax:        str("progress-max"),
		PublicationSource:  str("publication-source"),
		DOIISBN:            str("doi-isbn"),
		BudgetMin:          str("budget-min"),
		BudgetMax:          str("budget-max"),
		FundingSource:      str("funding-source"),
		RegistrationNumber: str("registration-number"),
		IssuingAuthority:   str("issuing-authority"),
		Page:               str("page"),
		Size:               str("size"),
		SortBy:             str("sort-by"),
		SortDir:            str("sort-dir"),
	}
	if raw.Query == nil && len(args) > 0 {
		raw.Query = criteria.String(strings.Join(args, " "))
	}
	return raw
}

func init() {
	addFilterFlags(searchCmd.Flags())
	searchCmd.Flags().String("page", "", "zero-based page number (default 0)")
	searchCmd.Flags().String("size", "", "page size, 1-100 (default from config, 10)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
