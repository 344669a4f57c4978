// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with their ids",
	Long: `Tags lists every tag in the catalog by name. Use the ids with
search --tag-id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tags, err := store.AllTags(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tags)
		}
		if len(tags) == 0 {
			fmt.Println("No tags.")
			return nil
		}
		for _, t := range tags {
			fmt.Printf("%s  %s\n", t.ID, t.Name)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().Bool("json", false, "output tags as JSON")
	rootCmd.AddCommand(tagsCmd)
}
