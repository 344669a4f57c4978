// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/google/uuid"

	"github.com/pdiddy/project-catalog/pkg/types"
)

// ExportFormat selects the export file encoding.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// ExportEntry is a project with its tag names resolved, as written to
// export files.
type ExportEntry struct {
	types.Project `yaml:",inline"`

	TagNames []string `json:"tagNames" yaml:"tag_names"`
}

// ExportPath returns the default export file for format:
// dataDir/index/export.yaml or export.json.
func (s *Store) ExportPath(format ExportFormat) string {
	return filepath.Join(s.dataDir, indexDir, "export."+string(format))
}

// Export writes projects to path in the given format. Tag names come from
// tagNames; ids without a name are left out of TagNames but kept in TagIDs.
func Export(path string, format ExportFormat, projects []types.Project, tagNames map[uuid.UUID]string) error {
	entries := make([]ExportEntry, len(projects))
	for i, p := range projects {
		entries[i] = ExportEntry{Project: p, TagNames: []string{}}
		for _, id := range p.TagIDs {
			if name, ok := tagNames[id]; ok {
				entries[i].TagNames = append(entries[i].TagNames, name)
			}
		}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case ExportYAML, "":
		data, err = yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case ExportJSON:
		data, err = json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
