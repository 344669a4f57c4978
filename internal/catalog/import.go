// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/project-catalog/pkg/types"
)

// SeedFile is the YAML layout accepted by Import.
type SeedFile struct {
	Tags     []string      `yaml:"tags"`
	Projects []SeedProject `yaml:"projects"`
}

// SeedProject is one project in a seed file. Tags are referenced by name
// and created on demand.
type SeedProject struct {
	ID          string            `yaml:"id,omitempty"`
	Type        types.ProjectType `yaml:"type"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Progress    int               `yaml:"progress"`
	CreatedAt   time.Time         `yaml:"created_at"`
	UpdatedAt   time.Time         `yaml:"updated_at"`
	Tags        []string          `yaml:"tags"`

	Publication *types.PublicationDetails `yaml:"publication,omitempty"`
	Patent      *types.PatentDetails      `yaml:"patent,omitempty"`
	Research    *types.ResearchDetails    `yaml:"research,omitempty"`
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Updated  int
	Skipped  int
	Failed   int
	Projects int
}

// Total returns the number of files processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Updated + s.Skipped + s.Failed
}

// loadLimit caps how many seed files are read and parsed at once.
const loadLimit = 8

// Import reads YAML seed files and upserts their tags and projects. Files
// whose modification time matches the last import are skipped. A file that
// fails to parse or validate is counted as failed and leaves the database
// untouched; the run continues with the next file.
//
// Files are read and validated concurrently, then written one at a time in
// argument order.
func (s *Store) Import(ctx context.Context, paths []string, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	loaded := make([]seedLoad, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadLimit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded[i] = loadSeed(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	for _, f := range loaded {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if f.err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", f.name, f.err)
			summary.Failed++
			continue
		}

		var storedModTime string
		err := s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM import_status WHERE file = ?`, f.abs,
		).Scan(&storedModTime)

		if err == nil && storedModTime == f.modTime {
			fmt.Fprintf(w, "skipped %s\n", f.name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.importFile(ctx, f.abs, f.modTime, f.tags, f.projects); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", f.name, err)
			summary.Failed++
			continue
		}

		summary.Projects += len(f.projects)
		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d projects)\n", f.name, len(f.projects))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "imported %s (%d projects)\n", f.name, len(f.projects))
			summary.Imported++
		}
	}

	fmt.Fprintf(w, "\nimported: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Imported, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// seedLoad is one seed file after reading and validation. When err is set
// the file is reported as failed and nothing else is meaningful.
type seedLoad struct {
	name     string
	abs      string
	modTime  string
	tags     []string
	projects []seededProject
	err      error
}

// loadSeed reads, parses, and validates a seed file without touching the
// database.
func loadSeed(path string) seedLoad {
	f := seedLoad{name: filepath.Base(path), abs: path}
	if abs, err := filepath.Abs(path); err == nil {
		f.abs = abs
	}

	info, err := os.Stat(path)
	if err != nil {
		f.err = err
		return f
	}
	f.modTime = info.ModTime().UTC().Format(time.RFC3339Nano)

	data, err := os.ReadFile(path)
	if err != nil {
		f.err = err
		return f
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		f.err = fmt.Errorf("parse error: %w", err)
		return f
	}

	f.projects, f.err = resolveSeed(&seed)
	f.tags = seed.Tags
	return f
}

// seededProject pairs a validated project with the tag names it references.
type seededProject struct {
	types.Project
	tagNames []string
}

// resolveSeed validates seed projects and assigns ids and timestamps.
func resolveSeed(seed *SeedFile) ([]seededProject, error) {
	out := make([]seededProject, 0, len(seed.Projects))
	now := time.Now().UTC()

	for i, sp := range seed.Projects {
		t, ok := types.ParseProjectType(string(sp.Type))
		if !ok {
			return nil, fmt.Errorf("project %d (%q): unknown type %q", i, sp.Title, sp.Type)
		}

		p := types.Project{
			Type:        t,
			Title:       sp.Title,
			Description: sp.Description,
			Progress:    sp.Progress,
			CreatedAt:   sp.CreatedAt.UTC(),
			UpdatedAt:   sp.UpdatedAt.UTC(),
			Publication: sp.Publication,
			Patent:      sp.Patent,
			Research:    sp.Research,
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}

		switch {
		case sp.ID != "":
			id, err := uuid.Parse(sp.ID)
			if err != nil {
				return nil, fmt.Errorf("project %d (%q): malformed id %q", i, sp.Title, sp.ID)
			}
			p.ID = id
		case !sp.CreatedAt.IsZero():
			p.ID = derivedID(p.CreatedAt, string(p.Type)+"\x00"+p.Title)
		default:
			id, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("generating id: %w", err)
			}
			p.ID = id
		}

		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("project %d (%q): %w", i, sp.Title, err)
		}
		out = append(out, seededProject{Project: p, tagNames: sp.Tags})
	}
	return out, nil
}

// derivedID builds a UUIDv7 from a creation time and a name so that
// re-importing the same seed yields the same id while ids still sort by
// creation time.
func derivedID(created time.Time, name string) uuid.UUID {
	var id uuid.UUID
	ms := uint64(created.UnixMilli())
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], ms)
	copy(id[0:6], ts[2:8])

	h := sha1.Sum([]byte(name))
	copy(id[6:], h[:10])
	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// tagID returns the stable id for a tag name.
func tagID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("project-catalog:tag:"+name))
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Store) importFile(ctx context.Context, file, modTime string, tagNames []string, projects []seededProject) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tagStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tags (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer tagStmt.Close()

	ensureTag := func(name string) (uuid.UUID, error) {
		name = normalizeTagName(name)
		if _, err := tagStmt.ExecContext(ctx, tagID(name).String(), name); err != nil {
			return uuid.Nil, fmt.Errorf("inserting tag %q: %w", name, err)
		}
		var id uuid.UUID
		if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id); err != nil {
			return uuid.Nil, fmt.Errorf("looking up tag %q: %w", name, err)
		}
		return id, nil
	}

	for _, name := range tagNames {
		if normalizeTagName(name) == "" {
			continue
		}
		if _, err := ensureTag(name); err != nil {
			return err
		}
	}

	for _, sp := range projects {
		p := sp.Project
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, type, title, description, progress, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, description=excluded.description,
				progress=excluded.progress, updated_at=excluded.updated_at`,
			p.ID.String(), string(p.Type), p.Title, p.Description, p.Progress,
			p.CreatedAt.Format(time.RFC3339Nano), p.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upserting project %s: %w", p.ID, err)
		}

		// The type column is never updated, so a conflicting re-import must
		// not change the subtype.
		var storedType string
		if err := tx.QueryRowContext(ctx, `SELECT type FROM projects WHERE id = ?`, p.ID.String()).Scan(&storedType); err != nil {
			return fmt.Errorf("reading project %s: %w", p.ID, err)
		}
		if storedType != string(p.Type) {
			return fmt.Errorf("project %s: type is %s, cannot change to %s", p.ID, storedType, p.Type)
		}

		if err := replaceDetails(ctx, tx, &p); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM project_tags WHERE project_id = ?`, p.ID.String()); err != nil {
			return fmt.Errorf("clearing tags of %s: %w", p.ID, err)
		}
		for _, name := range sp.tagNames {
			if normalizeTagName(name) == "" {
				continue
			}
			id, err := ensureTag(name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO project_tags (project_id, tag_id) VALUES (?, ?)`,
				p.ID.String(), id.String(),
			); err != nil {
				return fmt.Errorf("tagging %s: %w", p.ID, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		file, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating import status: %w", err)
	}

	return tx.Commit()
}

// replaceDetails rewrites the single detail row matching the project type.
func replaceDetails(ctx context.Context, tx *sql.Tx, p *types.Project) error {
	id := p.ID.String()
	for _, table := range []string{"publication_details", "patent_details", "research_details"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("clearing %s for %s: %w", table, id, err)
		}
	}

	var err error
	switch {
	case p.Publication != nil:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO publication_details (project_id, source, doi_isbn) VALUES (?, ?, ?)`,
			id, p.Publication.Source, p.Publication.DOIISBN)
	case p.Patent != nil:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO patent_details (project_id, registration_number, issuing_authority) VALUES (?, ?, ?)`,
			id, p.Patent.RegistrationNumber, p.Patent.IssuingAuthority)
	case p.Research != nil:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO research_details (project_id, budget, funding_source) VALUES (?, ?, ?)`,
			id, p.Research.Budget.String(), p.Research.FundingSource)
	}
	if err != nil {
		return fmt.Errorf("writing details for %s: %w", id, err)
	}
	return nil
}
