// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists projects, their subtype details, and tags in a
// SQLite database. It is the record provider behind searches: reads return
// complete records and never modify them. Records enter the catalog through
// YAML seed files (Import) and leave it through Export.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/project-catalog/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the catalog database at dataDir/index/catalog.db
// and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "catalog"
	}
	dbDir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:      db,
		dataDir: dataDir,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DataDir returns the catalog base directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL CHECK (type IN ('PUBLICATION', 'PATENT', 'RESEARCH')),
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			progress INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS publication_details (
			project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
			source TEXT NOT NULL DEFAULT '',
			doi_isbn TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS patent_details (
			project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
			registration_number TEXT NOT NULL DEFAULT '',
			issuing_authority TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS research_details (
			project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
			budget TEXT NOT NULL DEFAULT '0',
			funding_source TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS project_tags (
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (project_id, tag_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_project_tags_tag_id ON project_tags(tag_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_type ON projects(type)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
