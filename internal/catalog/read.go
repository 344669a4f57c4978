// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/project-catalog/pkg/types"
)

// Projects returns every project with its detail record and tag set,
// ordered by id. All five reads run in one read-only transaction, so an
// import committing in between cannot split a project from its details.
func (s *Store) Projects(ctx context.Context) ([]types.Project, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}
	defer tx.Rollback()

	projects, err := readProjects(ctx, tx)
	if err != nil {
		return nil, err
	}
	publications, err := readPublications(ctx, tx)
	if err != nil {
		return nil, err
	}
	patents, err := readPatents(ctx, tx)
	if err != nil {
		return nil, err
	}
	research, err := readResearch(ctx, tx)
	if err != nil {
		return nil, err
	}
	tagLinks, err := readTagLinks(ctx, tx)
	if err != nil {
		return nil, err
	}

	// Detail rows are attached only when they match the declared type, so a
	// stray row can never give a project a second subtype.
	for i := range projects {
		p := &projects[i]
		switch p.Type {
		case types.TypePublication:
			p.Publication = publications[p.ID]
		case types.TypePatent:
			p.Patent = patents[p.ID]
		case types.TypeResearch:
			p.Research = research[p.ID]
		}
		p.TagIDs = tagLinks[p.ID]
	}
	return projects, nil
}

func readProjects(ctx context.Context, tx *sql.Tx) ([]types.Project, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, type, title, description, progress, created_at, updated_at
		 FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []types.Project
	for rows.Next() {
		var (
			p                types.Project
			projectType      string
			created, updated string
		)
		if err := rows.Scan(&p.ID, &projectType, &p.Title, &p.Description, &p.Progress, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.Type = types.ProjectType(projectType)
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("project %s: parsing created_at: %w", p.ID, err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("project %s: parsing updated_at: %w", p.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func readPublications(ctx context.Context, tx *sql.Tx) (map[uuid.UUID]*types.PublicationDetails, error) {
	rows, err := tx.QueryContext(ctx, `SELECT project_id, source, doi_isbn FROM publication_details`)
	if err != nil {
		return nil, fmt.Errorf("querying publication details: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*types.PublicationDetails)
	for rows.Next() {
		var (
			id uuid.UUID
			d  types.PublicationDetails
		)
		if err := rows.Scan(&id, &d.Source, &d.DOIISBN); err != nil {
			return nil, fmt.Errorf("scanning publication details: %w", err)
		}
		out[id] = &d
	}
	return out, rows.Err()
}

func readPatents(ctx context.Context, tx *sql.Tx) (map[uuid.UUID]*types.PatentDetails, error) {
	rows, err := tx.QueryContext(ctx, `SELECT project_id, registration_number, issuing_authority FROM patent_details`)
	if err != nil {
		return nil, fmt.Errorf("querying patent details: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*types.PatentDetails)
	for rows.Next() {
		var (
			id uuid.UUID
			d  types.PatentDetails
		)
		if err := rows.Scan(&id, &d.RegistrationNumber, &d.IssuingAuthority); err != nil {
			return nil, fmt.Errorf("scanning patent details: %w", err)
		}
		out[id] = &d
	}
	return out, rows.Err()
}

func readResearch(ctx context.Context, tx *sql.Tx) (map[uuid.UUID]*types.ResearchDetails, error) {
	rows, err := tx.QueryContext(ctx, `SELECT project_id, budget, funding_source FROM research_details`)
	if err != nil {
		return nil, fmt.Errorf("querying research details: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*types.ResearchDetails)
	for rows.Next() {
		var (
			id     uuid.UUID
			budget string
			d      types.ResearchDetails
		)
		if err := rows.Scan(&id, &budget, &d.FundingSource); err != nil {
			return nil, fmt.Errorf("scanning research details: %w", err)
		}
		if d.Budget, err = decimal.NewFromString(budget); err != nil {
			return nil, fmt.Errorf("research %s: parsing budget %q: %w", id, budget, err)
		}
		out[id] = &d
	}
	return out, rows.Err()
}

func readTagLinks(ctx context.Context, tx *sql.Tx) (map[uuid.UUID][]uuid.UUID, error) {
	rows, err := tx.QueryContext(ctx, `SELECT project_id, tag_id FROM project_tags ORDER BY project_id, tag_id`)
	if err != nil {
		return nil, fmt.Errorf("querying project tags: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var projectID, tagID uuid.UUID
		if err := rows.Scan(&projectID, &tagID); err != nil {
			return nil, fmt.Errorf("scanning project tag: %w", err)
		}
		out[projectID] = append(out[projectID], tagID)
	}
	return out, rows.Err()
}

// Tags returns the tags with the given ids, ordered by name. Unknown ids
// are ignored.
func (s *Store) Tags(ctx context.Context, ids []uuid.UUID) ([]types.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM tags WHERE id IN (`+placeholders+`) ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []types.Tag
	for rows.Next() {
		var t types.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AllTags returns every tag ordered by name.
func (s *Store) AllTags(ctx context.Context) ([]types.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []types.Tag
	for rows.Next() {
		var t types.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
