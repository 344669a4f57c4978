// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the project catalog.
// Project records and their subtype details, tags, the summary projection
// returned by searches, and the paginated result envelope.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectType identifies which subtype a project belongs to. It is fixed
// when the project is created.
type ProjectType string

const (
	TypePublication ProjectType = "PUBLICATION"
	TypePatent      ProjectType = "PATENT"
	TypeResearch    ProjectType = "RESEARCH"
)

// ProjectTypes lists every valid ProjectType in declaration order.
var ProjectTypes = []ProjectType{TypePublication, TypePatent, TypeResearch}

// ParseProjectType converts a token such as "patent" or "PATENT" into a
// ProjectType. It reports false for unknown tokens.
func ParseProjectType(s string) (ProjectType, bool) {
	t := ProjectType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ProjectTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// ErrInvalidProject is returned by Project.Validate.
var ErrInvalidProject = errors.New("invalid project")

// PublicationDetails holds the fields specific to PUBLICATION projects.
type PublicationDetails struct {
	// Source is the journal, conference, or publisher.
	Source string `json:"source" yaml:"source"`

	// DOIISBN is the DOI or ISBN of the publication.
	DOIISBN string `json:"doiIsbn" yaml:"doi_isbn"`
}

// PatentDetails holds the fields specific to PATENT projects.
type PatentDetails struct {
	// RegistrationNumber is the number assigned by the issuing authority.
	RegistrationNumber string `json:"registrationNumber" yaml:"registration_number"`

	// IssuingAuthority is the patent office (e.g. "USPTO", "EPO").
	IssuingAuthority string `json:"issuingAuthority" yaml:"issuing_authority"`
}

// ResearchDetails holds the fields specific to RESEARCH projects.
type ResearchDetails struct {
	// Budget is the funded amount.
	Budget decimal.Decimal `json:"budget" yaml:"budget"`

	// FundingSource names the grant or sponsor.
	FundingSource string `json:"fundingSource" yaml:"funding_source"`
}

// Project is a catalog record. At most one of Publication, Patent, and
// Research is set, and it must match Type.
type Project struct {
	// ID is a UUIDv7, so byte order follows creation order.
	ID uuid.UUID `json:"id" yaml:"id"`

	Type        ProjectType `json:"type" yaml:"type"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`

	// Progress is a completion percentage between 0 and 100.
	Progress int `json:"progress" yaml:"progress"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`

	// TagIDs is a set; order carries no meaning.
	TagIDs []uuid.UUID `json:"tagIds" yaml:"tag_ids"`

	Publication *PublicationDetails `json:"publication,omitempty" yaml:"publication,omitempty"`
	Patent      *PatentDetails      `json:"patent,omitempty" yaml:"patent,omitempty"`
	Research    *ResearchDetails    `json:"research,omitempty" yaml:"research,omitempty"`
}

// Validate checks the subtype invariants: a known type, progress within
// 0..100, and no detail record other than the one matching Type.
func (p *Project) Validate() error {
	if _, ok := ParseProjectType(string(p.Type)); !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidProject, p.Type)
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("%w: progress %d outside 0..100", ErrInvalidProject, p.Progress)
	}

	details := 0
	if p.Publication != nil {
		details++
		if p.Type != TypePublication {
			return fmt.Errorf("%w: publication details on %s project", ErrInvalidProject, p.Type)
		}
	}
	if p.Patent != nil {
		details++
		if p.Type != TypePatent {
			return fmt.Errorf("%w: patent details on %s project", ErrInvalidProject, p.Type)
		}
	}
	if p.Research != nil {
		details++
		if p.Type != TypeResearch {
			return fmt.Errorf("%w: research details on %s project", ErrInvalidProject, p.Type)
		}
	}
	if details > 1 {
		return fmt.Errorf("%w: %d detail records", ErrInvalidProject, details)
	}
	return nil
}

// HasTag reports whether the project carries the tag id.
func (p *Project) HasTag(id uuid.UUID) bool {
	for _, t := range p.TagIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Summary projects the record onto the fields returned by searches.
func (p *Project) Summary() ProjectSummary {
	tags := make([]uuid.UUID, len(p.TagIDs))
	copy(tags, p.TagIDs)
	return ProjectSummary{
		ID:          p.ID,
		Type:        p.Type,
		Title:       p.Title,
		Description: p.Description,
		Progress:    p.Progress,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		TagIDs:      tags,
	}
}

// Tag is a label shared by many projects. Names are unique.
type Tag struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// ProjectSummary is the search result projection of a Project.
type ProjectSummary struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	Type        ProjectType `json:"type" yaml:"type"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Progress    int         `json:"progress" yaml:"progress"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updated_at"`
	TagIDs      []uuid.UUID `json:"tagIds" yaml:"tag_ids"`
}

// Page is one window of an ordered result set.
type Page[T any] struct {
	Content []T `json:"content" yaml:"content"`

	// TotalElements counts the full result set, not just Content.
	TotalElements int `json:"totalElements" yaml:"total_elements"`

	TotalPages int `json:"totalPages" yaml:"total_pages"`
	Page       int `json:"page" yaml:"page"`
	Size       int `json:"size" yaml:"size"`
}
