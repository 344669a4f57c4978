// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query runs validated searches against a read-only record
// provider: it filters with the compiled predicate, sorts stably, and
// pages the result. Nothing here mutates a record, so one Executor serves
// any number of concurrent searches without locking.
package query

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/internal/filter"
	"github.com/pdiddy/project-catalog/internal/paging"
	"github.com/pdiddy/project-catalog/pkg/types"
)

// Provider yields complete project records, each with its detail record
// and tag set. Implementations own storage and must tolerate concurrent
// calls.
type Provider interface {
	Projects(ctx context.Context) ([]types.Project, error)
}

// TagLookup resolves tag ids to tags. Unknown ids are omitted.
type TagLookup interface {
	Tags(ctx context.Context, ids []uuid.UUID) ([]types.Tag, error)
}

// Executor runs searches.
type Executor struct {
	provider Provider
	tags     TagLookup
	logger   *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for search diagnostics.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// WithTagLookup sets the collaborator used by TagNames.
func WithTagLookup(tags TagLookup) Option {
	return func(e *Executor) {
		e.tags = tags
	}
}

// NewExecutor returns an Executor reading from provider. If provider also
// implements TagLookup it is used for tag names unless WithTagLookup
// overrides it.
func NewExecutor(provider Provider, opts ...Option) (*Executor, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	e := &Executor{
		provider: provider,
		logger:   slog.Default(),
	}
	if tl, ok := provider.(TagLookup); ok {
		e.tags = tl
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Search returns one page of summaries for c. The page totals describe the
// full filtered set. No match is an empty page, not an error.
func (e *Executor) Search(ctx context.Context, c criteria.Criteria) (types.Page[types.ProjectSummary], error) {
	matched, err := e.Filter(ctx, c)
	if err != nil {
		return types.Page[types.ProjectSummary]{}, err
	}

	summaries := make([]types.ProjectSummary, len(matched))
	for i := range matched {
		summaries[i] = matched[i].Summary()
	}

	page := paging.Paginate(summaries, c.Page, c.Size)
	e.logger.Debug("search complete",
		"matched", page.TotalElements,
		"page", page.Page,
		"size", page.Size,
		"returned", len(page.Content))
	return page, nil
}

// Filter returns every project matching c, ordered by c.SortBy and then by
// id ascending. The returned slice is a copy; provider records are never
// modified.
func (e *Executor) Filter(ctx context.Context, c criteria.Criteria) ([]types.Project, error) {
	compare, err := comparator(c.SortBy, c.SortDir)
	if err != nil {
		return nil, err
	}

	all, err := e.provider.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	pred := filter.Compile(c)
	matched := make([]types.Project, 0, len(all))
	for i := range all {
		if pred(&all[i]) {
			matched = append(matched, all[i])
		}
	}

	slices.SortStableFunc(matched, compare)

	e.logger.Debug("filtered projects", "total", len(all), "matched", len(matched), "sort", c.SortBy, "dir", c.SortDir)
	return matched, nil
}

// TagNames maps tag ids to names. Without a TagLookup it returns an empty
// map.
func (e *Executor) TagNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if e.tags == nil || len(ids) == 0 {
		return names, nil
	}
	tags, err := e.tags.Tags(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	for _, t := range tags {
		names[t.ID] = t.Name
	}
	return names, nil
}

// keyCompare orders two projects by a single sort key.
type keyCompare func(a, b *types.Project) int

var keyComparators = map[criteria.SortKey]keyCompare{
	criteria.SortID: func(a, b *types.Project) int {
		return 0
	},
	criteria.SortTitle: func(a, b *types.Project) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	},
	criteria.SortProgress: func(a, b *types.Project) int {
		return cmp.Compare(a.Progress, b.Progress)
	},
	criteria.SortCreatedAt: func(a, b *types.Project) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	},
	criteria.SortUpdatedAt: func(a, b *types.Project) int {
		return a.UpdatedAt.Compare(b.UpdatedAt)
	},
	criteria.SortType: func(a, b *types.Project) int {
		return strings.Compare(string(a.Type), string(b.Type))
	},
}

// comparator builds the full ordering: the key in the requested direction,
// then id ascending. For SortID the direction applies to the id itself.
func comparator(key criteria.SortKey, dir criteria.Direction) (func(a, b types.Project) int, error) {
	byKey, ok := keyComparators[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort key %q", criteria.ErrInvalidSearchCriteria, key)
	}
	sign := 1
	if dir == criteria.Descending {
		sign = -1
	}

	return func(a, b types.Project) int {
		if key == criteria.SortID {
			return sign * compareIDs(a.ID, b.ID)
		}
		if c := byKey(&a, &b); c != 0 {
			return sign * c
		}
		return compareIDs(a.ID, b.ID)
	}, nil
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
