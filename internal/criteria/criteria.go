// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package criteria validates and normalizes project search requests.
// A Raw request carries fields exactly as received; Build turns it into an
// immutable Criteria where every optional field is either unset (nil) or a
// parsed value. Invalid input is rejected before any filtering or storage
// access happens.
package criteria

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/project-catalog/internal/paging"
	"github.com/pdiddy/project-catalog/pkg/types"
)

// Defaults applied by New and Build when a field is absent.
const (
	DefaultProgressMin = 0
	DefaultProgressMax = 100
	DefaultPage        = 0
	DefaultPageSize    = 10
	MaxPageSize        = paging.MaxSize
	DefaultSortKey     = SortID
	DefaultDirection   = Ascending
)

// DateLayout is the accepted format for date range bounds.
const DateLayout = "2006-01-02"

// StatusBucket is a named progress classification.
type StatusBucket string

const (
	BucketAssigned   StatusBucket = "assigned"
	BucketInProgress StatusBucket = "in_progress"
	BucketCompleted  StatusBucket = "completed"
)

var statusBuckets = []StatusBucket{BucketAssigned, BucketInProgress, BucketCompleted}

// ParseStatusBucket accepts a bucket token case-insensitively.
func ParseStatusBucket(s string) (StatusBucket, bool) {
	b := StatusBucket(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range statusBuckets {
		if b == known {
			return b, true
		}
	}
	return "", false
}

// Raw is a search request as received from the CLI or HTTP layer. A nil
// pointer or nil slice means the field was absent; a non-nil value means it
// was provided, even when empty.
type Raw struct {
	Query *string

	Types  []string
	TagIDs []string

	// DateFrom and DateTo use DateLayout (YYYY-MM-DD).
	DateFrom *string
	DateTo   *string

	Status []string

	ProgressMin *string
	ProgressMax *string

	PublicationSource *string
	DOIISBN           *string

	BudgetMin     *string
	BudgetMax     *string
	FundingSource *string

	RegistrationNumber *string
	IssuingAuthority   *string

	Page    *string
	Size    *string
	SortBy  *string
	SortDir *string
}

// Criteria is a validated search request. Build is the only constructor
// that validates; callers treat a built Criteria as read-only.
//
// Pointer fields are nil when unset. List fields are nil when unset, and an
// empty provided list is normalized to nil: no tag list means no tag
// filter, not "match nothing".
type Criteria struct {
	Query *string

	Types  []types.ProjectType
	TagIDs []uuid.UUID

	// DateFrom and DateTo are calendar days at midnight UTC. The filter
	// covers DateFrom 00:00:00 through DateTo 23:59:59.
	DateFrom *time.Time
	DateTo   *time.Time

	Status []StatusBucket

	// ProgressMin and ProgressMax are always set; the defaults make the
	// range a no-op.
	ProgressMin int
	ProgressMax int

	PublicationSource *string
	DOIISBN           *string

	BudgetMin     *decimal.Decimal
	BudgetMax     *decimal.Decimal
	FundingSource *string

	RegistrationNumber *string
	IssuingAuthority   *string

	Page    int
	Size    int
	SortBy  SortKey
	SortDir Direction
}

// New returns a Criteria with every filter unset and default paging.
func New() Criteria {
	return Criteria{
		ProgressMin: DefaultProgressMin,
		ProgressMax: DefaultProgressMax,
		Page:        DefaultPage,
		Size:        DefaultPageSize,
		SortBy:      DefaultSortKey,
		SortDir:     DefaultDirection,
	}
}

// String returns a pointer to s, for populating Raw and Criteria fields.
func String(s string) *string { return &s }

// IsEmpty reports whether no filter is set. The progress range counts as
// unset when it spans the defaults.
func (c Criteria) IsEmpty() bool {
	return c.Query == nil && len(c.Types) == 0 && len(c.TagIDs) == 0 &&
		c.DateFrom == nil && c.DateTo == nil && len(c.Status) == 0 &&
		c.ProgressMin == DefaultProgressMin && c.ProgressMax == DefaultProgressMax &&
		c.PublicationSource == nil && c.DOIISBN == nil &&
		c.BudgetMin == nil && c.BudgetMax == nil && c.FundingSource == nil &&
		c.RegistrationNumber == nil && c.IssuingAuthority == nil
}

// Build validates raw and returns the normalized Criteria. Every failure
// wraps ErrInvalidSearchCriteria.
func Build(raw Raw) (Criteria, error) {
	c := New()

	c.Query = trimmed(raw.Query)
	c.PublicationSource = trimmed(raw.PublicationSource)
	c.DOIISBN = trimmed(raw.DOIISBN)
	c.FundingSource = trimmed(raw.FundingSource)
	c.RegistrationNumber = trimmed(raw.RegistrationNumber)
	c.IssuingAuthority = trimmed(raw.IssuingAuthority)

	for _, tok := range splitList(raw.Types) {
		t, ok := types.ParseProjectType(tok)
		if !ok {
			return Criteria{}, invalid("unknown project type %q", tok)
		}
		c.Types = append(c.Types, t)
	}

	for _, tok := range splitList(raw.TagIDs) {
		id, err := uuid.Parse(tok)
		if err != nil {
			return Criteria{}, invalid("malformed tag id %q", tok)
		}
		c.TagIDs = append(c.TagIDs, id)
	}

	for _, tok := range splitList(raw.Status) {
		b, ok := ParseStatusBucket(tok)
		if !ok {
			return Criteria{}, invalid("unknown status %q", tok)
		}
		c.Status = append(c.Status, b)
	}

	var err error
	if c.DateFrom, err = parseDate("dateFrom", raw.DateFrom); err != nil {
		return Criteria{}, err
	}
	if c.DateTo, err = parseDate("dateTo", raw.DateTo); err != nil {
		return Criteria{}, err
	}
	if c.DateFrom != nil && c.DateTo != nil && c.DateFrom.After(*c.DateTo) {
		return Criteria{}, invalid("dateFrom %s is after dateTo %s",
			c.DateFrom.Format(DateLayout), c.DateTo.Format(DateLayout))
	}

	if c.ProgressMin, err = parseInt("progressMin", raw.ProgressMin, DefaultProgressMin); err != nil {
		return Criteria{}, err
	}
	if c.ProgressMax, err = parseInt("progressMax", raw.ProgressMax, DefaultProgressMax); err != nil {
		return Criteria{}, err
	}
	if c.ProgressMin < DefaultProgressMin || c.ProgressMax > DefaultProgressMax {
		return Criteria{}, invalid("progress range [%d, %d] outside [%d, %d]",
			c.ProgressMin, c.ProgressMax, DefaultProgressMin, DefaultProgressMax)
	}
	if c.ProgressMin > c.ProgressMax {
		return Criteria{}, invalid("progressMin %d > progressMax %d", c.ProgressMin, c.ProgressMax)
	}

	if c.BudgetMin, err = parseDecimal("budgetMin", raw.BudgetMin); err != nil {
		return Criteria{}, err
	}
	if c.BudgetMax, err = parseDecimal("budgetMax", raw.BudgetMax); err != nil {
		return Criteria{}, err
	}
	if c.BudgetMin != nil && c.BudgetMax != nil && c.BudgetMin.GreaterThan(*c.BudgetMax) {
		return Criteria{}, invalid("budgetMin %s > budgetMax %s", c.BudgetMin, c.BudgetMax)
	}

	if c.Page, err = parseInt("page", raw.Page, DefaultPage); err != nil {
		return Criteria{}, err
	}
	if c.Page < 0 {
		return Criteria{}, invalid("page %d is negative", c.Page)
	}
	if c.Size, err = parseInt("size", raw.Size, DefaultPageSize); err != nil {
		return Criteria{}, err
	}
	if c.Size < 1 || c.Size > MaxPageSize {
		return Criteria{}, invalid("size %d outside 1..%d", c.Size, MaxPageSize)
	}

	if raw.SortBy != nil && strings.TrimSpace(*raw.SortBy) != "" {
		key, ok := ParseSortKey(*raw.SortBy)
		if !ok {
			return Criteria{}, invalid("unknown sort key %q", *raw.SortBy)
		}
		c.SortBy = key
	}
	if raw.SortDir != nil && strings.TrimSpace(*raw.SortDir) != "" {
		dir, ok := ParseDirection(*raw.SortDir)
		if !ok {
			return Criteria{}, invalid("unknown sort direction %q", *raw.SortDir)
		}
		c.SortDir = dir
	}

	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSearchCriteria, fmt.Sprintf(format, args...))
}

// trimmed keeps the provided/absent distinction while stripping whitespace.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// splitList flattens repeated and comma-separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(*s), time.UTC)
	if err != nil {
		return nil, invalid("%s %q is not a YYYY-MM-DD date", field, *s)
	}
	return &t, nil
}

func parseInt(field string, s *string, fallback int) (int, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return 0, invalid("%s %q is not an integer", field, *s)
	}
	return n, nil
}

func parseDecimal(field string, s *string) (*decimal.Decimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return nil, invalid("%s %q is not a decimal", field, *s)
	}
	return &d, nil
}
