// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/pkg/types"
)

// --- test helpers ---

var (
	tagA = uuid.MustParse("018f0000-0000-7000-8000-00000000000a")
	tagB = uuid.MustParse("018f0000-0000-7000-8000-00000000000b")
	tagC = uuid.MustParse("018f0000-0000-7000-8000-00000000000c")
)

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func publication(title string, progress int, src, doi string) types.Project {
	return types.Project{
		ID: uuid.New(), Type: types.TypePublication, Title: title, Progress: progress,
		Publication: &types.PublicationDetails{Source: src, DOIISBN: doi},
	}
}

func patent(title string, progress int, reg, authority string) types.Project {
	return types.Project{
		ID: uuid.New(), Type: types.TypePatent, Title: title, Progress: progress,
		Patent: &types.PatentDetails{RegistrationNumber: reg, IssuingAuthority: authority},
	}
}

func research(title string, progress int, budget, funding string) types.Project {
	return types.Project{
		ID: uuid.New(), Type: types.TypeResearch, Title: title, Progress: progress,
		Research: &types.ResearchDetails{Budget: decimal.RequireFromString(budget), FundingSource: funding},
	}
}

// catalog is a mixed fixture covering every subtype, progress bucket,
// tag combination, and a range of creation dates.
func catalog() []types.Project {
	ps := []types.Project{
		publication("Efficient Attention", 0, "NeurIPS", "10.1000/attn"),
		publication("Graph Networks Survey", 50, "JMLR", "978-3-16-148410-0"),
		patent("Linear Attention Hardware", 100, "US-2024-0001", "USPTO"),
		patent("Sparse Kernel Method", 30, "EP-3344556", "EPO"),
		research("Quantum Error Correction", 75, "250000.00", "NSF Grant 42"),
		research("Protein Folding", 100, "1200000", "Wellcome Trust"),
		{ID: uuid.New(), Type: types.TypeResearch, Title: "Unfunded Study", Progress: 10},
	}
	ps[0].TagIDs = []uuid.UUID{tagA}
	ps[1].TagIDs = []uuid.UUID{tagB}
	ps[2].TagIDs = []uuid.UUID{tagA, tagC}
	ps[4].Description = "Surface codes and attention to decoherence"
	for i := range ps {
		ps[i].CreatedAt = day(2024, time.Month(i+1), 15, 12, 0, 0)
	}
	return ps
}

func match(t *testing.T, c criteria.Criteria, ps []types.Project) []string {
	t.Helper()
	pred := Compile(c)
	var titles []string
	for i := range ps {
		if pred(&ps[i]) {
			titles = append(titles, ps[i].Title)
		}
	}
	return titles
}

func build(t *testing.T, raw criteria.Raw) criteria.Criteria {
	t.Helper()
	c, err := criteria.Build(raw)
	require.NoError(t, err)
	return c
}

// --- algebra ---

func TestAndOrIdentities(t *testing.T) {
	p := &types.Project{}

	assert.True(t, And()(p))
	assert.True(t, Or()(p))
	assert.True(t, And(True, True)(p))
	assert.False(t, And(True, False)(p))
	assert.True(t, Or(False, True)(p))
	assert.False(t, Or(False, False)(p))
	assert.True(t, And(nil, True)(p), "nil clauses are ignored")
}

// --- properties ---

func TestIdentityMatchesEverything(t *testing.T) {
	ps := catalog()
	pred := Compile(criteria.New())
	for i := range ps {
		assert.True(t, pred(&ps[i]), "project %q", ps[i].Title)
	}
}

func TestProgressBoundary(t *testing.T) {
	ps := catalog()
	c := build(t, criteria.Raw{ProgressMin: criteria.String("50"), ProgressMax: criteria.String("50")})
	assert.Equal(t, []string{"Graph Networks Survey"}, match(t, c, ps))
}

func TestProgressRangeInclusive(t *testing.T) {
	ps := catalog()
	c := build(t, criteria.Raw{ProgressMin: criteria.String("30"), ProgressMax: criteria.String("75")})
	assert.Equal(t, []string{"Graph Networks Survey", "Sparse Kernel Method", "Quantum Error Correction"}, match(t, c, ps))
}

func TestTagExistentialMatch(t *testing.T) {
	p1 := types.Project{ID: uuid.New(), Type: types.TypePatent, Title: "P1", TagIDs: []uuid.UUID{tagA}}
	p2 := types.Project{ID: uuid.New(), Type: types.TypePatent, Title: "P2", TagIDs: []uuid.UUID{tagB}}
	p3 := types.Project{ID: uuid.New(), Type: types.TypePatent, Title: "P3"}
	ps := []types.Project{p1, p2, p3}

	c := build(t, criteria.Raw{TagIDs: []string{tagA.String()}})
	assert.Equal(t, []string{"P1"}, match(t, c, ps))

	c = build(t, criteria.Raw{TagIDs: []string{tagA.String(), tagB.String()}})
	assert.Equal(t, []string{"P1", "P2"}, match(t, c, ps), "sharing any one tag is enough")

	c = build(t, criteria.Raw{TagIDs: []string{}})
	assert.Equal(t, []string{"P1", "P2", "P3"}, match(t, c, ps), "empty tag list means no tag filter")
}

func TestStatusBucketComposition(t *testing.T) {
	ps := []types.Project{
		{ID: uuid.New(), Type: types.TypePatent, Title: "P1", Progress: 0},
		{ID: uuid.New(), Type: types.TypePatent, Title: "P2", Progress: 50},
		{ID: uuid.New(), Type: types.TypePatent, Title: "P3", Progress: 100},
	}

	tests := []struct {
		name    string
		buckets []string
		want    []string
	}{
		{"completed only", []string{"completed"}, []string{"P3"}},
		{"assigned or completed", []string{"assigned", "completed"}, []string{"P2", "P3"}},
		{"in progress", []string{"in_progress"}, []string{"P2"}},
		{"assigned", []string{"assigned"}, []string{"P2", "P3"}},
		{"no buckets", nil, []string{"P1", "P2", "P3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build(t, criteria.Raw{Status: tt.buckets})
			assert.Equal(t, tt.want, match(t, c, ps))
		})
	}
}

func TestUnknownStatusBucketNeverWidensMatch(t *testing.T) {
	ps := []types.Project{
		{ID: uuid.New(), Type: types.TypePatent, Title: "P1", Progress: 0},
		{ID: uuid.New(), Type: types.TypePatent, Title: "P2", Progress: 100},
	}

	// Criteria assembled directly, bypassing Build's token check.
	c := criteria.New()
	c.Status = []criteria.StatusBucket{"stalled"}
	assert.Empty(t, match(t, c, ps))

	c.Status = []criteria.StatusBucket{"stalled", criteria.BucketCompleted}
	assert.Equal(t, []string{"P2"}, match(t, c, ps))
}

func TestSubtypeExclusion(t *testing.T) {
	ps := catalog()

	c := build(t, criteria.Raw{RegistrationNumber: criteria.String("US-2024")})
	assert.Equal(t, []string{"Linear Attention Hardware"}, match(t, c, ps))

	c = build(t, criteria.Raw{RegistrationNumber: criteria.String("JP-")})
	assert.Empty(t, match(t, c, ps), "patent with non-matching number is excluded")

	c = build(t, criteria.Raw{IssuingAuthority: criteria.String("")})
	assert.Equal(t, []string{"Linear Attention Hardware", "Sparse Kernel Method"}, match(t, c, ps),
		"a provided patent field excludes every non-patent project")
}

func TestSubtypeExclusionIgnoresForeignDetails(t *testing.T) {
	// A publication carrying stray patent-looking data must still be
	// excluded once a patent-only field is supplied.
	odd := types.Project{
		ID: uuid.New(), Type: types.TypePublication, Title: "Odd",
		Patent: &types.PatentDetails{RegistrationNumber: "US-1"},
	}
	c := build(t, criteria.Raw{RegistrationNumber: criteria.String("US-1")})
	assert.False(t, Compile(c)(&odd))
}

func TestSubtypeFieldFilters(t *testing.T) {
	ps := catalog()

	tests := []struct {
		name string
		raw  criteria.Raw
		want []string
	}{
		{"publication source", criteria.Raw{PublicationSource: criteria.String("neurips")}, []string{"Efficient Attention"}},
		{"doi or isbn", criteria.Raw{DOIISBN: criteria.String("978-3")}, []string{"Graph Networks Survey"}},
		{"budget minimum", criteria.Raw{BudgetMin: criteria.String("500000")}, []string{"Protein Folding"}},
		{"budget maximum inclusive", criteria.Raw{BudgetMax: criteria.String("250000")}, []string{"Quantum Error Correction"}},
		{"budget range", criteria.Raw{BudgetMin: criteria.String("1"), BudgetMax: criteria.String("2000000")},
			[]string{"Quantum Error Correction", "Protein Folding"}},
		{"funding source", criteria.Raw{FundingSource: criteria.String("wellcome")}, []string{"Protein Folding"}},
		{"issuing authority", criteria.Raw{IssuingAuthority: criteria.String("EPO")}, []string{"Sparse Kernel Method"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match(t, build(t, tt.raw), ps))
		})
	}
}

func TestResearchWithoutDetailsFailsBudgetFilter(t *testing.T) {
	ps := catalog()
	c := build(t, criteria.Raw{BudgetMin: criteria.String("0")})
	assert.NotContains(t, match(t, c, ps), "Unfunded Study")
}

func TestFreeText(t *testing.T) {
	ps := catalog()

	c := build(t, criteria.Raw{Query: criteria.String("ATTENTION")})
	assert.Equal(t, []string{"Efficient Attention", "Linear Attention Hardware", "Quantum Error Correction"}, match(t, c, ps),
		"matches title or description ignoring case")

	c = build(t, criteria.Raw{Query: criteria.String("nothing like this")})
	assert.Empty(t, match(t, c, ps))
}

func TestTypes(t *testing.T) {
	ps := catalog()
	c := build(t, criteria.Raw{Types: []string{"patent", "publication"}})
	assert.Equal(t, []string{"Efficient Attention", "Graph Networks Survey", "Linear Attention Hardware", "Sparse Kernel Method"}, match(t, c, ps))
}

func TestDateRange(t *testing.T) {
	edge := []types.Project{
		{ID: uuid.New(), Type: types.TypePatent, Title: "before", CreatedAt: day(2024, 2, 29, 23, 59, 59)},
		{ID: uuid.New(), Type: types.TypePatent, Title: "start", CreatedAt: day(2024, 3, 1, 0, 0, 0)},
		{ID: uuid.New(), Type: types.TypePatent, Title: "end", CreatedAt: day(2024, 3, 31, 23, 59, 59)},
		{ID: uuid.New(), Type: types.TypePatent, Title: "after", CreatedAt: day(2024, 4, 1, 0, 0, 0)},
	}

	tests := []struct {
		name string
		raw  criteria.Raw
		want []string
	}{
		{"closed range", criteria.Raw{DateFrom: criteria.String("2024-03-01"), DateTo: criteria.String("2024-03-31")}, []string{"start", "end"}},
		{"start only", criteria.Raw{DateFrom: criteria.String("2024-03-01")}, []string{"start", "end", "after"}},
		{"end only", criteria.Raw{DateTo: criteria.String("2024-03-31")}, []string{"before", "start", "end"}},
		{"single day", criteria.Raw{DateFrom: criteria.String("2024-03-31"), DateTo: criteria.String("2024-03-31")}, []string{"end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match(t, build(t, tt.raw), edge))
		})
	}
}

func TestSubsetOfCollection(t *testing.T) {
	ps := catalog()
	all := match(t, criteria.New(), ps)

	raws := []criteria.Raw{
		{Query: criteria.String("a")},
		{Types: []string{"RESEARCH"}, Status: []string{"completed"}},
		{TagIDs: []string{tagC.String()}, ProgressMin: criteria.String("90")},
		{DateFrom: criteria.String("2024-03-01"), FundingSource: criteria.String("nsf")},
	}
	for _, raw := range raws {
		got := match(t, build(t, raw), ps)
		assert.Subset(t, all, got)
	}
}

func TestClauseOrderIsIrrelevant(t *testing.T) {
	ps := catalog()
	c := build(t, criteria.Raw{
		Query:       criteria.String("a"),
		Types:       []string{"RESEARCH", "PATENT"},
		Status:      []string{"assigned"},
		ProgressMax: criteria.String("80"),
		DateFrom:    criteria.String("2024-02-01"),
	})

	want := match(t, c, ps)
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		clauses := Clauses(c)
		rng.Shuffle(len(clauses), func(a, b int) { clauses[a], clauses[b] = clauses[b], clauses[a] })
		pred := And(clauses...)

		var got []string
		for j := range ps {
			if pred(&ps[j]) {
				got = append(got, ps[j].Title)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestCompiledPredicateDoesNotMutate(t *testing.T) {
	ps := catalog()
	before := catalog()
	for i := range before {
		before[i].ID = ps[i].ID
	}

	pred := Compile(build(t, criteria.Raw{Query: criteria.String("attention"), TagIDs: []string{tagA.String()}}))
	for i := range ps {
		pred(&ps[i])
	}
	assert.Equal(t, before, ps)
}
