// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package criteria

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/project-catalog/pkg/types"
)

func TestBuildDefaults(t *testing.T) {
	c, err := Build(Raw{})
	require.NoError(t, err)

	assert.Equal(t, New(), c)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, DefaultProgressMin, c.ProgressMin)
	assert.Equal(t, DefaultProgressMax, c.ProgressMax)
	assert.Equal(t, DefaultPage, c.Page)
	assert.Equal(t, DefaultPageSize, c.Size)
	assert.Equal(t, SortID, c.SortBy)
	assert.Equal(t, Ascending, c.SortDir)
	assert.Nil(t, c.Query)
	assert.Nil(t, c.TagIDs)
}

func TestBuildParsesFields(t *testing.T) {
	tagA := uuid.New()
	tagB := uuid.New()

	c, err := Build(Raw{
		Query:              String("  attention  "),
		Types:              []string{"patent", "Research"},
		TagIDs:             []string{tagA.String() + "," + tagB.String()},
		DateFrom:           String("2024-01-01"),
		DateTo:             String("2024-12-31"),
		Status:             []string{"ASSIGNED", "completed"},
		ProgressMin:        String("10"),
		ProgressMax:        String("90"),
		BudgetMin:          String("1000.50"),
		BudgetMax:          String("20000"),
		RegistrationNumber: String("US-123"),
		Page:               String("2"),
		Size:               String("25"),
		SortBy:             String("createdat"),
		SortDir:            String("DESC"),
	})
	require.NoError(t, err)

	require.NotNil(t, c.Query)
	assert.Equal(t, "attention", *c.Query)
	assert.Equal(t, []types.ProjectType{types.TypePatent, types.TypeResearch}, c.Types)
	assert.Equal(t, []uuid.UUID{tagA, tagB}, c.TagIDs)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *c.DateFrom)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *c.DateTo)
	assert.Equal(t, []StatusBucket{BucketAssigned, BucketCompleted}, c.Status)
	assert.Equal(t, 10, c.ProgressMin)
	assert.Equal(t, 90, c.ProgressMax)
	assert.Equal(t, "1000.5", c.BudgetMin.String())
	assert.Equal(t, "20000", c.BudgetMax.String())
	assert.Equal(t, "US-123", *c.RegistrationNumber)
	assert.Equal(t, 2, c.Page)
	assert.Equal(t, 25, c.Size)
	assert.Equal(t, SortCreatedAt, c.SortBy)
	assert.Equal(t, Descending, c.SortDir)
	assert.False(t, c.IsEmpty())
}

func TestBuildKeepsProvidedEmptyString(t *testing.T) {
	c, err := Build(Raw{RegistrationNumber: String("")})
	require.NoError(t, err)

	require.NotNil(t, c.RegistrationNumber, "provided empty value must stay distinguishable from unset")
	assert.Equal(t, "", *c.RegistrationNumber)
	assert.Nil(t, c.IssuingAuthority)
}

func TestBuildEmptyListsMeanNoFilter(t *testing.T) {
	c, err := Build(Raw{TagIDs: []string{}, Types: []string{""}, Status: []string{" , "}})
	require.NoError(t, err)

	assert.Nil(t, c.TagIDs)
	assert.Nil(t, c.Types)
	assert.Nil(t, c.Status)
}

func TestBuildRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"progressMin above progressMax", Raw{ProgressMin: String("60"), ProgressMax: String("40")}},
		{"progress below zero", Raw{ProgressMin: String("-1")}},
		{"progress above hundred", Raw{ProgressMax: String("101")}},
		{"progress not a number", Raw{ProgressMin: String("half")}},
		{"date start after end", Raw{DateFrom: String("2024-06-02"), DateTo: String("2024-06-01")}},
		{"malformed date", Raw{DateFrom: String("06/01/2024")}},
		{"unknown type", Raw{Types: []string{"PUBLICATION", "BOOK"}}},
		{"unknown status", Raw{Status: []string{"done"}}},
		{"malformed tag id", Raw{TagIDs: []string{"not-a-uuid"}}},
		{"malformed budget", Raw{BudgetMin: String("lots")}},
		{"budget min above max", Raw{BudgetMin: String("10"), BudgetMax: String("5")}},
		{"negative page", Raw{Page: String("-1")}},
		{"zero size", Raw{Size: String("0")}},
		{"size above maximum", Raw{Size: String("101")}},
		{"unknown sort key", Raw{SortBy: String("budget")}},
		{"unknown sort direction", Raw{SortDir: String("sideways")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSearchCriteria)
		})
	}
}

func TestBuildAcceptsBoundaries(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"equal progress bounds", Raw{ProgressMin: String("50"), ProgressMax: String("50")}},
		{"same start and end date", Raw{DateFrom: String("2024-06-01"), DateTo: String("2024-06-01")}},
		{"maximum size", Raw{Size: String("100")}},
		{"minimum size", Raw{Size: String("1")}},
		{"open date range", Raw{DateTo: String("2024-06-01")}},
		{"equal budgets", Raw{BudgetMin: String("5.00"), BudgetMax: String("5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.raw)
			assert.NoError(t, err)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys {
		got, ok := ParseSortKey(string(k))
		assert.True(t, ok, "key %q", k)
		assert.Equal(t, k, got)
	}
	_, ok := ParseSortKey("budget")
	assert.False(t, ok)
}

func TestParseStatusBucket(t *testing.T) {
	got, ok := ParseStatusBucket(" In_Progress ")
	assert.True(t, ok)
	assert.Equal(t, BucketInProgress, got)

	_, ok = ParseStatusBucket("archived")
	assert.False(t, ok)
}
