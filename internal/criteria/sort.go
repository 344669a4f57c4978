// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package criteria

import "strings"

// SortKey names the project field results are ordered by.
type SortKey string

const (
	SortID        SortKey = "id"
	SortTitle     SortKey = "title"
	SortProgress  SortKey = "progress"
	SortCreatedAt SortKey = "createdAt"
	SortUpdatedAt SortKey = "updatedAt"
	SortType      SortKey = "type"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortID, SortTitle, SortProgress, SortCreatedAt, SortUpdatedAt, SortType}

// ParseSortKey matches s against SortKeys ignoring case, so "createdat"
// and "createdAt" are the same key.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Direction orders results ascending or descending by the sort key. Ties
// are always broken by id ascending, whatever the direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" ignoring case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, true
	case Descending:
		return Descending, true
	}
	return "", false
}
