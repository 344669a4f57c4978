// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import "github.com/pdiddy/project-catalog/internal/criteria"

// Clauses returns one clause per criterion, in a fixed order. Unset
// criteria yield True.
func Clauses(c criteria.Criteria) []Predicate {
	clauses := make([]Predicate, len(builders))
	for i, build := range builders {
		clauses[i] = build(c)
	}
	return clauses
}

// Compile returns the AND of every clause for c. An all-unset Criteria
// compiles to a predicate matching every valid project.
func Compile(c criteria.Criteria) Predicate {
	return And(Clauses(c)...)
}
