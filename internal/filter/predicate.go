// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter compiles a criteria.Criteria into a single predicate over
// project records. Each criterion has its own clause builder that returns
// True when the criterion is unset; Compile folds the clauses with And.
// Predicates never modify the record and are safe to evaluate concurrently.
package filter

import "github.com/pdiddy/project-catalog/pkg/types"

// Predicate reports whether a project satisfies a condition.
type Predicate func(p *types.Project) bool

// True matches every project. It is the identity of And.
func True(*types.Project) bool { return true }

// False matches no project.
func False(*types.Project) bool { return false }

// And matches when every predicate matches. With no predicates it is True.
func And(preds ...Predicate) Predicate {
	preds = compact(preds)
	switch len(preds) {
	case 0:
		return True
	case 1:
		return preds[0]
	}
	return func(p *types.Project) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Or matches when at least one predicate matches. With no predicates it
// is True, so an empty alternative list never filters anything out.
func Or(preds ...Predicate) Predicate {
	preds = compact(preds)
	switch len(preds) {
	case 0:
		return True
	case 1:
		return preds[0]
	}
	return func(p *types.Project) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// compact drops nil predicates.
func compact(preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
