// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/pkg/types"
)

// clauseBuilder produces one clause from the criteria. It returns True
// when its criterion is unset.
type clauseBuilder func(c criteria.Criteria) Predicate

// builders lists every clause applied by Compile. Order does not affect
// the result.
var builders = []clauseBuilder{
	freeTextClause,
	typesClause,
	tagsClause,
	dateRangeClause,
	statusClause,
	progressClause,
	publicationSourceClause,
	doiISBNClause,
	budgetClause,
	fundingSourceClause,
	registrationNumberClause,
	issuingAuthorityClause,
}

// freeTextClause matches the query as a case-insensitive substring of the
// title or the description.
func freeTextClause(c criteria.Criteria) Predicate {
	if c.Query == nil {
		return True
	}
	q := strings.ToLower(*c.Query)
	return Or(
		func(p *types.Project) bool { return containsFold(p.Title, q) },
		func(p *types.Project) bool { return containsFold(p.Description, q) },
	)
}

func typesClause(c criteria.Criteria) Predicate {
	if len(c.Types) == 0 {
		return True
	}
	set := make(map[types.ProjectType]struct{}, len(c.Types))
	for _, t := range c.Types {
		set[t] = struct{}{}
	}
	return func(p *types.Project) bool {
		_, ok := set[p.Type]
		return ok
	}
}

// tagsClause matches projects sharing at least one tag with the request.
func tagsClause(c criteria.Criteria) Predicate {
	if len(c.TagIDs) == 0 {
		return True
	}
	ids := slices.Clone(c.TagIDs)
	return func(p *types.Project) bool {
		return slices.ContainsFunc(ids, p.HasTag)
	}
}

// dateRangeClause bounds createdAt by [DateFrom 00:00:00, DateTo 23:59:59]
// in UTC. Either bound may be absent.
func dateRangeClause(c criteria.Criteria) Predicate {
	var preds []Predicate
	if c.DateFrom != nil {
		from := *c.DateFrom
		preds = append(preds, func(p *types.Project) bool {
			return !p.CreatedAt.Before(from)
		})
	}
	if c.DateTo != nil {
		end := c.DateTo.AddDate(0, 0, 1)
		preds = append(preds, func(p *types.Project) bool {
			return p.CreatedAt.Before(end)
		})
	}
	return And(preds...)
}

// bucketPredicates maps each status bucket to its progress test.
var bucketPredicates = map[criteria.StatusBucket]Predicate{
	criteria.BucketAssigned: func(p *types.Project) bool {
		return p.Progress > 0
	},
	criteria.BucketInProgress: func(p *types.Project) bool {
		return p.Progress >= 1 && p.Progress <= 99
	},
	criteria.BucketCompleted: func(p *types.Project) bool {
		return p.Progress == 100
	},
}

// statusClause ORs the requested buckets; no buckets matches everything.
// A bucket without a progress test contributes False, so it never widens
// the match.
func statusClause(c criteria.Criteria) Predicate {
	preds := make([]Predicate, 0, len(c.Status))
	for _, b := range c.Status {
		pred, ok := bucketPredicates[b]
		if !ok {
			pred = False
		}
		preds = append(preds, pred)
	}
	return Or(preds...)
}

// progressClause is always applied; at the default [0, 100] it passes
// every valid record.
func progressClause(c criteria.Criteria) Predicate {
	lo, hi := c.ProgressMin, c.ProgressMax
	return func(p *types.Project) bool {
		return p.Progress >= lo && p.Progress <= hi
	}
}

// ofType matches projects of the given subtype.
func ofType(t types.ProjectType) Predicate {
	return func(p *types.Project) bool { return p.Type == t }
}

// subtypeClause requires the subtype first, then the detail test. Projects
// of other subtypes are excluded by the type test, never passed through.
func subtypeClause(t types.ProjectType, match Predicate) Predicate {
	return And(ofType(t), match)
}

func publicationSourceClause(c criteria.Criteria) Predicate {
	if c.PublicationSource == nil {
		return True
	}
	q := strings.ToLower(*c.PublicationSource)
	return subtypeClause(types.TypePublication, func(p *types.Project) bool {
		return p.Publication != nil && containsFold(p.Publication.Source, q)
	})
}

func doiISBNClause(c criteria.Criteria) Predicate {
	if c.DOIISBN == nil {
		return True
	}
	q := strings.ToLower(*c.DOIISBN)
	return subtypeClause(types.TypePublication, func(p *types.Project) bool {
		return p.Publication != nil && containsFold(p.Publication.DOIISBN, q)
	})
}

// budgetClause bounds the research budget inclusively on each provided side.
func budgetClause(c criteria.Criteria) Predicate {
	if c.BudgetMin == nil && c.BudgetMax == nil {
		return True
	}
	var lo, hi *decimal.Decimal
	if c.BudgetMin != nil {
		v := *c.BudgetMin
		lo = &v
	}
	if c.BudgetMax != nil {
		v := *c.BudgetMax
		hi = &v
	}
	return subtypeClause(types.TypeResearch, func(p *types.Project) bool {
		if p.Research == nil {
			return false
		}
		b := p.Research.Budget
		if lo != nil && b.LessThan(*lo) {
			return false
		}
		if hi != nil && b.GreaterThan(*hi) {
			return false
		}
		return true
	})
}

func fundingSourceClause(c criteria.Criteria) Predicate {
	if c.FundingSource == nil {
		return True
	}
	q := strings.ToLower(*c.FundingSource)
	return subtypeClause(types.TypeResearch, func(p *types.Project) bool {
		return p.Research != nil && containsFold(p.Research.FundingSource, q)
	})
}

func registrationNumberClause(c criteria.Criteria) Predicate {
	if c.RegistrationNumber == nil {
		return True
	}
	q := strings.ToLower(*c.RegistrationNumber)
	return subtypeClause(types.TypePatent, func(p *types.Project) bool {
		return p.Patent != nil && containsFold(p.Patent.RegistrationNumber, q)
	})
}

func issuingAuthorityClause(c criteria.Criteria) Predicate {
	if c.IssuingAuthority == nil {
		return True
	}
	q := strings.ToLower(*c.IssuingAuthority)
	return subtypeClause(types.TypePatent, func(p *types.Project) bool {
		return p.Patent != nil && containsFold(p.Patent.IssuingAuthority, q)
	})
}

// containsFold reports whether lowerNeedle occurs in s ignoring case. The
// needle must already be lower-cased.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
