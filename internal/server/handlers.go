// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/internal/query"
)

// Version is reported by /health. It is set by the CLI at startup.
var Version = "dev"

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "project-catalog",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// searchProjects handles GET /api/v1/projects/search.
func (s *Server) searchProjects(c *gin.Context) {
	raw := s.rawCriteria(c)

	crit, err := criteria.Build(raw)
	if err != nil {
		s.fail(c, err)
		return
	}

	page, err := s.executor.Search(c.Request.Context(), crit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// rawCriteria collects query parameters. A parameter that is present but
// empty is passed through as provided, so criteria.Build sees the
// difference between "?query=" and no query at all.
func (s *Server) rawCriteria(c *gin.Context) criteria.Raw {
	opt := func(key string) *string {
		if v, ok := c.GetQuery(key); ok {
			return &v
		}
		return nil
	}

	raw := criteria.Raw{
		Query:              opt("query"),
		Types:              c.QueryArray("type"),
		TagIDs:             c.QueryArray("tagId"),
		DateFrom:           opt("dateRangeStart"),
		DateTo:             opt("dateRangeEnd"),
		Status:             c.QueryArray("status"),
		ProgressMin:        opt("progressMin"),
		ProgressMax:        opt("progressMax"),
		PublicationSource:  opt("publicationSource"),
		DOIISBN:            opt("doiIsbn"),
		BudgetMin:          opt("budgetMin"),
		BudgetMax:          opt("budgetMax"),
		FundingSource:      opt("fundingSource"),
		RegistrationNumber: opt("registrationNumber"),
		IssuingAuthority:   opt("issuingAuthority"),
		Page:               opt("page"),
		Size:               opt("size"),
		SortBy:             opt("sortBy"),
		SortDir:            opt("sortDir"),
	}
	if raw.Size == nil && s.search.DefaultPageSize > 0 {
		raw.Size = criteria.String(strconv.Itoa(s.search.DefaultPageSize))
	}
	return raw
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, criteria.ErrInvalidSearchCriteria):
		status = http.StatusBadRequest
	case errors.Is(err, query.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status != http.StatusBadRequest {
		s.logger.Error("search failed", "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
