package collection

import (
	"context"
	"sync/atomic"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/services"
)

// Searcher issues catalog queries tagged with a monotonically increasing
// token. Responses carry their token back; only the latest issued token is
// accepted at resolution time, so stale results are discarded even when
// network responses arrive out of order.
type Searcher struct {
	svc    services.Service
	latest atomic.Uint64
}

// NewSearcher creates a Searcher over the given gateway.
func NewSearcher(svc services.Service) *Searcher {
	return &Searcher{svc: svc}
}

// SearchResult pairs a query's results with the token it was issued under.
type SearchResult struct {
	Token   uint64
	Query   string
	Results []models.GameRecord
	Err     error
}

// Begin registers a new query and returns its token, invalidating every
// earlier in-flight query.
func (s *Searcher) Begin() uint64 {
	return s.latest.Add(1)
}

// Run executes the query registered under token. Safe to call from a
// goroutine; the result is applied only if Accept approves it.
func (s *Searcher) Run(ctx context.Context, token uint64, query string, limit, offset int) SearchResult {
	results, err := s.svc.SearchCatalog(ctx, query, limit, offset)
	return SearchResult{Token: token, Query: query, Results: results, Err: err}
}

// Accept reports whether the result belongs to the latest issued query.
// Stale results must be dropped by the caller.
func (s *Searcher) Accept(res SearchResult) bool {
	return res.Token == s.latest.Load()
}
