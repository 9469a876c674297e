package scanner

import (
	"context"
	"fmt"

	"FinNewsScanner/internal/domain"
)

// Strategy names resolved by the orchestrator when walking a source.
const (
	StrategyStructured = "structured"
	StrategyListing    = "listing"
	StrategyRendered   = "rendered"
)

// Selectors carries the CSS descriptors used to pick items off a listing page.
type Selectors struct {
	Article string
	Title   string
	Content string
}

// Source describes a single site with everything a listing walk needs.
type Source struct {
	ID                string
	Name              string
	BaseURL           string
	ListingURLs       []string
	FeedURLs          []string
	Selectors         Selectors
	WaitSelector      string
	RequiresRendering bool
}

// Request carries all parameters required to execute a scan.
type Request struct {
	Source Source
	Limit  int
}

// Strategy captures a single listing-walk implementation (structured crawl,
// raw listing scrape, rendered walk).
type Strategy interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.RawArticle, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("strategy %s is not registered", name)
}
