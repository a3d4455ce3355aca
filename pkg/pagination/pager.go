package pagination

import (
	"context"
	"errors"

	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/query"
	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/radio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var radioPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "abcradio_pages_fetched_total",
	Help: "Total result pages fetched by pagers",
})

// ErrPageLimit is reported by Err when a Pager configured with
// WithMaxPages stops before reaching the declared total.
var ErrPageLimit = errors.New("page limit reached")

// Searcher fetches a single page of results. *client.Client implements it.
type Searcher interface {
	Search(ctx context.Context, params query.Params) (*radio.SearchResult, error)
}

// Pager iterates over all pages of one search. Create one with New; use
// it from a single goroutine. Separate Pagers over the same Searcher are
// independent and safe to run concurrently.
type Pager struct {
	searcher Searcher
	params   query.Params

	current *radio.SearchResult
	err     error
	started bool
	done    bool

	maxPages int
	fetched  int
}

// Option configures a Pager.
type Option func(*Pager)

// WithMaxPages caps the number of pages fetched. A server that keeps
// inflating total between pages would otherwise keep a Pager running
// indefinitely. Zero (the default) means no cap.
func WithMaxPages(n int) Option {
	return func(p *Pager) {
		p.maxPages = n
	}
}

// New creates a Pager that starts from the given options' offset, or zero
// if unset. The options are never mutated; each advance substitutes a new
// offset into a copy.
func New(searcher Searcher, params query.Params, opts ...Option) *Pager {
	p := &Pager{
		searcher: searcher,
		params:   params,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next fetches the next page, blocking for the duration of the search
// call. It returns false when iteration is finished, either because the
// last page's end reached the declared total or because a search failed;
// check Err to tell the two apart.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}

	params := p.params
	if p.started {
		cur := p.current
		if cur.Offset+cur.Limit >= cur.Total {
			p.done = true
			return false
		}
		if cur.Limit <= 0 {
			// The server declared more results but a zero-size page;
			// advancing would re-request the same offset forever.
			p.done = true
			return false
		}
		if p.maxPages > 0 && p.fetched >= p.maxPages {
			p.done = true
			p.err = ErrPageLimit
			return false
		}
		params = p.params.WithOffset(cur.Offset + cur.Limit)
	}
	p.started = true

	result, err := p.searcher.Search(ctx, params)
	if err != nil {
		p.err = err
		p.done = true
		return false
	}

	p.current = result
	p.fetched++
	radioPagesFetchedTotal.Inc()

	log.Debug().
		Int("offset", result.Offset).
		Int("limit", result.Limit).
		Int("total", result.Total).
		Int("page", p.fetched).
		Msg("Fetched result page")

	return true
}

// Current returns the most recently fetched page. It is only valid after
// a Next call that returned true.
func (p *Pager) Current() *radio.SearchResult {
	return p.current
}

// Err returns the first error encountered during iteration, if any.
func (p *Pager) Err() error {
	return p.err
}
