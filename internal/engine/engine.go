// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the research facade. It wires the source catalog, the
// politeness-aware fetch orchestrator, the result cache, and the optional
// history archive behind a single Research call. All state is instance
// scoped: two engines never share caches, throttle slots, or block lists.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/uxinsight/internal/cache"
	"github.com/pdiddy/uxinsight/internal/fetch"
	"github.com/pdiddy/uxinsight/internal/history"
	"github.com/pdiddy/uxinsight/internal/sources"
	"github.com/pdiddy/uxinsight/internal/synth"
	"github.com/pdiddy/uxinsight/pkg/types"
)

// ErrResearchExhausted reports that a query produced no fetched sources at
// all, either because every candidate was blocked or because every fetch
// failed. The condition is retryable.
var ErrResearchExhausted = synth.ErrResearchExhausted

// batchMaxSources is the per-topic source budget for batch findings runs.
const batchMaxSources = 3

// Engine runs research queries end to end.
type Engine struct {
	cfg      types.ResearchConfig
	catalog  *sources.Catalog
	cache    *cache.Cache
	orch     *fetch.Orchestrator
	store    *history.Store
	client   *http.Client
	log      *slog.Logger
	now      func() time.Time
	noRecall bool
}

// Option adjusts an Engine under construction.
type Option func(*Engine)

// WithHTTPClient substitutes the HTTP client used for source and
// robots.txt fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) { e.client = client }
}

// WithLogger sets the logger for fetch decisions and absorbed failures.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCatalog substitutes the source catalog.
func WithCatalog(catalog *sources.Catalog) Option {
	return func(e *Engine) { e.catalog = catalog }
}

// WithHistory attaches a durable archive. Results are recorded to it and
// recalled from it when the in-memory cache misses.
func WithHistory(store *history.Store) Option {
	return func(e *Engine) { e.store = store }
}

// WithClock substitutes the clock stamped onto results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithoutRecall disables cache and history lookups so every research run
// fetches fresh sources. Results are still cached and recorded.
func WithoutRecall() Option {
	return func(e *Engine) { e.noRecall = true }
}

// New builds an engine from cfg.
func New(cfg types.ResearchConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		catalog: sources.Default(),
		cache:   cache.New(cfg.Cache),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.orch = fetch.New(cfg, e.client, e.log)
	return e
}

// Research answers one query. Cached results are returned without any
// network traffic; otherwise the resolved sources are fetched politely,
// synthesized, cached, and archived when a history store is attached.
func (e *Engine) Research(ctx context.Context, q types.Query) (*types.ResearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("validating query: %w", err)
	}

	urls := e.resolveSources(q)
	if len(urls) == 0 {
		return nil, fmt.Errorf("researching %q: %w", q.Topic, ErrResearchExhausted)
	}

	key := cache.Fingerprint(q.Topic, urls)
	if !e.noRecall {
		if result, ok := e.cache.Get(key); ok {
			e.log.Debug("result cache hit", "topic", q.Topic, "fingerprint", key)
			return result, nil
		}

		if e.store != nil {
			result, err := e.store.Lookup(ctx, key, e.cfg.Cache.TTL)
			switch {
			case err != nil:
				e.log.Warn("history lookup failed", "topic", q.Topic, "err", err)
			case result != nil:
				e.log.Debug("history hit", "topic", q.Topic, "fingerprint", key)
				e.cache.Put(key, result)
				return result, nil
			}
		}
	}

	outcomes := e.orch.Run(ctx, q.Focus, urls)

	result, err := synth.Build(q.Topic, q.Focus, outcomes, q.MaxSources, e.now())
	if err != nil {
		return nil, fmt.Errorf("researching %q: %w", q.Topic, err)
	}

	e.cache.Put(key, result)
	if e.store != nil {
		if err := e.store.Record(ctx, q, key, result); err != nil {
			e.log.Warn("history record failed", "topic", q.Topic, "err", err)
		}
	}
	return result, nil
}

// TopicFindings researches several topics with a small per-topic source
// budget and collects the findings of each. A topic whose research
// exhausts contributes an empty slice rather than failing the batch.
func (e *Engine) TopicFindings(ctx context.Context, topics []string, focus types.FocusArea, niche types.Niche) (map[string][]string, error) {
	findings := make(map[string][]string, len(topics))
	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := types.Query{
			Topic:      topic,
			Focus:      focus,
			Niche:      niche,
			MaxSources: batchMaxSources,
		}
		result, err := e.Research(ctx, q)
		if err != nil {
			if errors.Is(err, ErrResearchExhausted) {
				findings[topic] = []string{}
				continue
			}
			return nil, err
		}
		findings[topic] = result.Findings
	}
	return findings, nil
}

// Sources returns the catalog URLs a query for focus and niche would
// consider, in resolution order, before block filtering and truncation.
func (e *Engine) Sources(focus types.FocusArea, niche types.Niche) []string {
	return e.catalog.Resolve(focus, niche)
}

// BlockedDomains returns the domains currently excluded from fetching.
func (e *Engine) BlockedDomains() []string {
	return e.orch.Blocked().Snapshot()
}

// Reset clears cached results, the domain block list, and throttle
// history. The attached history store is untouched.
func (e *Engine) Reset() {
	e.cache.Reset()
	e.orch.Reset()
}

// resolveSources expands the catalog for the query, drops blocked domains,
// and truncates to the query's source budget.
func (e *Engine) resolveSources(q types.Query) []string {
	blocked := e.orch.Blocked()

	var urls []string
	for _, u := range e.catalog.Resolve(q.Focus, q.Niche) {
		if blocked.Contains(fetch.Domain(u)) {
			continue
		}
		urls = append(urls, u)
		if len(urls) == q.MaxSources {
			break
		}
	}
	return urls
}
