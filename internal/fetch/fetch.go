// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves source pages concurrently while staying polite.
// Every request clears the domain block list, the robots gate, and the
// per-domain throttle before going on the wire, and no single source
// failure aborts a run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/uxinsight/internal/extract"
	"github.com/pdiddy/uxinsight/internal/robots"
	"github.com/pdiddy/uxinsight/internal/throttle"
	"github.com/pdiddy/uxinsight/pkg/types"
)

// Domain extracts the host portion of rawURL, port included, which is the
// unit of throttling and blocking. Unparseable URLs yield "".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// BlockList is a concurrency-safe set of domains excluded from fetching.
// A domain enters the set when a fetch against it fails and stays there
// until Reset.
type BlockList struct {
	mu      sync.Mutex
	domains map[string]struct{}
}

// NewBlockList returns an empty block list.
func NewBlockList() *BlockList {
	return &BlockList{domains: make(map[string]struct{})}
}

// Add records domain as blocked. Empty domains are ignored.
func (b *BlockList) Add(domain string) {
	if domain == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.domains[domain] = struct{}{}
}

// Contains reports whether domain is blocked.
func (b *BlockList) Contains(domain string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.domains[domain]
	return ok
}

// Snapshot returns the blocked domains in sorted order.
func (b *BlockList) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	domains := make([]string, 0, len(b.domains))
	for d := range b.domains {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Reset empties the set.
func (b *BlockList) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.domains = make(map[string]struct{})
}

// Orchestrator fans source fetches out across a bounded number of workers
// and owns the politeness state shared between them: the domain throttle,
// the robots gate, and the sticky block list.
type Orchestrator struct {
	client        *http.Client
	throttle      *throttle.Throttle
	gate          *robots.Gate
	blocked       *BlockList
	userAgent     string
	maxConcurrent int
	maxBytes      int64
	log           *slog.Logger
}

// New assembles an orchestrator from cfg. A nil client gets a fresh one
// bounded by the fetch timeout; a nil logger falls back to slog.Default().
func New(cfg types.ResearchConfig, client *http.Client, log *slog.Logger) *Orchestrator {
	if client == nil {
		client = &http.Client{Timeout: cfg.Fetch.Timeout}
	}
	if log == nil {
		log = slog.Default()
	}
	maxConcurrent := cfg.Fetch.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	maxBytes := cfg.Fetch.MaxContentBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	return &Orchestrator{
		client:        client,
		throttle:      throttle.New(cfg.Throttle.Interval()),
		gate:          robots.New(cfg.Policy, cfg.Fetch.UserAgent, client),
		blocked:       NewBlockList(),
		userAgent:     cfg.Fetch.UserAgent,
		maxConcurrent: maxConcurrent,
		maxBytes:      maxBytes,
		log:           log,
	}
}

// Blocked exposes the sticky block list so callers can filter candidate
// sources before a run and inspect state afterwards.
func (o *Orchestrator) Blocked() *BlockList {
	return o.blocked
}

// Reset clears the block list and the throttle history.
func (o *Orchestrator) Reset() {
	o.blocked.Reset()
	o.throttle.Reset()
}

// Run fetches every URL and returns one outcome per URL in input order.
// Concurrency is bounded by the configured worker limit; robots.txt
// verdicts are memoized for the duration of the run. Failures are absorbed
// into their outcome, never returned.
func (o *Orchestrator) Run(ctx context.Context, focus types.FocusArea, urls []string) []types.SourceOutcome {
	outcomes := make([]types.SourceOutcome, len(urls))
	session := o.gate.NewRun()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrent)
	for i, u := range urls {
		g.Go(func() error {
			outcomes[i] = o.fetchOne(ctx, session, focus, u)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// fetchOne walks a single source through the politeness gates and the
// download. A failed download marks the domain blocked for the rest of the
// orchestrator's life.
func (o *Orchestrator) fetchOne(ctx context.Context, session *robots.Run, focus types.FocusArea, rawURL string) types.SourceOutcome {
	out := types.SourceOutcome{URL: rawURL, Domain: Domain(rawURL)}

	if o.blocked.Contains(out.Domain) {
		out.Status = types.SourceSkippedBlocked
		o.log.Debug("skipping blocked domain", "domain", out.Domain, "url", rawURL)
		return out
	}

	if !session.Allowed(ctx, rawURL) {
		out.Status = types.SourcePolicyDenied
		o.log.Warn("robots.txt denies fetch", "domain", out.Domain, "url", rawURL)
		return out
	}

	waited, err := o.throttle.Acquire(ctx, out.Domain)
	out.Waited = waited
	if err != nil {
		out.Status = types.SourceFailed
		out.Err = err.Error()
		return out
	}

	page, err := o.download(ctx, rawURL)
	if err != nil {
		out.Status = types.SourceFailed
		out.Err = err.Error()
		o.blocked.Add(out.Domain)
		o.log.Warn("source fetch failed", "domain", out.Domain, "url", rawURL, "err", err)
		return out
	}

	out.Status = types.SourceFetched
	out.Title = page.Title
	out.Content = page.Text
	out.Insights = extract.Insights(page.Text, focus)
	return out
}

// download performs the HTTP GET and normalizes the body into page text.
// The body is capped before decoding so a hostile source cannot balloon
// memory, and decoded per the response charset before extraction.
func (o *Orchestrator) download(ctx context.Context, rawURL string) (extract.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return extract.Page{}, fmt.Errorf("creating request: %w", err)
	}
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := o.client.Do(req)
	if err != nil {
		return extract.Page{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return extract.Page{}, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	limited := io.LimitReader(resp.Body, o.maxBytes)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return extract.Page{}, fmt.Errorf("decoding response body: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return extract.Page{}, fmt.Errorf("reading response body: %w", err)
	}

	return extract.Normalize(rawURL, string(body)), nil
}
