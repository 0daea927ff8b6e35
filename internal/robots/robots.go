// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package robots answers whether a URL may be fetched under the site's
// robots.txt. The gate fails open: only a well-formed robots.txt served with
// status 200 can deny a fetch. Unreachable hosts, timeouts, other status
// codes, and parse failures all allow.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// wildcardAgent is the agent evaluated against robots.txt groups. Source
// fetches present a browser User-Agent, so the generic group is the one
// that governs politeness.
const wildcardAgent = "*"

// Gate fetches and evaluates robots.txt policies. It is stateless; verdict
// memoization lives in per-run sessions so one research run never fetches a
// domain's robots.txt twice and stale policies never outlive a run.
type Gate struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// New returns a Gate using the given client. The policy timeout bounds each
// robots.txt fetch independently of the source fetch budget.
func New(cfg types.PolicyConfig, userAgent string, client *http.Client) *Gate {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Gate{
		client:    client,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// NewRun returns a session that memoizes parsed policies per domain for the
// duration of one research run.
func (g *Gate) NewRun() *Run {
	return &Run{
		gate:     g,
		policies: make(map[string]*robotstxt.RobotsData),
	}
}

// Run memoizes per-domain robots.txt policies for one research run.
type Run struct {
	gate *Gate

	mu sync.Mutex
	// policies maps host to parsed robots data. A nil value records a
	// domain whose policy could not be obtained, which allows everything.
	policies map[string]*robotstxt.RobotsData
}

// Allowed reports whether rawURL may be fetched under the domain's
// robots.txt, evaluated for the wildcard agent.
func (r *Run) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data, cached := r.lookup(u.Host)
	if !cached {
		data = r.gate.fetch(ctx, u)
		r.store(u.Host, data)
	}
	if data == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, wildcardAgent)
}

func (r *Run) lookup(host string) (*robotstxt.RobotsData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.policies[host]
	return data, ok
}

func (r *Run) store(host string, data *robotstxt.RobotsData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[host] = data
}

// fetch retrieves and parses the domain's robots.txt. It returns nil when
// the policy cannot be obtained for any reason, which callers treat as
// allow-all.
func (g *Gate) fetch(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	// Only a 200 body carries policy. FromResponse is deliberately not
	// used here: it treats 5xx as disallow-all, which would fail closed.
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return data
}
