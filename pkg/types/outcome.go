// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceStatus indicates the terminal state of one source in a research run.
type SourceStatus string

const (
	// SourceFetched means the page was retrieved and content extracted.
	SourceFetched SourceStatus = "fetched"

	// SourceFailed means the fetch failed (transport error or non-2xx);
	// the domain is blocked for the rest of the engine's life.
	SourceFailed SourceStatus = "failed"

	// SourcePolicyDenied means robots.txt disallowed the URL. The domain
	// is not blocked; other paths on it may still be fetchable.
	SourcePolicyDenied SourceStatus = "policy_denied"

	// SourceSkippedBlocked means the domain was already on the block list
	// and no network request was made.
	SourceSkippedBlocked SourceStatus = "skipped_blocked"
)

// SourceOutcome records what happened to one source URL during a run.
// A run returns one outcome per resolved source, in resolution order.
type SourceOutcome struct {
	// URL is the source as resolved from the catalog.
	URL string `json:"url" yaml:"url"`

	// Domain is the URL host, used for throttling and blocking.
	Domain string `json:"domain" yaml:"domain"`

	// Status is the terminal state for this source.
	Status SourceStatus `json:"status" yaml:"status"`

	// Title is the extracted page title (fetched sources only).
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the normalized page text, capped for synthesis.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Insights are keyword-matched sentence segments from Content.
	Insights []string `json:"insights,omitempty" yaml:"insights,omitempty"`

	// Err holds the failure description for failed or denied sources.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`

	// Waited is how long the domain throttle delayed this fetch.
	Waited time.Duration `json:"-" yaml:"-"`
}

// Fetched reports whether the source contributed content.
func (o SourceOutcome) Fetched() bool {
	return o.Status == SourceFetched
}
