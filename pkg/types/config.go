package types

import "time"

// Default values applied by Query.Validate and DefaultResearchConfig.
const (
	// DefaultMaxSources is the source cap applied when a query does not set one.
	DefaultMaxSources = 5

	// MaxSourcesLimit is the hard upper bound on sources per query.
	MaxSourcesLimit = 20

	// DefaultRecencyDays is the preferred content age window.
	DefaultRecencyDays = 365
)

// DefaultUserAgent is the browser identity sent with source fetches. Several
// design publications serve reduced pages to obvious bots, so fetches present
// a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ThrottleConfig holds settings for the per-domain rate limiter.
type ThrottleConfig struct {
	// RequestsPerSecond is the per-domain request budget (default 0.5,
	// i.e. one request per domain every two seconds).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// Interval returns the minimum gap between requests to one domain.
func (c ThrottleConfig) Interval() time.Duration {
	rps := c.RequestsPerSecond
	if rps <= 0 {
		rps = 0.5
	}
	return time.Duration(float64(time.Second) / rps)
}

// PolicyConfig holds settings for the robots.txt gate.
type PolicyConfig struct {
	// Timeout bounds the robots.txt fetch. It is independent of the source
	// fetch timeout so a slow robots host cannot consume the fetch budget
	// (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CacheConfig holds settings for the in-memory result cache.
type CacheConfig struct {
	// TTL is how long a cached result stays valid (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// FetchConfig holds settings for the fetch orchestrator.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxConcurrent caps how many source fetches run at once (default 3).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// MaxContentBytes caps how much of a response body is read (default 1 MiB).
	MaxContentBytes int64 `json:"max_content_bytes" yaml:"max_content_bytes"`
}

// HistoryConfig holds settings for the durable research archive.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables the archive.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ResearchConfig groups all engine component configurations.
type ResearchConfig struct {
	Throttle ThrottleConfig `json:"throttle" yaml:"throttle"`
	Policy   PolicyConfig   `json:"policy" yaml:"policy"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}

// DefaultResearchConfig returns the standard engine configuration.
func DefaultResearchConfig() ResearchConfig {
	return ResearchConfig{
		Throttle: ThrottleConfig{RequestsPerSecond: 0.5},
		Policy:   PolicyConfig{Timeout: 10 * time.Second},
		Cache:    CacheConfig{TTL: time.Hour},
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: DefaultUserAgent,
			},
			MaxConcurrent:   3,
			MaxContentBytes: 1 << 20,
		},
		History: HistoryConfig{MaxResults: 20},
	}
}
