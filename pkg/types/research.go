// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// FocusArea selects which research lens a query uses. Each focus area has
// its own curated source list and insight keyword table.
type FocusArea string

const (
	FocusUIUX          FocusArea = "ui_ux"
	FocusConversion    FocusArea = "conversion"
	FocusSEO           FocusArea = "seo"
	FocusPerformance   FocusArea = "performance"
	FocusAccessibility FocusArea = "accessibility"
)

// FocusAreas lists every known focus area in catalog order.
var FocusAreas = []FocusArea{
	FocusUIUX,
	FocusConversion,
	FocusSEO,
	FocusPerformance,
	FocusAccessibility,
}

// ParseFocusArea converts a string into a FocusArea.
func ParseFocusArea(s string) (FocusArea, error) {
	for _, f := range FocusAreas {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown focus area %q: use one of ui_ux, conversion, seo, performance, accessibility", s)
}

// Niche narrows research toward a product vertical. Niche sources are
// appended after the focus area sources when a catalog entry exists.
type Niche string

const (
	NicheOutdoorGear     Niche = "outdoor_gear"
	NicheFashion         Niche = "fashion"
	NicheTech            Niche = "tech"
	NicheHomeImprovement Niche = "home_improvement"
	NicheMusic           Niche = "music"
	NicheGeneral         Niche = "general"
)

// Niches lists every known niche.
var Niches = []Niche{
	NicheOutdoorGear,
	NicheFashion,
	NicheTech,
	NicheHomeImprovement,
	NicheMusic,
	NicheGeneral,
}

// ParseNiche converts a string into a Niche. The empty string is valid and
// means no niche context.
func ParseNiche(s string) (Niche, error) {
	if s == "" {
		return "", nil
	}
	for _, n := range Niches {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown niche %q: use one of outdoor_gear, fashion, tech, home_improvement, music, general", s)
}

// ElementType classifies the page element a recommendation targets.
type ElementType string

const (
	ElementButton ElementType = "button"
	ElementBanner ElementType = "banner"
	ElementForm   ElementType = "form"
	ElementCard   ElementType = "card"
)

// Query describes one research request.
type Query struct {
	// Topic is the research question or subject (e.g. "checkout button design").
	Topic string `json:"topic" yaml:"topic"`

	// Focus selects the research lens and its source catalog.
	Focus FocusArea `json:"focus_area" yaml:"focus_area"`

	// Niche optionally narrows research toward a product vertical.
	Niche Niche `json:"niche_context,omitempty" yaml:"niche_context,omitempty"`

	// MaxSources caps how many sources are fetched (default 5, clamped to 1..20).
	MaxSources int `json:"max_sources" yaml:"max_sources"`

	// RecencyDays is the preferred content age window in days (default 365).
	// Recorded with results; sources are not filtered by age.
	RecencyDays int `json:"recency_days" yaml:"recency_days"`
}

// Validate checks required fields and applies defaults and clamps in place.
func (q *Query) Validate() error {
	if q.Topic == "" {
		return fmt.Errorf("query topic is empty")
	}
	if _, err := ParseFocusArea(string(q.Focus)); err != nil {
		return err
	}
	if q.Niche != "" {
		if _, err := ParseNiche(string(q.Niche)); err != nil {
			return err
		}
	}
	if q.MaxSources == 0 {
		q.MaxSources = DefaultMaxSources
	}
	if q.MaxSources < 1 {
		q.MaxSources = 1
	}
	if q.MaxSources > MaxSourcesLimit {
		q.MaxSources = MaxSourcesLimit
	}
	if q.RecencyDays <= 0 {
		q.RecencyDays = DefaultRecencyDays
	}
	return nil
}

// Recommendation is one actionable element suggestion derived from an insight.
type Recommendation struct {
	// ElementType is the page element the suggestion targets.
	ElementType ElementType `json:"element_type" yaml:"element_type"`

	// Principle names the persuasion principle behind the suggestion
	// (e.g. "urgency/scarcity", "trust building").
	Principle string `json:"psychology_principle" yaml:"psychology_principle"`

	// ColorScheme suggests a color direction for the element.
	ColorScheme string `json:"color_scheme" yaml:"color_scheme"`

	// Placement suggests where on the page the element belongs.
	Placement string `json:"placement" yaml:"placement"`

	// ExampleText is the source insight, truncated for display.
	ExampleText string `json:"example_text" yaml:"example_text"`
}

// ResearchResult is the synthesized outcome of one research run.
type ResearchResult struct {
	// Topic echoes the query topic.
	Topic string `json:"query" yaml:"query"`

	// Findings summarize what each fetched source contributed, in source order.
	Findings []string `json:"findings" yaml:"findings"`

	// Sources lists the URLs that were successfully fetched, in source order.
	Sources []string `json:"sources" yaml:"sources"`

	// Recommendations are element suggestions classified from insights.
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`

	// Confidence scores source coverage in [0, 1].
	Confidence float64 `json:"confidence_score" yaml:"confidence_score"`

	// Timestamp records when the synthesis completed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
