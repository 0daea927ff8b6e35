// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth turns raw source outcomes into a research result: findings,
// source attribution, element recommendations, and a confidence score.
package synth

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// ErrResearchExhausted reports that not a single source could be fetched
// for a query. The condition is usually transient (sources down, denied,
// or blocked), so callers may retry.
var ErrResearchExhausted = errors.New("research exhausted: no sources fetched")

const (
	maxFindings        = 10
	maxRecommendations = 5
	snippetChars       = 200
	exampleChars       = 100
)

// Build synthesizes fetch outcomes into a result for topic. maxSources is
// the query's planned source count and anchors the confidence score; now
// stamps the result. Outcomes that did not fetch contribute nothing.
func Build(topic string, focus types.FocusArea, outcomes []types.SourceOutcome, maxSources int, now time.Time) (*types.ResearchResult, error) {
	var fetched []types.SourceOutcome
	for _, out := range outcomes {
		if out.Fetched() {
			fetched = append(fetched, out)
		}
	}
	if len(fetched) == 0 {
		return nil, ErrResearchExhausted
	}

	result := &types.ResearchResult{
		Topic:     topic,
		Timestamp: now,
	}

	for _, out := range fetched {
		result.Sources = append(result.Sources, out.URL)
		if len(result.Findings) < maxFindings {
			result.Findings = append(result.Findings, finding(out))
		}
	}

	var insights []string
	for _, out := range fetched {
		insights = append(insights, out.Insights...)
	}
	if len(insights) > maxRecommendations {
		insights = insights[:maxRecommendations]
	}
	for _, insight := range insights {
		result.Recommendations = append(result.Recommendations, Classify(insight, focus))
	}

	result.Confidence = confidence(len(fetched), maxSources)
	return result, nil
}

// finding renders one fetched source as an attributed snippet.
func finding(out types.SourceOutcome) string {
	snippet := out.Content
	if utf8.RuneCountInString(snippet) > snippetChars {
		snippet = string([]rune(snippet)[:snippetChars])
	}
	return fmt.Sprintf("From %s: %s...", out.Domain, snippet)
}

// confidence scores coverage against the planned source count. A fully
// covered query scores 1.0; any coverage at all scores at least 0.2.
func confidence(fetched, maxSources int) float64 {
	if maxSources < 1 {
		maxSources = 1
	}
	return math.Min(1.0, float64(fetched)/float64(maxSources)*0.8+0.2)
}

// truncate caps s at limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
