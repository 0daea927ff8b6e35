// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"strings"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// Classification rules are ordered: within each table the first keyword hit
// wins, and earlier rules shadow later ones.

var elementRules = []struct {
	element  types.ElementType
	keywords []string
}{
	{types.ElementButton, []string{"button", "cta", "click"}},
	{types.ElementBanner, []string{"banner", "header", "hero"}},
	{types.ElementForm, []string{"form", "input", "signup"}},
}

var principleRules = []struct {
	principle string
	keywords  []string
}{
	{"urgency/scarcity", []string{"urgency", "limited", "hurry"}},
	{"trust building", []string{"trust", "secure", "safe"}},
	{"social proof", []string{"social", "proof", "testimonial"}},
	{"color psychology", []string{"color", "red", "green", "blue"}},
}

var placements = map[types.ElementType]string{
	types.ElementButton: "above the fold, right-aligned",
	types.ElementBanner: "top of page or sticky header",
	types.ElementForm:   "center of page or sidebar",
	types.ElementCard:   "grid layout with proper spacing",
}

// Classify maps one insight sentence to a concrete element recommendation.
// Unmatched insights fall back to a card element with general persuasion
// guidance.
func Classify(insight string, focus types.FocusArea) types.Recommendation {
	lower := strings.ToLower(insight)

	element := types.ElementCard
	for _, r := range elementRules {
		if containsAny(lower, r.keywords) {
			element = r.element
			break
		}
	}

	principle := "general persuasion"
	for _, r := range principleRules {
		if containsAny(lower, r.keywords) {
			principle = r.principle
			break
		}
	}

	color := "brand-consistent colors"
	switch {
	case containsAny(lower, []string{"red", "urgency"}):
		color = "red for urgency and action"
	case containsAny(lower, []string{"green", "trust"}):
		color = "green for trust and success"
	case strings.Contains(lower, "blue") || focus == types.FocusUIUX:
		color = "blue for professionalism and trust"
	}

	return types.Recommendation{
		ElementType: element,
		Principle:   principle,
		ColorScheme: color,
		Placement:   placements[element],
		ExampleText: truncate(insight, exampleChars),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
