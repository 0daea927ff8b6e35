// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "github.com/pdiddy/uxinsight/pkg/types"

// insightKeywords maps each focus area to its keyword table. Order matters:
// within a segment the first listed keyword that matches claims it, so more
// specific phrases come before the generic ones they contain.
var insightKeywords = map[types.FocusArea][]string{
	types.FocusConversion: {
		"conversion rate",
		"cta",
		"call to action",
		"button design",
		"trust signal",
		"social proof",
		"urgency",
		"scarcity",
		"color psychology",
		"psychology",
		"persuasion",
	},
	types.FocusUIUX: {
		"user experience",
		"usability",
		"accessibility",
		"mobile first",
		"responsive design",
		"user interface",
		"design pattern",
		"navigation",
		"layout",
	},
	types.FocusSEO: {
		"search engine optimization",
		"meta tags",
		"structured data",
		"page speed",
		"core web vitals",
		"lighthouse",
		"performance",
	},
	types.FocusPerformance: {
		"page speed",
		"core web vitals",
		"lighthouse",
		"lazy loading",
		"time to first byte",
		"render blocking",
		"image optimization",
		"caching",
		"bundle size",
	},
	types.FocusAccessibility: {
		"wcag",
		"screen reader",
		"aria",
		"contrast",
		"keyboard navigation",
		"alt text",
		"focus indicator",
		"assistive technology",
	},
}
