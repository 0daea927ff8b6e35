// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources resolves the curated reading list for a research query.
package sources

import (
	"strings"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// focusSources lists authoritative publications per focus area, in priority
// order. Entries are bare hosts or host/path prefixes; Resolve normalizes
// them to https URLs.
var focusSources = map[types.FocusArea][]string{
	types.FocusUIUX: {
		"nngroup.com",
		"uxplanet.org",
		"smashingmagazine.com",
		"medium.com/topic/design",
		"interaction-design.org",
		"tailwindcss.com/docs",
	},
	types.FocusConversion: {
		"cxl.com",
		"optimizely.com/insights",
		"blog.hubspot.com/marketing/conversion-optimization",
		"unbounce.com/conversion-rate-optimization",
		"crazyegg.com/blog",
	},
	types.FocusSEO: {
		"developers.google.com/search",
		"moz.com/blog",
		"searchengineland.com",
		"backlinko.com",
		"semrush.com/blog",
	},
	types.FocusPerformance: {
		"web.dev/vitals",
		"calibreapp.com/blog",
		"speedcurve.com/blog",
		"developer.mozilla.org/en-US/docs/Web/Performance",
		"sitespeed.io",
	},
	types.FocusAccessibility: {
		"w3.org/WAI",
		"a11yproject.com",
		"deque.com/blog",
		"webaim.org/articles",
		"accessibility.blog.gov.uk",
	},
}

// nicheSources lists vertical-specific publications appended after the focus
// list. Niches without an entry contribute nothing.
var nicheSources = map[types.Niche][]string{
	types.NicheFashion: {
		"vogue.com/fashion",
		"fashionista.com",
		"refinery29.com/en-us/fashion",
	},
	types.NicheTech: {
		"techcrunch.com",
		"theverge.com",
		"arstechnica.com",
	},
	types.NicheOutdoorGear: {
		"outsideonline.com",
		"rei.com/blog",
		"backpacker.com",
	},
}

// Catalog maps focus areas and niches to source entries. Tests construct
// custom catalogs pointing at local servers; production code uses Default.
type Catalog struct {
	Focus map[types.FocusArea][]string
	Niche map[types.Niche][]string
}

// Default returns the standard curated catalog.
func Default() *Catalog {
	return &Catalog{Focus: focusSources, Niche: nicheSources}
}

// Resolve returns the source URLs for a focus area plus niche context, focus
// entries first, in catalog order. Entries without a scheme become https URLs.
func (c *Catalog) Resolve(focus types.FocusArea, niche types.Niche) []string {
	var urls []string
	for _, entry := range c.Focus[focus] {
		urls = append(urls, normalize(entry))
	}
	if niche != "" {
		for _, entry := range c.Niche[niche] {
			urls = append(urls, normalize(entry))
		}
	}
	return urls
}

func normalize(entry string) string {
	if strings.Contains(entry, "://") {
		return entry
	}
	return "https://" + entry
}
