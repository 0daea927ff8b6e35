// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"strings"
	"testing"

	"github.com/pdiddy/uxinsight/pkg/types"
)

func TestResolveFocusOnly(t *testing.T) {
	urls := Default().Resolve(types.FocusConversion, "")

	if len(urls) != 5 {
		t.Fatalf("conversion catalog has %d entries, want 5", len(urls))
	}
	if urls[0] != "https://cxl.com" {
		t.Errorf("first conversion source = %s, want https://cxl.com", urls[0])
	}
	for _, u := range urls {
		if !strings.HasPrefix(u, "https://") {
			t.Errorf("source %s not normalized to https", u)
		}
	}
}

func TestResolveAppendsNicheAfterFocus(t *testing.T) {
	urls := Default().Resolve(types.FocusConversion, types.NicheFashion)

	if len(urls) != 8 {
		t.Fatalf("conversion+fashion resolved %d entries, want 8", len(urls))
	}
	if urls[0] != "https://cxl.com" {
		t.Errorf("focus sources should come first, got %s", urls[0])
	}
	if urls[5] != "https://vogue.com/fashion" {
		t.Errorf("niche sources should follow focus sources, got %s", urls[5])
	}
}

func TestResolveNicheWithoutEntries(t *testing.T) {
	for _, niche := range []types.Niche{types.NicheHomeImprovement, types.NicheMusic, types.NicheGeneral} {
		urls := Default().Resolve(types.FocusSEO, niche)
		if len(urls) != 5 {
			t.Errorf("seo+%s resolved %d entries, want the 5 focus entries", niche, len(urls))
		}
	}
}

func TestResolveKeepsExplicitScheme(t *testing.T) {
	c := &Catalog{
		Focus: map[types.FocusArea][]string{
			types.FocusUIUX: {"http://127.0.0.1:8080/fixture", "plain.example"},
		},
	}

	urls := c.Resolve(types.FocusUIUX, "")
	if urls[0] != "http://127.0.0.1:8080/fixture" {
		t.Errorf("schemed entry rewritten: %s", urls[0])
	}
	if urls[1] != "https://plain.example" {
		t.Errorf("bare entry not normalized: %s", urls[1])
	}
}

func TestDefaultCoversEveryFocusArea(t *testing.T) {
	c := Default()
	for _, focus := range types.FocusAreas {
		if len(c.Focus[focus]) < 5 {
			t.Errorf("focus area %s has %d sources, want at least 5", focus, len(c.Focus[focus]))
		}
	}
}
