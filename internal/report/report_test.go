package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/uxinsight/pkg/types"
)

func sampleResult() *types.ResearchResult {
	return &types.ResearchResult{
		Topic: "checkout button design",
		Findings: []string{
			"From nngroup.com: Red buttons draw attention near checkout flows...",
			"From baymard.com: Sticky order summaries reduce cart abandonment...",
		},
		Sources: []string{
			"https://www.nngroup.com/articles/checkout",
			"https://baymard.com/blog/sticky-order-summary",
		},
		Recommendations: []types.Recommendation{
			{
				ElementType: types.ElementButton,
				Principle:   "urgency/scarcity",
				ColorScheme: "red for urgency and action",
				Placement:   "above the fold, right-aligned",
				ExampleText: "Limited time offer on checkout upgrades",
			},
		},
		Confidence: 0.84,
		Timestamp:  time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
	}
}

// --- text output ---

func TestWriteTextSections(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, sampleResult())
	s := buf.String()

	if !strings.Contains(s, "Research: checkout button design") {
		t.Error("report should contain the topic header")
	}
	if !strings.Contains(s, "Confidence: 0.84") {
		t.Error("report should contain the confidence score")
	}
	if !strings.Contains(s, "   1. From nngroup.com:") {
		t.Error("report should number findings starting at 1")
	}
	if !strings.Contains(s, "https://baymard.com/blog/sticky-order-summary") {
		t.Error("report should list source URLs")
	}
	if !strings.Contains(s, "2 findings from 2 sources") {
		t.Error("report should end with the summary line")
	}

	first := strings.Index(s, "From nngroup.com")
	second := strings.Index(s, "From baymard.com")
	if first < 0 || second < 0 || first > second {
		t.Errorf("findings out of order: first at %d, second at %d", first, second)
	}
}

func TestWriteTextRecommendationColumns(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, sampleResult())
	s := buf.String()

	if !strings.Contains(s, "Element   Principle") {
		t.Error("report should contain the recommendation column header")
	}
	// %-8s pads "button" to eight columns before the two-space gap.
	if !strings.Contains(s, "button    urgency/scarcity") {
		t.Errorf("recommendation row misaligned:\n%s", s)
	}
}

func TestWriteTextNoFindings(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, &types.ResearchResult{Topic: "empty run"})
	s := buf.String()

	if !strings.Contains(s, "No findings.") {
		t.Error("empty result should say 'No findings.'")
	}
	if strings.Contains(s, "Sources:") {
		t.Error("empty result should stop after the findings notice")
	}
}

// --- json / yaml output ---

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var parsed types.ResearchResult
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if parsed.Topic != "checkout button design" {
		t.Errorf("Topic = %q", parsed.Topic)
	}
	if len(parsed.Findings) != 2 {
		t.Errorf("len(Findings) = %d, want 2", len(parsed.Findings))
	}
	if parsed.Recommendations[0].Principle != "urgency/scarcity" {
		t.Errorf("Principle = %q", parsed.Recommendations[0].Principle)
	}
	if parsed.Confidence != 0.84 {
		t.Errorf("Confidence = %f", parsed.Confidence)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var parsed types.ResearchResult
	if err := yaml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if parsed.Topic != "checkout button design" {
		t.Errorf("Topic = %q", parsed.Topic)
	}
	if len(parsed.Sources) != 2 {
		t.Errorf("len(Sources) = %d, want 2", len(parsed.Sources))
	}
	if parsed.Recommendations[0].ElementType != types.ElementButton {
		t.Errorf("ElementType = %q", parsed.Recommendations[0].ElementType)
	}
	if !parsed.Timestamp.Equal(time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Timestamp = %v", parsed.Timestamp)
	}
}

// --- markdown output ---

func TestWriteMarkdownStructure(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	s := buf.String()

	if !strings.Contains(s, "# Research: checkout button design") {
		t.Error("markdown should contain the H1 title")
	}
	for _, heading := range []string{"## Findings", "## Recommendations", "## Sources"} {
		if !strings.Contains(s, heading) {
			t.Errorf("markdown should contain %q", heading)
		}
	}
	if !strings.Contains(s, "|") {
		t.Error("markdown should contain a table")
	}
	if !strings.Contains(s, "urgency/scarcity") {
		t.Error("markdown should contain the recommendation principle")
	}
	if !strings.Contains(s, "From nngroup.com:") {
		t.Error("markdown should contain the findings")
	}
	if !strings.Contains(s, "https://www.nngroup.com/articles/checkout") {
		t.Error("markdown should contain the source URLs")
	}
}

func TestWriteMarkdownTruncatesExample(t *testing.T) {
	result := sampleResult()
	result.Recommendations[0].ExampleText = strings.Repeat("x", 80)

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, result); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	s := buf.String()

	if !strings.Contains(s, strings.Repeat("x", 57)+"...") {
		t.Error("long example text should be truncated with an ellipsis")
	}
	if strings.Contains(s, strings.Repeat("x", 58)) {
		t.Error("truncated example should not exceed the column budget")
	}
}

// --- helpers ---

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"abcdefghijk", 10, "abcdefg..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
