// Package extract normalizes fetched HTML and mines insight segments from it.
package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/uxinsight/pkg/types"
)

const (
	// maxContentChars caps normalized page text carried into synthesis.
	maxContentChars = 5000

	// maxSegments bounds how many sentence segments the insight scan reads.
	maxSegments = 50

	// minSegmentChars drops fragments too short to carry an insight.
	minSegmentChars = 20

	// maxInsights caps insights per page.
	maxInsights = 10

	// minArticleChars gates the readability path. Below this the isolated
	// article likely missed the real content and the whole document is
	// used instead.
	minArticleChars = 400
)

// Page holds the normalized form of one fetched document.
type Page struct {
	Title string
	Text  string
}

// Normalize extracts readable text from an HTML document. Script, style, and
// noscript content is dropped, whitespace runs collapse to single spaces, and
// the result is capped. Substantial articles are isolated from page chrome
// first; short or unrecognized pages fall back to whole-document text.
func Normalize(rawURL, html string) Page {
	title, text := wholeDocument(html)

	if article, ok := articleText(rawURL, html); ok {
		if article.Title != "" {
			title = article.Title
		}
		text = article.Text
	}

	return Page{
		Title: title,
		Text:  capRunes(text, maxContentChars),
	}
}

// wholeDocument returns the title and collapsed text of the full document.
func wholeDocument(html string) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}
	doc.Find("script, style, noscript").Remove()
	title = collapse(doc.Find("title").First().Text())
	text = collapse(doc.Text())
	return title, text
}

// articleText attempts readability isolation of the main article. It reports
// false when isolation fails or yields too little text to trust.
func articleText(rawURL, html string) (Page, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Page{}, false
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), u)
	if err != nil {
		return Page{}, false
	}
	text := collapse(article.TextContent)
	if utf8.RuneCountInString(text) < minArticleChars {
		return Page{}, false
	}
	return Page{Title: collapse(article.Title), Text: text}, true
}

// collapse reduces all whitespace runs to single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// capRunes truncates s to at most n runes.
func capRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Insights returns sentence segments from text that match the focus area's
// keyword table. Segments come from splitting on periods; only the first
// maxSegments are considered, fragments shorter than minSegmentChars are
// skipped, and the first keyword hit claims a segment.
func Insights(text string, focus types.FocusArea) []string {
	keywords := insightKeywords[focus]
	if len(keywords) == 0 {
		return nil
	}

	segments := strings.Split(text, ".")
	if len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}

	var insights []string
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if utf8.RuneCountInString(trimmed) < minSegmentChars {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				insights = append(insights, trimmed)
				break
			}
		}
		if len(insights) >= maxInsights {
			break
		}
	}
	return insights
}
