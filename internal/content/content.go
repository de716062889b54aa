// Package content locates the main content area of a fetched page.
package content

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoContent is the one fatal condition of the archiver: none of the
// fallback selectors matched anything usable.
var ErrNoContent = errors.New("could not locate main content area")

// rootSelectors is the fallback chain, most specific first. The first
// entry is where rentry renders the page body; the rest cover generic
// article layouts.
var rootSelectors = []string{
	".render-metadata .entry-text article",
	"article",
	"main",
	"body",
}

// FindRoot returns the content root element of a parsed page.
func FindRoot(doc *goquery.Document) (*html.Node, error) {
	for _, sel := range rootSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s.Get(0), nil
		}
	}
	return nil, ErrNoContent
}

// Title extracts a display title: the <title> tag when present, else the
// first h1, else empty.
func Title(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
