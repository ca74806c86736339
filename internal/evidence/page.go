package evidence

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplateSelectors are stripped from pages before text extraction.
var boilerplateSelectors = "script, style, nav, header, footer, aside, noscript, iframe, form"

// contentSelectors are tried in order to locate the main content region.
// Whole-page body text is the fallback.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	"div[class*=content]",
	"div[id*=content]",
}

// ExtractReadableText parses HTML from r, strips boilerplate markup, locates
// the main content region, collapses whitespace and truncates the result to
// maxChars characters.
func ExtractReadableText(r io.Reader, maxChars int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find(boilerplateSelectors).Remove()

	var text string
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if t := strings.TrimSpace(s.Text()); t != "" {
				text = t
				break
			}
		}
	}
	if text == "" {
		text = doc.Find("body").Text()
	}

	// Collapse runs of whitespace into single spaces
	text = strings.Join(strings.Fields(text), " ")

	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}

	return text, nil
}
