// Package extract parses a scripture HTML export into verse texts suitable
// for seeding the store. The expected markup is the site's own export
// format: one div.verse per verse, holding a .ref element with the
// dot-separated reference and a .translation element with the prose text.
package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

type Verse struct {
	Ref  canon.TextRef
	Body string
}

var reSpace = regexp.MustCompile(`\s+`)
var rePunctGap = regexp.MustCompile(`\s+([,.;:!?])`)

// Verses parses the export. Verse blocks with a missing or malformed
// reference, or an empty translation, are skipped; a count of skipped
// blocks comes back so the caller can report it.
func Verses(r io.Reader) (verses []Verse, skipped int, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing export: %w", err)
	}

	doc.Find("div.verse").Each(func(_ int, sel *goquery.Selection) {
		refText := strings.TrimSpace(sel.Find(".ref").First().Text())
		body := cleanText(sel.Find(".translation").First().Text())
		if refText == "" || body == "" {
			skipped++
			return
		}
		tr, err := canon.ParseTextRef(refText)
		if err != nil {
			skipped++
			return
		}
		verses = append(verses, Verse{Ref: tr, Body: body})
	})
	return verses, skipped, nil
}

// cleanText collapses whitespace runs and closes the gaps OCR and careless
// markup leave before punctuation.
func cleanText(s string) string {
	s = reSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	return rePunctGap.ReplaceAllString(s, "$1")
}
