// Package selector decides which scripture reference is published next.
// References advance in canonical order through both scriptures — verse by
// verse, chapter by chapter, wrapping from the end of one scripture to the
// start of the other — while skipping anything published inside the trailing
// recency window.
package selector

import "github.com/sadhuseva/gitaverse/internal/canon"

// Next returns the successor of ref in ring order. Every valid reference has
// exactly one successor and the walk forms a single cycle over both
// scriptures: following Next from any reference visits every verse once
// before returning to it.
func Next(ref canon.Reference) canon.Reference {
	// The index only fails for chapters it never produced; ref comes from
	// the index (or was validated), so lookups here cannot fail.
	verses, err := canon.VersesInChapter(ref.Source, ref.Chapter)
	if err != nil {
		panic(err)
	}
	if ref.Verse < verses {
		return canon.Reference{Source: ref.Source, Chapter: ref.Chapter, Verse: ref.Verse + 1}
	}
	if ref.Chapter < canon.ChapterCount(ref.Source) {
		return canon.Reference{Source: ref.Source, Chapter: ref.Chapter + 1, Verse: 1}
	}
	return canon.Reference{Source: ref.Source.Other(), Chapter: 1, Verse: 1}
}
