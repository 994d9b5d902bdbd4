package canon

import "fmt"

// Verse counts per chapter, index 0 = chapter 1. Counts follow the
// Bhaktivedanta editions. The Bhagavatam table deliberately covers only the
// First Canto; completing it is a data task, none of the selection logic
// assumes anything beyond what is listed here.
var chapterVerses = map[Source][]int{
	SourceGita: {
		47, 72, 43, 42, 29, 47, 30, 28, 34, 42,
		55, 20, 35, 27, 20, 24, 28, 78,
	},
	SourceBhagavatam: {
		23, 34, 44, 33, 40, 38, 58, 52, 49, 36,
		39, 36, 60, 44, 51, 36, 45, 50, 40,
	},
}

// OutOfRangeError reports a chapter lookup outside the defined structure.
// It indicates a programming error in the caller: the sequencer only ever
// asks about chapters the index itself produced.
type OutOfRangeError struct {
	Source  Source
	Chapter int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s has no chapter %d (valid range 1..%d)",
		e.Source, e.Chapter, ChapterCount(e.Source))
}

// ChapterCount returns how many chapters the index defines for src.
func ChapterCount(src Source) int {
	return len(chapterVerses[src])
}

// VersesInChapter returns the verse count of the given chapter.
func VersesInChapter(src Source, chapter int) (int, error) {
	counts := chapterVerses[src]
	if chapter < 1 || chapter > len(counts) {
		return 0, &OutOfRangeError{Source: src, Chapter: chapter}
	}
	return counts[chapter-1], nil
}

// TotalVerses returns the number of verses across both scriptures, i.e.
// the length of the selection ring.
func TotalVerses() int {
	total := 0
	for _, counts := range chapterVerses {
		for _, n := range counts {
			total += n
		}
	}
	return total
}

// First returns the designated start of the ring, published when the
// history is empty.
func First() Reference {
	return Reference{Source: SourceGita, Chapter: 1, Verse: 1}
}
