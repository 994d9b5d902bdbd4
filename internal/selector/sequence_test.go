package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

func TestNext_SimpleSuccessor(t *testing.T) {
	got := Next(canon.Reference{Source: canon.SourceGita, Chapter: 2, Verse: 13})
	assert.Equal(t, canon.Reference{Source: canon.SourceGita, Chapter: 2, Verse: 14}, got)
}

func TestNext_ChapterRollover(t *testing.T) {
	verses, err := canon.VersesInChapter(canon.SourceGita, 3)
	require.NoError(t, err)

	got := Next(canon.Reference{Source: canon.SourceGita, Chapter: 3, Verse: verses})
	assert.Equal(t, canon.Reference{Source: canon.SourceGita, Chapter: 4, Verse: 1}, got)
}

func TestNext_ScriptureWraparound(t *testing.T) {
	lastGita := canon.Reference{
		Source:  canon.SourceGita,
		Chapter: canon.ChapterCount(canon.SourceGita),
	}
	verses, err := canon.VersesInChapter(lastGita.Source, lastGita.Chapter)
	require.NoError(t, err)
	lastGita.Verse = verses

	assert.Equal(t,
		canon.Reference{Source: canon.SourceBhagavatam, Chapter: 1, Verse: 1},
		Next(lastGita))

	lastBhag := canon.Reference{
		Source:  canon.SourceBhagavatam,
		Chapter: canon.ChapterCount(canon.SourceBhagavatam),
	}
	verses, err = canon.VersesInChapter(lastBhag.Source, lastBhag.Chapter)
	require.NoError(t, err)
	lastBhag.Verse = verses

	assert.Equal(t, canon.First(), Next(lastBhag))
}

// Walking Next from the start must visit every verse in both scriptures
// exactly once and land back where it started: the successor map is one big
// cycle, with no short loops and no unreachable verses.
func TestNext_RingTotality(t *testing.T) {
	start := canon.First()
	total := canon.TotalVerses()

	seen := make(map[canon.Reference]bool, total)
	ref := start
	for i := 0; i < total; i++ {
		require.True(t, ref.Valid(), "step %d produced invalid reference %v", i, ref)
		require.False(t, seen[ref], "reference %v visited twice (step %d)", ref, i)
		seen[ref] = true
		ref = Next(ref)
	}

	assert.Equal(t, start, ref, "ring did not close after %d steps", total)
	assert.Len(t, seen, total)
}
