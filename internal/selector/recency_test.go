package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

func TestWasPublishedRecently(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	candidate := canon.Reference{Source: canon.SourceGita, Chapter: 2, Verse: 13}

	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	tests := []struct {
		name    string
		history []Publication
		want    bool
	}{
		{"empty history", nil, false},
		{
			"match inside window",
			[]Publication{{canon.SourceGita, "2.13", daysAgo(100)}},
			true,
		},
		{
			"match exactly at window boundary still counts",
			[]Publication{{canon.SourceGita, "2.13", daysAgo(RecencyWindowDays)}},
			true,
		},
		{
			"match older than window does not block",
			[]Publication{{canon.SourceGita, "2.13", daysAgo(400)}},
			false,
		},
		{
			"same chapter and verse in the other scripture",
			[]Publication{{canon.SourceBhagavatam, "2.13", daysAgo(10)}},
			false,
		},
		{
			"different verse",
			[]Publication{{canon.SourceGita, "2.14", daysAgo(10)}},
			false,
		},
		{
			"canto-qualified row matches on chapter and verse",
			[]Publication{{canon.SourceGita, "2.1.13", daysAgo(10)}},
			true,
		},
		{
			"unparseable row is ignored",
			[]Publication{{canon.SourceGita, "chapter two", daysAgo(10)}},
			false,
		},
		{
			"one recent match among stale rows",
			[]Publication{
				{canon.SourceGita, "2.13", daysAgo(900)},
				{canon.SourceGita, "7.1", daysAgo(5)},
				{canon.SourceGita, "2.13", daysAgo(42)},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wasPublishedRecently(candidate, RecencyWindowDays, tt.history, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
