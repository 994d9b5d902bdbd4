package selector

import (
	"time"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

// RecencyWindowDays is how long a reference stays ineligible after being
// published.
const RecencyWindowDays = 365

// Publication is one row of publication history as the filter sees it: the
// scripture, the stored reference text, and when the post was created.
type Publication struct {
	Source    canon.Source
	RefText   string
	CreatedAt time.Time
}

// wasPublishedRecently reports whether candidate appears in history within
// the trailing window of days before now. A record exactly days old still
// counts: the cutoff is "not older than", inclusive. Rows whose reference
// text fails to parse are ignored rather than treated as matches.
func wasPublishedRecently(candidate canon.Reference, days int, history []Publication, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -days)
	for _, pub := range history {
		if pub.Source != candidate.Source {
			continue
		}
		if pub.CreatedAt.Before(cutoff) {
			continue
		}
		tr, err := canon.ParseTextRef(pub.RefText)
		if err != nil {
			continue
		}
		if tr.Chapter == candidate.Chapter && tr.Verse == candidate.Verse {
			return true
		}
	}
	return false
}
