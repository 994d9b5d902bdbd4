// Package canon holds the structural metadata for the two scriptures the
// site publishes from: which chapters exist and how many verses each one
// has. The data is compiled in and never changes at runtime; every other
// component treats it as the single definition of which references are valid.
package canon

import "fmt"

// Source identifies which scripture a reference belongs to.
type Source int

const (
	SourceGita Source = iota
	SourceBhagavatam
)

var sourceNames = map[Source]string{
	SourceGita:       "gita",
	SourceBhagavatam: "bhagavatam",
}

func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Other returns the opposite scripture. The ring order wraps from the end
// of one source to the start of the other.
func (s Source) Other() Source {
	if s == SourceGita {
		return SourceBhagavatam
	}
	return SourceGita
}

// ParseSource is the inverse of Source.String, used when reading rows back
// from the publication store.
func ParseSource(name string) (Source, error) {
	for s, n := range sourceNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scripture source %q", name)
}

// Reference addresses one verse. It is a plain value: two references are
// the same verse iff all three fields match.
type Reference struct {
	Source  Source
	Chapter int
	Verse   int
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %d.%d", r.Source, r.Chapter, r.Verse)
}

// Valid reports whether r names a verse that exists in the index.
func (r Reference) Valid() bool {
	n, err := VersesInChapter(r.Source, r.Chapter)
	if err != nil {
		return false
	}
	return r.Verse >= 1 && r.Verse <= n
}
