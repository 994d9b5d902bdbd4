package devotional

import (
	"errors"
	"fmt"
	"strings"
)

// Shape rules for a publishable draft. The word bounds are looser than what
// the prompt asks for so a slightly over- or under-written draft is not
// thrown away for nothing.
const (
	minTitleLen  = 8
	maxTitleLen  = 90
	minBodyWords = 120
	maxBodyWords = 600
)

// Validate checks a draft against the shape rules. It says nothing about
// the quality of the writing, only that the fields are present and sized
// for the page template.
func Validate(d Draft) error {
	var errs []error

	switch n := len([]rune(d.Title)); {
	case n == 0:
		errs = append(errs, errors.New("title is empty"))
	case n < minTitleLen:
		errs = append(errs, fmt.Errorf("title too short: %d runes, want at least %d", n, minTitleLen))
	case n > maxTitleLen:
		errs = append(errs, fmt.Errorf("title too long: %d runes, want at most %d", n, maxTitleLen))
	}

	switch words := len(strings.Fields(d.Body)); {
	case words == 0:
		errs = append(errs, errors.New("body is empty"))
	case words < minBodyWords:
		errs = append(errs, fmt.Errorf("body too short: %d words, want at least %d", words, minBodyWords))
	case words > maxBodyWords:
		errs = append(errs, fmt.Errorf("body too long: %d words, want at most %d", words, maxBodyWords))
	}

	return errors.Join(errs...)
}
