// Package slug derives URL path tokens for published posts.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

const maxBaseLen = 80

// Make lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > maxBaseLen {
		s = strings.Trim(s[:maxBaseLen], "-")
	}
	if s == "" {
		s = "untitled"
	}
	return s
}

// Unique returns the first of base, base-2, base-3, ... that exists reports
// false for.
func Unique(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
