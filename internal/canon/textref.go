package canon

import (
	"fmt"
	"strconv"
	"strings"
)

// TextRef is the dot-separated reference encoding stored with each post,
// e.g. "2.13". The first component is always the chapter and the last is
// always the verse; older rows may carry extra middle components (a canto
// qualifier) which are kept for round-tripping but otherwise ignored.
type TextRef struct {
	Chapter int
	Middle  []int
	Verse   int
}

// ParseTextRef parses the stored encoding. At least two dot-separated
// positive integers are required.
func ParseTextRef(s string) (TextRef, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return TextRef{}, fmt.Errorf("reference text %q: want at least chapter.verse", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return TextRef{}, fmt.Errorf("reference text %q: bad component %q", s, p)
		}
		nums[i] = n
	}
	return TextRef{
		Chapter: nums[0],
		Middle:  nums[1 : len(nums)-1],
		Verse:   nums[len(nums)-1],
	}, nil
}

func (t TextRef) String() string {
	parts := make([]string, 0, len(t.Middle)+2)
	parts = append(parts, strconv.Itoa(t.Chapter))
	for _, m := range t.Middle {
		parts = append(parts, strconv.Itoa(m))
	}
	parts = append(parts, strconv.Itoa(t.Verse))
	return strings.Join(parts, ".")
}

// RefText returns the encoding written for new posts: plain chapter.verse.
func (r Reference) RefText() string {
	return TextRef{Chapter: r.Chapter, Verse: r.Verse}.String()
}
