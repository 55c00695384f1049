package model

import (
	"fmt"
	"regexp"
)

const (
	// PendingIDPrefix is the id convention of the upstream submission path.
	PendingIDPrefix = "pen-"
	// PublishedIDPrefix is the id convention of the public catalog.
	PublishedIDPrefix = "audio-"

	// LegacyMaxNumber is the top of the reserved legacy range: audio-0 through
	// audio-20 pre-date the moderation workflow and are never reallocated.
	LegacyMaxNumber = 20
	// ApprovedMinNumber is the first suffix the moderation workflow owns.
	ApprovedMinNumber = LegacyMaxNumber + 1
)

// publishedIDPattern matches only well-formed published ids. Anything else in
// the catalog is ignored rather than treated as an error.
var publishedIDPattern = regexp.MustCompile(`^audio-([0-9]+)$`)

// ParsePublishedNumber extracts the numeric suffix of a published id. The
// second return is false when id is not of the exact form audio-<digits>.
func ParsePublishedNumber(id string) (int, bool) {
	m := publishedIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// PublishedID renders the id for a numeric suffix.
func PublishedID(n int) string {
	return fmt.Sprintf("%s%d", PublishedIDPrefix, n)
}

// IsApprovedID reports whether id belongs to the approved view of the catalog,
// i.e. a well-formed published id outside the reserved legacy range.
func IsApprovedID(id string) bool {
	n, ok := ParsePublishedNumber(id)
	return ok && n >= ApprovedMinNumber
}
