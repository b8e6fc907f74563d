// Package fpl encodes waypoint and route data as Garmin Flight Plan (FPL)
// XML documents.
//
// FPL is the strictest supported output format: documents are governed by an
// external XSD and every scalar field has its own character-set and length
// policy. Values are sanitized on assignment, length limits are checked on
// the raw input before sanitization, and finished documents are checked
// against the schema by an external validation oracle.
package fpl

import "regexp"

var (
	nonAlnumSpace = regexp.MustCompile(`[^A-Z0-9 ]+`)
	nonAlnum      = regexp.MustCompile(`[^A-Z0-9]+`)
)

// AlnumSpace strips every character that is not A-Z, 0-9 or a space.
// Invalid characters are dropped, not replaced and not case-folded:
// lowercase letters are invalid too, so "FOO-bar-ABC" becomes "FOOABC".
// Previously distinct values can collapse. This lossy behaviour matches
// what Garmin devices accept and is intentional. The function is total
// and idempotent.
func AlnumSpace(s string) string {
	return nonAlnumSpace.ReplaceAllString(s, "")
}

// Alnum is AlnumSpace with spaces dropped as well.
func Alnum(s string) string {
	return nonAlnum.ReplaceAllString(s, "")
}
