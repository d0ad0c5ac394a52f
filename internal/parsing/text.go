package parsing

import (
	"regexp"
	"strings"
)

var wsRe = regexp.MustCompile(`\s+`)

// NormText collapses internal whitespace runs to single spaces and trims.
func NormText(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// NormTextLower is NormText followed by lowercasing. Normalized-lowercase
// strings are the comparison form used throughout catalog matching.
func NormTextLower(s string) string {
	return strings.ToLower(NormText(s))
}

// yesValues are the affirmative spellings accepted in channel selector
// columns. The CJK entries appear in real type files.
var yesValues = map[string]bool{
	"yes":  true,
	"y":    true,
	"true": true,
	"1":    true,
	"是":    true,
	"有":    true,
	"v":    true,
}

// ParseYes reports whether a cell value marks a selector column as set.
func ParseYes(s string) bool {
	return yesValues[NormTextLower(s)]
}
