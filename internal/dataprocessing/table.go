package dataprocessing

import (
	"regexp"
	"strings"

	"mtocli/internal/parsing"
)

// Table is an ordered grid of named columns produced from a type file after
// header auto-detection. Rows are ragged-safe: Cell returns "" past the end.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed-normalized value at (row, col), or "" when the
// coordinates fall outside the grid.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return parsing.NormText(t.Rows[row][col])
}

// Column locates a column by candidate names: exact normalized-lowercase
// match first across all candidates, then substring containment. Returns -1
// when nothing matches.
func (t *Table) Column(candidates ...string) int {
	lower := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		lower[i] = parsing.NormTextLower(h)
	}

	for _, cand := range candidates {
		key := parsing.NormTextLower(cand)
		for i, h := range lower {
			if h == key {
				return i
			}
		}
	}
	for _, cand := range candidates {
		key := parsing.NormTextLower(cand)
		for i, h := range lower {
			if key != "" && strings.Contains(h, key) {
				return i
			}
		}
	}
	return -1
}

// dashRepl folds the unicode dash variants seen in exported headers to the
// ASCII hyphen before -H/-L suffix matching.
var dashRepl = strings.NewReplacer("–", "-", "—", "-", "‑", "-", "−", "-")

var (
	hSuffixRe = regexp.MustCompile(`-\s*h\b`)
	lSuffixRe = regexp.MustCompile(`-\s*l\b`)
)

// DimensionColumns finds the height (-H) and width/length (-L) columns by
// their dash suffixes, falling back to plain Height/Length names.
func (t *Table) DimensionColumns() (hCol, lCol int) {
	hCol, lCol = -1, -1
	for i, h := range t.Headers {
		lc := dashRepl.Replace(parsing.NormTextLower(h))
		if hCol < 0 && (hSuffixRe.MatchString(lc) || strings.HasSuffix(lc, "-h")) {
			hCol = i
		}
		if lCol < 0 && (lSuffixRe.MatchString(lc) || strings.HasSuffix(lc, "-l")) {
			lCol = i
		}
	}
	if hCol < 0 {
		hCol = t.Column("H", "Height")
	}
	if lCol < 0 {
		lCol = t.Column("L", "Width", "Length")
	}
	return hCol, lCol
}
