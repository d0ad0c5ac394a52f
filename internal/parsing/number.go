package parsing

import (
	"math"
	"strconv"
	"strings"
)

// Number parses numeric text where comma and dot may each act as decimal or
// thousands separator. When both appear, the later-occurring one is the
// decimal separator and the other is stripped. A lone comma is treated as a
// decimal separator when the string has a single fraction group after it;
// otherwise every comma is stripped as a thousands separator. Blank cells
// and the "**" sentinel report ok=false.
func Number(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || s == "**" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasComma:
		if isDecimalComma(s) {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isDecimalComma reports whether s has exactly one comma followed by a pure
// digit fraction group, e.g. "0,5840" or "-3,5".
func isDecimalComma(s string) bool {
	i := strings.Index(s, ",")
	if i != strings.LastIndex(s, ",") {
		return false
	}
	frac := s[i+1:]
	if frac == "" {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RoundUpHundred rounds v up to the next multiple of 100 millimetres.
// Non-positive values round to 0.
func RoundUpHundred(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v/100.0) * 100)
}
