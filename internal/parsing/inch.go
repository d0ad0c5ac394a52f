package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Band is the coarse inch-size bucket that gates which auxiliary parts a
// support family pulls in.
type Band int

const (
	BandUnknown Band = iota
	BandLT10         // below 10"
	BandMid          // 10" through 14"
	BandHigh         // 16" and above
)

func (b Band) String() string {
	switch b {
	case BandLT10:
		return "LT10"
	case BandMid:
		return "10_14"
	case BandHigh:
		return "GE16"
	default:
		return "UNKNOWN"
	}
}

// BandOf buckets a nominal inch value. NaN maps to BandUnknown.
func BandOf(inch float64) Band {
	switch {
	case math.IsNaN(inch):
		return BandUnknown
	case inch < 10:
		return BandLT10
	case inch <= 14:
		return BandMid
	default:
		return BandHigh
	}
}

// inchTokenRe captures the size text between the final hyphen and the
// trailing direction marker "B", excluding parenthetical annotations.
var inchTokenRe = regexp.MustCompile(`(?i)-\s*([^-\(\)]+?)\s*B\b`)

// InchToken extracts the inch-size token from a type code, returning the
// token text and its numeric value. The token text is the grouping key for
// the special families; distinct spellings of an equal value stay distinct.
// A code with no token yields ("", NaN).
func InchToken(typeCode string) (string, float64) {
	m := inchTokenRe.FindStringSubmatch(NormText(typeCode))
	if m == nil {
		return "", math.NaN()
	}
	tok := NormText(m[1])
	return tok, InchValue(tok)
}

// InchValue evaluates a possibly-fractional inch expression such as
// `1 1/2`: whole and fraction parts sum. An empty token yields NaN;
// unparseable parts are skipped.
func InchValue(token string) float64 {
	token = NormText(token)
	if token == "" {
		return math.NaN()
	}
	total := 0.0
	for _, part := range strings.Fields(token) {
		if num, den, ok := strings.Cut(part, "/"); ok {
			a, errA := strconv.ParseFloat(num, 64)
			b, errB := strconv.ParseFloat(den, 64)
			if errA == nil && errB == nil && b != 0 {
				total += a / b
			}
			continue
		}
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			total += v
		}
	}
	return total
}

// ContainsInch reports whether a lowercased catalog note mentions the inch
// token: the whitespace-normalized token must appear immediately followed by
// an inch mark and must not be preceded by a digit, so `1"` never matches
// inside `21"`.
func ContainsInch(noteLower, token string) bool {
	if noteLower == "" || noteLower == "**" {
		return false
	}
	tok := NormTextLower(token)
	if tok == "" {
		return false
	}
	tokRe := strings.ReplaceAll(regexp.QuoteMeta(tok), " ", `\s+`)
	re, err := regexp.Compile(`(?i)(^|[^0-9])` + tokRe + `\s*["″”]`)
	if err != nil {
		return false
	}
	return re.MatchString(noteLower)
}

var (
	inchExpr      = `([0-9]+(?:\s+[0-9]+/[0-9]+|/[0-9]+)?)\s*["″”]`
	openRangeRe   = regexp.MustCompile(`<\s*` + inchExpr)
	inchMentionRe = regexp.MustCompile(inchExpr)
)

// InchRangeFromNote parses the inch range a catalog note declares.
// `< X″` yields the open range (-inf, X]; two separate inch mentions yield
// the closed range [min, max]. Notes with neither shape report ok=false.
func InchRangeFromNote(noteLower string) (lo, hi float64, ok bool) {
	if noteLower == "" {
		return 0, 0, false
	}
	if m := openRangeRe.FindStringSubmatch(noteLower); m != nil {
		return -1e9, InchValue(m[1]), true
	}
	mentions := inchMentionRe.FindAllStringSubmatch(noteLower, -1)
	if len(mentions) >= 2 {
		a := InchValue(mentions[0][1])
		b := InchValue(mentions[1][1])
		if !math.IsNaN(a) && !math.IsNaN(b) {
			return math.Min(a, b), math.Max(a, b), true
		}
	}
	return 0, 0, false
}

// InchMentions returns every inch expression mentioned in a note, in order.
// Used for exact-size bolt-set matching when the note declares no range.
func InchMentions(noteLower string) []string {
	var out []string
	for _, m := range inchMentionRe.FindAllStringSubmatch(noteLower, -1) {
		out = append(out, m[1])
	}
	return out
}

var aLengthRe = regexp.MustCompile(`(?i)\(\s*A\s*([0-9]+)\s*\)`)

// ALengthMM extracts the embedded length annotation `(A150)` from a type
// code, in millimetres.
func ALengthMM(typeCode string) (int, bool) {
	m := aLengthRe.FindStringSubmatch(typeCode)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
