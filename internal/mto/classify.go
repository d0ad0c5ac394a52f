package mto

import (
	"regexp"
	"strings"

	"mtocli/internal/dataprocessing"
)

// FamilyKind is the support-type family a type file resolves under. Each
// kind has its own bill-of-materials derivation rules.
type FamilyKind int

const (
	FamilyStandard FamilyKind = iota
	FamilyType1
	Family66
	Family52
	Family54A
	Family54B
)

func (k FamilyKind) String() string {
	switch k {
	case FamilyType1:
		return "1"
	case Family66:
		return "66"
	case Family52:
		return "52"
	case Family54A:
		return "54A"
	case Family54B:
		return "54B"
	default:
		return "STANDARD"
	}
}

// SheetTitle is the title row for a file of this family; the standard
// family titles sheets after the input file itself.
func (k FamilyKind) SheetTitle(fileBase string) string {
	if k == FamilyStandard {
		return fileBase
	}
	return "Type " + k.String() + " PIPE SUP'T"
}

var type1CodeRe = regexp.MustCompile(`\b01-\d+\s*B`)

// standardPrefixes are type-code prefixes that carry no special rules; the
// files they appear in resolve under the standard channel family.
var standardPrefixes = []string{"23-", "30-", "31-", "32-", "33-", "35-"}

// Classify assigns a type file to a family. The checks run in fixed
// priority order: the Type 1 total-length column first, then the type-code
// prefix scan, then the channel selector columns imply the standard family.
func Classify(t *dataprocessing.Table) FamilyKind {
	if t.Column("1-H total", "1H total", "1-h total") >= 0 {
		return FamilyType1
	}

	if typeCol := t.Column("Type"); typeCol >= 0 {
		for i := range t.Rows {
			s := t.Cell(i, typeCol)
			if s == "" {
				continue
			}
			su := strings.ToUpper(s)
			switch {
			case strings.HasPrefix(su, "01-") || type1CodeRe.MatchString(su):
				return FamilyType1
			case strings.HasPrefix(su, "66-"):
				return Family66
			case strings.HasPrefix(su, "52-"):
				return Family52
			case strings.HasPrefix(su, "54A"):
				return Family54A
			case strings.HasPrefix(su, "54B"):
				return Family54B
			}
			for _, p := range standardPrefixes {
				if strings.HasPrefix(su, p) {
					return FamilyStandard
				}
			}
		}
	}
	return FamilyStandard
}
