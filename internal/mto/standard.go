package mto

import (
	"fmt"

	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
	"mtocli/internal/parsing"
)

// channelSpec maps a selector-column code to its cataloged cross-section,
// in selection priority order: the first affirmatively-set selector wins
// the row.
var channelSpec = []struct {
	code string
	spec string
}{
	{"L50", "L 50x50x6"},
	{"L65", "L 65x65x6"},
	{"L75", "L 75x75x9"},
	{"C125", "C 125x65x6"},
	{"C150", "C 150x75x9"},
}

// standardResolver handles the standard channel family: each row picks one
// channel code and contributes its two rounded dimensions as independent
// length occurrences of that code.
type standardResolver struct {
	label string
}

func (r *standardResolver) Resolve(t *dataprocessing.Table, cat *catalog.Catalog) ([]Group, error) {
	hCol, lCol := t.DimensionColumns()
	if hCol < 0 || lCol < 0 {
		return nil, fmt.Errorf("could not find -H and -L columns in this file (after header auto-detection)")
	}

	codeCols := make(map[string]int, len(channelSpec))
	for _, cs := range channelSpec {
		codeCols[cs.code] = t.Column(cs.code)
	}

	counts := make(map[string]map[int]int)
	for i := range t.Rows {
		code := ""
		for _, cs := range channelSpec {
			col := codeCols[cs.code]
			if col >= 0 && parsing.ParseYes(t.Cell(i, col)) {
				code = cs.code
				break
			}
		}
		if code == "" {
			continue
		}

		h := roundDimension(t.Cell(i, hCol))
		l := roundDimension(t.Cell(i, lCol))
		if counts[code] == nil {
			counts[code] = make(map[int]int)
		}
		// One row can feed two different length buckets of the same code.
		if h > 0 {
			counts[code][h]++
		}
		if l > 0 {
			counts[code][l]++
		}
	}

	var out []Group
	for _, cs := range channelSpec {
		lengths := counts[cs.code]
		if len(lengths) == 0 {
			continue
		}
		maxLen := 0
		for l := range lengths {
			if l > maxLen {
				maxLen = l
			}
		}

		grp := Group{Label: fmt.Sprintf("Material List [ For %s %s ]", cs.code, r.label)}
		// Dense table: every multiple of 100 up to the observed maximum,
		// zero-occurrence lengths included.
		for length := 100; length <= maxLen; length += 100 {
			size := fmt.Sprintf("%sx%d", cs.spec, length)
			grp.Lines = append(grp.Lines, Line{Result: cat.Lookup(size), Qty: lengths[length]})
		}
		out = append(out, grp)
	}
	return out, nil
}

func roundDimension(cell string) int {
	v, ok := parsing.Number(cell)
	if !ok {
		return 0
	}
	return parsing.RoundUpHundred(v)
}
