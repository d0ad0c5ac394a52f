package mto

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
	"mtocli/internal/parsing"
)

// type1Variant distinguishes the Type 1 configurations read from the code
// tokens: plain, "A" (alternate material elbow), "C" (reduced hardware).
type type1Variant int

const (
	variantPlain type1Variant = iota
	variantA
	variantC
)

func (v type1Variant) label() string {
	switch v {
	case variantA:
		return "1-A"
	case variantC:
		return "1-C"
	default:
		return "1"
	}
}

// alternateElbowMaterial replaces the elbow material for the "A" variant.
const alternateElbowMaterial = "ASTM A240 304/304L"

// type1Pipe maps the nominal support inch to the pipe descriptor used to
// compose pipe size strings.
var type1Pipe = map[int]struct{ inch, schedule string }{
	2:  {`1 1/2"`, "Sch.80"},
	3:  {`2"`, "Sch.40"},
	4:  {`3"`, "Sch.40"},
	6:  {`4"`, "Sch.40"},
	8:  {`6"`, "Sch.40"},
	10: {`8"`, "Sch.40"},
	12: {`8"`, "Sch.40"},
	14: {`10"`, "Sch.40"},
	16: {`10"`, "Sch.40"},
	18: {`12"`, "Sch.40"},
	20: {`12"`, "Sch.40"},
}

// type1Hardware maps the nominal support inch to the mounting plates and
// embedded bolt for the group.
var type1Hardware = map[int]struct{ smallPlate, bigPlate, bolt string }{
	2:  {"PL 150x150x9", "PL 290x290x9", "EB M16x140"},
	3:  {"PL 150x150x9", "PL 290x290x9", "EB M16x140"},
	4:  {"PL 150x150x9", "PL 290x290x9", "EB M16x140"},
	6:  {"PL 230x230x9", "PL 370x370x9", "EB M16x140"},
	8:  {"PL 230x230x9", "PL 370x370x9", "EB M16x140"},
	10: {"PL 330x330x16", "PL 490x490x16", "EB M20x170"},
	12: {"PL 330x330x16", "PL 490x490x16", "EB M20x170"},
	14: {"PL 330x330x16", "PL 490x490x16", "EB M20x170"},
	16: {"PL 330x330x16", "PL 490x490x16", "EB M20x170"},
	18: {"PL 380x380x16", "PL 560x560x16", "EB M22x180"},
	20: {"PL 380x380x16", "PL 560x560x16", "EB M22x180"},
}

var supportInchRe = regexp.MustCompile(`(?i)-(\d+)\s*B`)

// parseSupportInch reads the nominal support size from a Type 1 code such
// as "01-6B".
func parseSupportInch(code string) (int, bool) {
	m := supportInchRe.FindStringSubmatch(parsing.NormText(code))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseType1Variant reads the variant flag from the code tokens: any bare
// "A" token selects the A variant, a trailing token ending in "C" the C
// variant.
func parseType1Variant(code string) type1Variant {
	var parts []string
	for _, p := range strings.Split(parsing.NormText(code), "-") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	for _, p := range parts {
		if strings.EqualFold(p, "A") {
			return variantA
		}
	}
	if len(parts) > 0 && strings.HasSuffix(strings.ToUpper(parts[len(parts)-1]), "C") {
		return variantC
	}
	return variantPlain
}

// type1Group aggregates Type 1 supports by (nominal inch, variant), holding
// the support count and the distribution over rounded pipe lengths.
type type1Group struct {
	inch     int
	variant  type1Variant
	count    int
	lenCount map[int]int
}

type type1Resolver struct{}

func (r *type1Resolver) Resolve(t *dataprocessing.Table, cat *catalog.Catalog) ([]Group, error) {
	typeCol := t.Column("Type")
	totalCol := t.Column("1-H total", "1H total", "1-h total")
	if typeCol < 0 || totalCol < 0 {
		return nil, fmt.Errorf("type 1 file must contain columns: Type and 1-H total")
	}

	type key struct {
		inch    int
		variant type1Variant
	}
	groups := make(map[key]*type1Group)
	for i := range t.Rows {
		code := t.Cell(i, typeCol)
		if code == "" {
			continue
		}
		inch, ok := parseSupportInch(code)
		if !ok {
			continue
		}
		total, ok := parsing.Number(t.Cell(i, totalCol))
		if !ok {
			continue
		}

		k := key{inch: inch, variant: parseType1Variant(code)}
		g := groups[k]
		if g == nil {
			g = &type1Group{inch: k.inch, variant: k.variant, lenCount: make(map[int]int)}
			groups[k] = g
		}
		g.count++
		g.lenCount[parsing.RoundUpHundred(total)]++
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].inch != keys[j].inch {
			return keys[i].inch < keys[j].inch
		}
		return keys[i].variant < keys[j].variant
	})

	var out []Group
	for _, k := range keys {
		g := groups[k]
		if g.count == 0 {
			continue
		}
		out = append(out, r.resolveGroup(g, cat))
	}
	return out, nil
}

func (r *type1Resolver) resolveGroup(g *type1Group, cat *catalog.Catalog) Group {
	grp := Group{
		Label: fmt.Sprintf(`Material List [For %d" Type %s PIPE SUP'T]`, g.inch, g.variant.label()),
	}

	pipe, okPipe := type1Pipe[g.inch]
	hw, okHW := type1Hardware[g.inch]
	if !okPipe || !okHW {
		// Nominal size outside the descriptor tables: surface it as a
		// placeholder line and keep it out of the totals.
		grp.Lines = append(grp.Lines, Line{
			Result: catalog.Missing(fmt.Sprintf(`%d" (no Type 1 descriptor)`, g.inch)),
		})
		return grp
	}

	lengths := make([]int, 0, len(g.lenCount))
	for l := range g.lenCount {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		size := fmt.Sprintf("%s %s L %d", pipe.inch, pipe.schedule, l)
		grp.Lines = append(grp.Lines, Line{Result: cat.Lookup(size), Qty: g.lenCount[l]})
	}

	elbow := cat.Lookup(fmt.Sprintf(`%d" Sch.40 (Half Saddle)`, g.inch))
	if g.variant == variantA {
		elbow.Part.Material = alternateElbowMaterial
		elbow.Part.Treatment = "-"
	}
	grp.Lines = append(grp.Lines, Line{Result: elbow, Qty: g.count})

	smallQty := g.count
	boltQty := g.count * 4
	if g.variant == variantC {
		smallQty = 0
		boltQty = 0
	}
	grp.Lines = append(grp.Lines,
		Line{Result: cat.Lookup(hw.smallPlate), Qty: smallQty},
		Line{Result: cat.Lookup(hw.bigPlate), Qty: g.count},
		Line{Result: cat.Lookup(hw.bolt), Qty: boltQty},
	)
	return grp
}
