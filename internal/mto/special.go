package mto

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
	"mtocli/internal/parsing"
)

// defaultALengthMM applies when a 52/54A code carries no embedded length
// annotation.
const defaultALengthMM = 150

// specialResolver implements families 66, 52, 54A and 54B. They share the
// inch-token grouping and size banding; the per-family differences are the
// base parts and which reinforcement plates each band pulls in.
type specialResolver struct {
	kind  FamilyKind
	label string
}

func (r *specialResolver) prefix() string {
	switch r.kind {
	case Family66:
		return "66-"
	case Family52:
		return "52-"
	case Family54A:
		return "54A"
	default:
		return "54B"
	}
}

func (r *specialResolver) Resolve(t *dataprocessing.Table, cat *catalog.Catalog) ([]Group, error) {
	typeCol := t.Column("Type")
	if typeCol < 0 {
		return nil, fmt.Errorf("no Type column found for family %s rules", r.kind)
	}

	// Group codes by inch token text: distinct spellings of an equal value
	// stay distinct groups.
	groups := make(map[string][]string)
	prefix := r.prefix()
	for i := range t.Rows {
		code := t.Cell(i, typeCol)
		if code == "" || !strings.HasPrefix(strings.ToUpper(code), prefix) {
			continue
		}
		if tok, _ := parsing.InchToken(code); tok != "" {
			groups[tok] = append(groups[tok], code)
		}
	}

	tokens := make([]string, 0, len(groups))
	for tok := range groups {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		a, b := parsing.InchValue(tokens[i]), parsing.InchValue(tokens[j])
		switch {
		case math.IsNaN(a) && math.IsNaN(b):
			return tokens[i] < tokens[j]
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case a != b:
			return a < b
		default:
			return tokens[i] < tokens[j]
		}
	})

	var out []Group
	for _, tok := range tokens {
		out = append(out, r.resolveGroup(tok, groups[tok], cat))
	}
	return out, nil
}

func (r *specialResolver) resolveGroup(tok string, codes []string, cat *catalog.Catalog) Group {
	n := len(codes)
	inch := parsing.InchValue(tok)
	band := parsing.BandOf(inch)
	b := newBucket()

	// Forming angles: one per distinct embedded length annotation, at twice
	// the count of that length. Families 52 and 54A only.
	if r.kind == Family52 || r.kind == Family54A {
		aCounts := make(map[int]int)
		for _, code := range codes {
			length, ok := parsing.ALengthMM(code)
			if !ok {
				length = defaultALengthMM
			}
			aCounts[length]++
		}
		lengths := make([]int, 0, len(aCounts))
		for l := range aCounts {
			lengths = append(lengths, l)
		}
		sort.Ints(lengths)
		for _, l := range lengths {
			b.add(pickFormingAngle(cat, l), aCounts[l]*2)
		}
	}

	switch r.kind {
	case Family66, Family52:
		b.add(pickPaddingPlate(cat, tok), n)
	case Family54A, Family54B:
		b.add(pickPipeClamp(cat, tok), n*4)
		b.add(pickGasket(cat, tok), n*2)
		b.add(pickHexBoltSet(cat, inch, tok), n*4)
	}

	if band == parsing.BandLT10 || band == parsing.BandMid {
		b.add(pickHChannel(cat, inch, tok), (n+1)/2)
	}

	if band == parsing.BandMid {
		switch r.kind {
		case Family66, Family54B:
			b.add(pickReinforcementPlate(cat, tok), n*4)
		case Family52, Family54A:
			// Only these two carry the small reinforcement plate in the
			// MID band; in HIGH every family does.
			b.add(pickSmallReinforcementPlate(cat), n*4)
			b.add(pickReinforcementPlate(cat, tok), n*4)
		}
	}

	if band == parsing.BandHigh {
		for _, shoe := range pickPipeShoePlates(cat, inch) {
			b.add(shoe, n)
		}
		if r.kind != Family66 {
			b.add(pickSmallReinforcementPlate(cat), n*4)
		}
		b.add(pickReinforcementPlate(cat, tok), n*4)
	}

	return Group{
		Label: fmt.Sprintf(`Material List [ For %s" %s ]`, tok, r.label),
		Lines: b.lines(),
	}
}

// bucket accumulates quantities per normalized size, the way a group's BOM
// merges repeated needs for the same part.
type bucket struct {
	entries map[string]*Line
	order   []string
}

func newBucket() *bucket {
	return &bucket{entries: make(map[string]*Line)}
}

func (b *bucket) add(res catalog.Result, qty int) {
	key := parsing.NormTextLower(res.Size)
	if e, ok := b.entries[key]; ok {
		e.Qty += qty
		return
	}
	b.entries[key] = &Line{Result: res, Qty: qty}
	b.order = append(b.order, key)
}

// lines returns the bucket contents sorted by numeric item number, parts
// without one last, size breaking ties.
func (b *bucket) lines() []Line {
	out := make([]Line, 0, len(b.entries))
	for _, key := range b.order {
		out = append(out, *b.entries[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, oki := itemNoKey(out[i].Result.Display())
		nj, okj := itemNoKey(out[j].Result.Display())
		if oki != okj {
			return oki
		}
		if oki && ni != nj {
			return ni < nj
		}
		return out[i].Result.Display().Size < out[j].Result.Display().Size
	})
	return out
}

func itemNoKey(p catalog.Part) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.ItemNo))
	if err != nil {
		return 0, false
	}
	return n, true
}
