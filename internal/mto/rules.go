package mto

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"mtocli/internal/catalog"
	"mtocli/internal/parsing"
)

// Catalog matching rules for the special families. Every rule resolves to
// exactly one result: a miss yields a placeholder carrying a descriptive
// size so the gap stays visible through the sheets and the grand total.

func findFirst(cat *catalog.Catalog, pred func(catalog.Part) bool) (catalog.Part, bool) {
	for _, p := range cat.Records {
		if pred(p) {
			return p, true
		}
	}
	return catalog.Part{}, false
}

func nameIs(p catalog.Part, name string) bool {
	return strings.ToLower(p.Name) == name
}

func pickPaddingPlate(cat *catalog.Catalog, tok string) catalog.Result {
	p, ok := findFirst(cat, func(p catalog.Part) bool {
		return nameIs(p, "plate") &&
			strings.Contains(p.NotesLower, "type 52&66") &&
			strings.Contains(p.NotesLower, "padding") &&
			parsing.ContainsInch(p.NotesLower, tok)
	})
	if !ok {
		return catalog.Missing(fmt.Sprintf(`Padding plate %s"`, tok))
	}
	return catalog.Found(p)
}

func pickReinforcementPlate(cat *catalog.Catalog, tok string) catalog.Result {
	p, ok := findFirst(cat, func(p catalog.Part) bool {
		return nameIs(p, "plate") &&
			strings.Contains(p.NotesLower, "reinforcement plate") &&
			parsing.ContainsInch(p.NotesLower, tok)
	})
	if !ok {
		return catalog.Missing(fmt.Sprintf(`Reinforcement plate %s"`, tok))
	}
	return catalog.Found(p)
}

func pickSmallReinforcementPlate(cat *catalog.Catalog) catalog.Result {
	p, ok := findFirst(cat, func(p catalog.Part) bool {
		return nameIs(p, "plate") &&
			strings.Contains(p.NotesLower, "small reinforcement plate")
	})
	if !ok {
		return catalog.Missing("Small reinforcement plate")
	}
	return catalog.Found(p)
}

// pickPipeShoePlates returns every pipe-shoe plate whose declared inch range
// contains the value, or a single placeholder when none does.
func pickPipeShoePlates(cat *catalog.Catalog, inch float64) []catalog.Result {
	var out []catalog.Result
	for _, p := range cat.Records {
		if !nameIs(p, "plate") ||
			!strings.Contains(p.NotesLower, "pipe shoe material") ||
			!strings.Contains(p.NotesLower, "type 52&66") {
			continue
		}
		if lo, hi, ok := parsing.InchRangeFromNote(p.NotesLower); ok && lo <= inch && inch <= hi {
			out = append(out, catalog.Found(p))
		}
	}
	if out == nil {
		out = append(out, catalog.Missing(fmt.Sprintf(`Pipe shoe plate %s"`, formatInch(inch))))
	}
	return out
}

// pickHChannel matches the H channel whose declared range contains the inch
// value; the narrowest range wins a tie.
func pickHChannel(cat *catalog.Catalog, inch float64, tok string) catalog.Result {
	var best catalog.Part
	bestSpan := math.Inf(1)
	found := false
	for _, p := range cat.Records {
		if !nameIs(p, "h channel") {
			continue
		}
		lo, hi, ok := parsing.InchRangeFromNote(p.NotesLower)
		if !ok || inch < lo || inch > hi {
			continue
		}
		if span := hi - lo; span < bestSpan {
			best = p
			bestSpan = span
			found = true
		}
	}
	if !found {
		return catalog.Missing(fmt.Sprintf(`H channel %s"`, tok))
	}
	return catalog.Found(best)
}

// pickFormingAngle resolves the forming angle by its exact composed size.
func pickFormingAngle(cat *catalog.Catalog, lengthMM int) catalog.Result {
	return cat.Lookup(fmt.Sprintf("L 40x40x5x%d", lengthMM))
}

func pickPipeClamp(cat *catalog.Catalog, tok string) catalog.Result {
	p, ok := findFirst(cat, func(p catalog.Part) bool {
		return nameIs(p, "pipe clamp") &&
			strings.Contains(p.NotesLower, "type 54a,54b") &&
			parsing.ContainsInch(p.NotesLower, tok)
	})
	if !ok {
		return catalog.Missing(fmt.Sprintf(`Pipe clamp %s"`, tok))
	}
	return catalog.Found(p)
}

func pickGasket(cat *catalog.Catalog, tok string) catalog.Result {
	p, ok := findFirst(cat, func(p catalog.Part) bool {
		return nameIs(p, "non-asbestos compressed gasket") &&
			strings.Contains(p.NotesLower, "type 54a,54b") &&
			parsing.ContainsInch(p.NotesLower, tok)
	})
	if !ok {
		return catalog.Missing(fmt.Sprintf(`Gasket %s"`, tok))
	}
	return catalog.Found(p)
}

// pickHexBoltSet prefers an exact-token match over a containing range when
// both exist; among ranges the narrowest wins.
func pickHexBoltSet(cat *catalog.Catalog, inch float64, tok string) catalog.Result {
	type candidate struct {
		span float64
		part catalog.Part
	}
	var candidates []candidate
	for _, p := range cat.Records {
		if !nameIs(p, "hex bolt set") {
			continue
		}
		if lo, hi, ok := parsing.InchRangeFromNote(p.NotesLower); ok {
			if lo <= inch && inch <= hi {
				candidates = append(candidates, candidate{span: hi - lo, part: p})
			}
			continue
		}
		if mentions := parsing.InchMentions(p.NotesLower); len(mentions) > 0 {
			exact := parsing.InchValue(mentions[0])
			if !math.IsNaN(exact) && math.Abs(exact-inch) < 1e-9 {
				candidates = append(candidates, candidate{span: 0, part: p})
			}
		}
	}
	if len(candidates) == 0 {
		return catalog.Missing(fmt.Sprintf(`Hex bolt set %s"`, tok))
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].span < candidates[j].span })
	return catalog.Found(candidates[0].part)
}

// formatInch renders an inch value for placeholder display sizes.
func formatInch(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
