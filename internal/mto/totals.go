package mto

import (
	"sort"

	"mtocli/internal/catalog"
	"mtocli/internal/parsing"
)

// Entry is one aggregated part total.
type Entry struct {
	Part catalog.Part
	Qty  int
}

// Totals folds resolver output across every file of a run into
// signature-keyed cumulative quantities. The first part seen for a
// signature stays the representative; later occurrences only add quantity.
type Totals struct {
	entries map[catalog.Signature]*Entry
	order   []catalog.Signature
}

func NewTotals() *Totals {
	return &Totals{entries: make(map[catalog.Signature]*Entry)}
}

// Add accumulates qty under the part's signature.
func (t *Totals) Add(p catalog.Part, qty int) {
	sig := p.Signature()
	if e, ok := t.entries[sig]; ok {
		e.Qty += qty
		return
	}
	t.entries[sig] = &Entry{Part: p, Qty: qty}
	t.order = append(t.order, sig)
}

// AddGroups folds a file's resolved groups in. Only positive quantities
// count toward the grand total; zero-quantity sheet rows (reduced-hardware
// variants, dense-table gaps) stay out.
func (t *Totals) AddGroups(groups []Group) {
	for _, g := range groups {
		for _, line := range g.Lines {
			if line.Qty > 0 {
				t.Add(line.Result.Display(), line.Qty)
			}
		}
	}
}

// Quantity returns the cumulative quantity for a signature, zero when the
// signature never occurred.
func (t *Totals) Quantity(sig catalog.Signature) int {
	if e, ok := t.entries[sig]; ok {
		return e.Qty
	}
	return 0
}

// Extras returns the aggregated entries whose signature is not accepted by
// inCatalog and whose net quantity is non-zero, sorted by (name, size,
// material). These are the catalog gaps the run surfaced.
func (t *Totals) Extras(inCatalog func(catalog.Signature) bool) []Entry {
	var out []Entry
	for _, sig := range t.order {
		e := t.entries[sig]
		if e.Qty == 0 || inCatalog(sig) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Part, out[j].Part
		an, bn := parsing.NormTextLower(a.Name), parsing.NormTextLower(b.Name)
		if an != bn {
			return an < bn
		}
		as, bs := parsing.NormTextLower(a.Size), parsing.NormTextLower(b.Size)
		if as != bs {
			return as < bs
		}
		return parsing.NormTextLower(a.Material) < parsing.NormTextLower(b.Material)
	})
	return out
}
