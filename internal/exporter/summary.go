package exporter

import (
	"fmt"

	"mtocli/internal/catalog"
	"mtocli/internal/mto"
)

// WriteSummary turns the scratch sheet into the grand-total sheet: every
// master record in catalog order with its run-wide quantity, then the parts
// the run produced that the master does not carry, then a totals row. The
// scratch sheet already sits at workbook position 0, so the summary stays
// first without reordering.
func (b *Builder) WriteSummary(cat *catalog.Catalog, totals *mto.Totals) error {
	name := b.reserveName(SummarySheetName)
	if err := b.f.SetSheetName(b.scratch, name); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	b.scratch = name

	s := &Sheet{b: b, name: name, row: 1}
	s.setColumnWidths()
	if err := s.WriteTitle(SummarySheetName); err != nil {
		return err
	}
	if err := s.WriteHeader(); err != nil {
		return err
	}

	known := make(map[catalog.Signature]bool, len(cat.Records))
	firstData := s.row
	for _, p := range cat.Records {
		sig := p.Signature()
		known[sig] = true
		if err := s.WriteItem(p, totals.Quantity(sig)); err != nil {
			return err
		}
	}

	extras := totals.Extras(func(sig catalog.Signature) bool { return known[sig] })
	if len(extras) > 0 {
		s.SkipRow()
		if err := s.WriteGroup("EXTRA (Not in Master)"); err != nil {
			return err
		}
		for _, e := range extras {
			if err := s.WriteItem(e.Part, e.Qty); err != nil {
				return err
			}
		}
		s.SkipRow()
	}

	return s.WriteTotalsRow(firstData, s.row-1)
}
