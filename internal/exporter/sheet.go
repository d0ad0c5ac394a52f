package exporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"mtocli/internal/catalog"
	"mtocli/internal/mto"
)

// Sheet writes one output sheet top to bottom: title, column header, then
// labelled groups of item rows.
type Sheet struct {
	b    *Builder
	name string
	row  int
}

// Name returns the final (sanitized, deduplicated) sheet name.
func (s *Sheet) Name() string {
	return s.name
}

func (s *Sheet) setColumnWidths() {
	for col, w := range columnWidths {
		_ = s.b.f.SetColWidth(s.name, col, col, w)
	}
}

func (s *Sheet) cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func (s *Sheet) mergedRow(text string, style int, height float64) error {
	f := s.b.f
	if err := f.MergeCell(s.name, s.cell("A", s.row), s.cell("M", s.row)); err != nil {
		return err
	}
	if err := f.SetCellValue(s.name, s.cell("A", s.row), text); err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, s.cell("A", s.row), s.cell("M", s.row), style); err != nil {
		return err
	}
	if err := f.SetRowHeight(s.name, s.row, height); err != nil {
		return err
	}
	s.row++
	return nil
}

// WriteTitle writes the sheet title band.
func (s *Sheet) WriteTitle(title string) error {
	return s.mergedRow(title, s.b.styles.title, 22)
}

// WriteHeader writes the 13-column schema header.
func (s *Sheet) WriteHeader() error {
	f := s.b.f
	for i, h := range columnHeaders {
		cell, err := cellName(i+1, s.row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(s.name, s.cell("A", s.row), s.cell("M", s.row), s.b.styles.header); err != nil {
		return err
	}
	if err := f.SetRowHeight(s.name, s.row, 30); err != nil {
		return err
	}
	s.row++
	return nil
}

// WriteGroup writes a group heading band.
func (s *Sheet) WriteGroup(label string) error {
	return s.mergedRow(label, s.b.styles.group, 20)
}

// SkipRow leaves one blank row.
func (s *Sheet) SkipRow() {
	s.row++
}

// WriteGroups renders resolved BOM groups with a blank separator row after
// each group.
func (s *Sheet) WriteGroups(groups []mto.Group) error {
	for _, g := range groups {
		if err := s.WriteGroup(g.Label); err != nil {
			return err
		}
		for _, line := range g.Lines {
			if err := s.WriteItem(line.Result.Display(), line.Qty); err != nil {
				return err
			}
		}
		s.SkipRow()
	}
	return nil
}

// WriteItem writes one BOM line. The total weight and surface columns carry
// formulas that multiply quantity by the unit value, showing the sentinel
// when either factor is non-numeric.
func (s *Sheet) WriteItem(p catalog.Part, qty int) error {
	f := s.b.f
	row := s.row

	values := []interface{}{
		orSentinel(p.ItemNo), orSentinel(p.Material), orSentinel(p.Name),
		orSentinel(p.Size), orSentinel(p.Treatment), orSentinel(p.Unit), qty,
	}
	for i, v := range values {
		cell, err := cellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, v); err != nil {
			return err
		}
	}

	if err := setOptionalNumber(f, s.name, s.cell("H", row), p.UnitWeight); err != nil {
		return err
	}
	if err := f.SetCellFormula(s.name, s.cell("I", row), totalWeightFormula(row)); err != nil {
		return err
	}
	if err := setOptionalNumber(f, s.name, s.cell("J", row), p.UnitSurface); err != nil {
		return err
	}
	if err := f.SetCellFormula(s.name, s.cell("K", row), totalSurfaceFormula(row)); err != nil {
		return err
	}
	if err := f.SetCellValue(s.name, s.cell("L", row), orSentinel(p.Remark)); err != nil {
		return err
	}
	if err := f.SetCellValue(s.name, s.cell("M", row), orSentinel(p.AddNotes)); err != nil {
		return err
	}

	if err := f.SetCellStyle(s.name, s.cell("A", row), s.cell("K", row), s.b.styles.item); err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, s.cell("L", row), s.cell("M", row), s.b.styles.itemLeft); err != nil {
		return err
	}
	if err := f.SetRowHeight(s.name, row, itemRowHeight(p.Remark, p.AddNotes)); err != nil {
		return err
	}

	s.row++
	return nil
}

// WriteTotalsRow closes a summary sheet with SUM formulas over the data
// range for quantity, total weight and total surface.
func (s *Sheet) WriteTotalsRow(firstData, lastData int) error {
	f := s.b.f
	row := s.row
	for i := range columnHeaders {
		cell, err := cellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, catalog.Sentinel); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(s.name, s.cell("C", row), "TOTAL"); err != nil {
		return err
	}
	for _, col := range []string{"G", "I", "K"} {
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", col, firstData, col, lastData)
		if err := f.SetCellFormula(s.name, s.cell(col, row), formula); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(s.name, s.cell("A", row), s.cell("M", row), s.b.styles.group); err != nil {
		return err
	}
	if err := f.SetRowHeight(s.name, row, 20); err != nil {
		return err
	}
	s.row++
	return nil
}

// totalWeightFormula derives total weight as qty x unit weight, with the
// sentinel when either factor is non-numeric.
func totalWeightFormula(row int) string {
	return fmt.Sprintf(`IF(OR(NOT(ISNUMBER(H%d)),NOT(ISNUMBER(G%d))),"**",H%d*G%d)`, row, row, row, row)
}

func totalSurfaceFormula(row int) string {
	return fmt.Sprintf(`IF(OR(NOT(ISNUMBER(J%d)),NOT(ISNUMBER(G%d))),"**",J%d*G%d)`, row, row, row, row)
}

func setOptionalNumber(f *excelize.File, sheet, cell string, v *float64) error {
	if v == nil {
		return f.SetCellValue(sheet, cell, catalog.Sentinel)
	}
	return f.SetCellValue(sheet, cell, *v)
}

func orSentinel(s string) string {
	if strings.TrimSpace(s) == "" {
		return catalog.Sentinel
	}
	return s
}

// itemRowHeight estimates the row height from the wrapped remark and notes
// text, capped the way the column widths allow.
func itemRowHeight(remark, notes string) float64 {
	lines := estimateLines(remark, 16)
	if n := estimateLines(notes, 34); n > lines {
		lines = n
	}
	h := 18.0 * float64(lines)
	if h > 180 {
		h = 180
	}
	if h < 18 {
		h = 18
	}
	return h
}

func estimateLines(text string, charsPerLine int) int {
	if text == "" {
		return 1
	}
	lines := 0
	for _, part := range strings.Split(text, "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			lines++
			continue
		}
		lines += int(math.Ceil(float64(len([]rune(part))) / float64(charsPerLine)))
	}
	if lines < 1 {
		return 1
	}
	return lines
}
