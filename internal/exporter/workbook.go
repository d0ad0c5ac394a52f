package exporter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SummarySheetName is the fixed grand-total sheet name, suffixed with _n
// when an input sheet already took it.
const SummarySheetName = "總表"

// columnHeaders is the 13-column output schema shared by every sheet.
var columnHeaders = []string{
	"ITEM NO.", "MATERIAL", "NAME", "SIZE", "TREATMENT", "UNIT", "Q'TY",
	"UNIT WEIGHT (KG/PCS)", "TOTAL WEIGHT (KG)",
	"UNIT SURFACE AREA (M2)", "TOTAL SURFACE (M2)",
	"REMARK", "ADD. NOTES",
}

var columnWidths = map[string]float64{
	"A": 10, "B": 14, "C": 26, "D": 28, "E": 22, "F": 10, "G": 10,
	"H": 18, "I": 16, "J": 20, "K": 18, "L": 18, "M": 46,
}

type styleSet struct {
	title    int
	header   int
	group    int
	item     int
	itemLeft int
}

// Builder assembles the output workbook: one sheet per processed input plus
// the grand-total sheet on the workbook's first position.
type Builder struct {
	f       *excelize.File
	styles  styleSet
	names   map[string]bool
	scratch string
}

// NewBuilder creates an empty output workbook with the shared styles
// registered. The default sheet is kept as scratch and becomes the summary
// sheet when the run finishes.
func NewBuilder() (*Builder, error) {
	f := excelize.NewFile()
	b := &Builder{
		f:       f,
		names:   make(map[string]bool),
		scratch: f.GetSheetList()[0],
	}
	b.names[strings.ToLower(b.scratch)] = true
	if err := b.initStyles(); err != nil {
		f.Close()
		return nil, err
	}
	return b, nil
}

func (b *Builder) initStyles() error {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	centerWrap := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	centerTopWrap := &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true}
	leftTopWrap := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}

	var err error
	if b.styles.title, err = b.f.NewStyle(&excelize.Style{
		Border: borders, Fill: fill("D9D9D9"),
		Font: &excelize.Font{Bold: true, Size: 12}, Alignment: centerWrap,
	}); err != nil {
		return fmt.Errorf("failed to register title style: %w", err)
	}
	if b.styles.header, err = b.f.NewStyle(&excelize.Style{
		Border: borders, Fill: fill("E7E6E6"),
		Font: &excelize.Font{Bold: true}, Alignment: centerWrap,
	}); err != nil {
		return fmt.Errorf("failed to register header style: %w", err)
	}
	if b.styles.group, err = b.f.NewStyle(&excelize.Style{
		Border: borders, Fill: fill("BFBFBF"),
		Font: &excelize.Font{Bold: true}, Alignment: centerWrap,
	}); err != nil {
		return fmt.Errorf("failed to register group style: %w", err)
	}
	if b.styles.item, err = b.f.NewStyle(&excelize.Style{
		Border: borders, Alignment: centerTopWrap,
	}); err != nil {
		return fmt.Errorf("failed to register item style: %w", err)
	}
	if b.styles.itemLeft, err = b.f.NewStyle(&excelize.Style{
		Border: borders, Alignment: leftTopWrap,
	}); err != nil {
		return fmt.Errorf("failed to register item text style: %w", err)
	}
	return nil
}

var sheetNameRe = regexp.MustCompile(`[\\/*?:\[\]]`)

// SanitizeSheetName maps an input file base name to a spreadsheet-safe
// sheet name: forbidden characters replaced, trimmed, 31-rune cap.
func SanitizeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameRe.ReplaceAllString(name, "_"))
	if name == "" {
		name = "Sheet"
	}
	return truncateRunes(name, 31)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// reserveName sanitizes and deduplicates a sheet name against the sheets
// already in the workbook.
func (b *Builder) reserveName(name string) string {
	name = SanitizeSheetName(name)
	candidate := name
	for i := 2; b.names[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate = truncateRunes(name, 31-len(suffix)) + suffix
	}
	b.names[strings.ToLower(candidate)] = true
	return candidate
}

// AddSheet appends a new data sheet and returns its writer.
func (b *Builder) AddSheet(name string) (*Sheet, error) {
	reserved := b.reserveName(name)
	if _, err := b.f.NewSheet(reserved); err != nil {
		return nil, fmt.Errorf("failed to create sheet %q: %w", reserved, err)
	}
	s := &Sheet{b: b, name: reserved, row: 1}
	s.setColumnWidths()
	return s, nil
}

// AddErrorSheet isolates a failed input as a two-line error sheet; the rest
// of the run is unaffected.
func (b *Builder) AddErrorSheet(name, path string, runErr error) error {
	reserved := b.reserveName(name)
	if _, err := b.f.NewSheet(reserved); err != nil {
		return fmt.Errorf("failed to create error sheet %q: %w", reserved, err)
	}
	if err := b.f.SetCellValue(reserved, "A1", fmt.Sprintf("ERROR processing file: %s", path)); err != nil {
		return err
	}
	return b.f.SetCellValue(reserved, "A2", runErr.Error())
}

// Save finalizes the workbook. Formulas are marked for full recalculation
// on open so the derived totals display without manual refresh.
func (b *Builder) Save(path string) error {
	fullCalc := true
	if err := b.f.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &fullCalc}); err != nil {
		return fmt.Errorf("failed to set calc properties: %w", err)
	}
	if err := b.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close releases the underlying workbook.
func (b *Builder) Close() error {
	return b.f.Close()
}

// cellName converts 1-based coordinates to an A1-style cell reference.
func cellName(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}
