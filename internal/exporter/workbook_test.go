package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtocli/internal/catalog"
	"mtocli/internal/mto"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name", "Type 1 PIPE SUP'T", "Type 1 PIPE SUP'T"},
		{"forbidden characters", `a/b\c*d?e:f[g]h`, "a_b_c_d_e_f_g_h"},
		{"blank", "   ", "Sheet"},
		{"over 31 runes", "abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz01234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSheetName(tt.input))
		})
	}
}

func TestBuilderDeduplicatesSheetNames(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	defer b.Close()

	s1, err := b.AddSheet("Report")
	require.NoError(t, err)
	s2, err := b.AddSheet("Report")
	require.NoError(t, err)
	s3, err := b.AddSheet("REPORT")
	require.NoError(t, err)

	assert.Equal(t, "Report", s1.Name())
	assert.Equal(t, "Report_2", s2.Name())
	assert.Equal(t, "REPORT_3", s3.Name(), "dedupe is case-insensitive")
}

func TestWriteItemFormulasAndSentinels(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	defer b.Close()

	s, err := b.AddSheet("Items")
	require.NoError(t, err)
	require.NoError(t, s.WriteTitle("Material List"))
	require.NoError(t, s.WriteHeader())

	weight := 2.5
	part := catalog.Part{
		ItemNo: "7", Material: "A36", Name: "PIPE", Size: `6" Sch.40 L 1000`,
		Unit: "PCS", UnitWeight: &weight,
	}
	require.NoError(t, s.WriteItem(part, 3))

	got, err := b.f.GetCellValue(s.Name(), "G3")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	formula, err := b.f.GetCellFormula(s.Name(), "I3")
	require.NoError(t, err)
	assert.Equal(t, `IF(OR(NOT(ISNUMBER(H3)),NOT(ISNUMBER(G3))),"**",H3*G3)`, formula)

	// Unit surface is unknown for this part, so the cell shows the sentinel.
	surface, err := b.f.GetCellValue(s.Name(), "J3")
	require.NoError(t, err)
	assert.Equal(t, catalog.Sentinel, surface)

	treatment, err := b.f.GetCellValue(s.Name(), "E3")
	require.NoError(t, err)
	assert.Equal(t, catalog.Sentinel, treatment)
}

func TestWriteGroupsSeparatesWithBlankRow(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	defer b.Close()

	s, err := b.AddSheet("Groups")
	require.NoError(t, err)

	groups := []mto.Group{
		{Label: "Group A", Lines: []mto.Line{{Result: catalog.Missing(`2" pipe`), Qty: 1}}},
		{Label: "Group B", Lines: []mto.Line{{Result: catalog.Missing(`4" pipe`), Qty: 2}}},
	}
	require.NoError(t, s.WriteGroups(groups))

	a1, err := b.f.GetCellValue(s.Name(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Group A", a1)

	blank, err := b.f.GetCellValue(s.Name(), "A3")
	require.NoError(t, err)
	assert.Empty(t, blank)

	a4, err := b.f.GetCellValue(s.Name(), "A4")
	require.NoError(t, err)
	assert.Equal(t, "Group B", a4)

	name, err := b.f.GetCellValue(s.Name(), "C2")
	require.NoError(t, err)
	assert.Equal(t, catalog.MissingName, name)
}

func TestAddErrorSheet(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.AddErrorSheet("bad_ERROR", "/data/bad.xlsx", assert.AnError))

	a1, err := b.f.GetCellValue("bad_ERROR", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ERROR processing file: /data/bad.xlsx", a1)

	a2, err := b.f.GetCellValue("bad_ERROR", "A2")
	require.NoError(t, err)
	assert.Equal(t, assert.AnError.Error(), a2)
}

func TestWriteSummary(t *testing.T) {
	weight := 1.5
	cat := catalog.New([]catalog.Part{
		{ItemNo: "1", Material: "A36", Name: "PIPE", Size: `6" Sch.40 L 1000`, Unit: "PCS", UnitWeight: &weight},
		{ItemNo: "2", Material: "A36", Name: "PLATE", Size: "PL 150x150x9", Unit: "PCS"},
	})

	totals := mto.NewTotals()
	totals.Add(cat.Records[0], 3)
	totals.Add(cat.Records[0], 5)
	totals.Add(catalog.Placeholder(`Padding plate 8"`), 2)

	b, err := NewBuilder()
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.WriteSummary(cat, totals))

	sheets := b.f.GetSheetList()
	require.NotEmpty(t, sheets)
	assert.Equal(t, SummarySheetName, sheets[0], "summary keeps the first workbook position")

	title, err := b.f.GetCellValue(SummarySheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, SummarySheetName, title)

	// Catalog order with aggregated quantities, unused records at zero.
	qty, err := b.f.GetCellValue(SummarySheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, "8", qty)
	qty, err = b.f.GetCellValue(SummarySheetName, "G4")
	require.NoError(t, err)
	assert.Equal(t, "0", qty)

	// EXTRA block after a blank separator.
	label, err := b.f.GetCellValue(SummarySheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "EXTRA (Not in Master)", label)
	size, err := b.f.GetCellValue(SummarySheetName, "D7")
	require.NoError(t, err)
	assert.Equal(t, `Padding plate 8"`, size)

	total, err := b.f.GetCellFormula(SummarySheetName, "G9")
	require.NoError(t, err)
	assert.Equal(t, "SUM(G3:G8)", total)
	c, err := b.f.GetCellValue(SummarySheetName, "C9")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", c)
}
