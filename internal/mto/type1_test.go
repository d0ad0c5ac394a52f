package mto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
)

func partWithSize(itemNo, name, size string) catalog.Part {
	return catalog.Part{ItemNo: itemNo, Material: "A36", Name: name, Size: size, Unit: "PCS"}
}

func type1Catalog() *catalog.Catalog {
	return catalog.New([]catalog.Part{
		partWithSize("1", "PIPE", `6" Sch.40 L 1000`),
		partWithSize("2", "PIPE", `6" Sch.40 L 1100`),
		partWithSize("3", "ELBOW", `6" Sch.40 (Half Saddle)`),
		partWithSize("4", "PLATE", "PL 230x230x9"),
		partWithSize("5", "PLATE", "PL 370x370x9"),
		partWithSize("6", "EMBEDDED BOLT", "EB M16x140"),
	})
}

func type1Table(rows [][]string) *dataprocessing.Table {
	return &dataprocessing.Table{
		Headers: []string{"Family", "Type", "1-H total"},
		Rows:    rows,
	}
}

func TestType1ResolveGroupsByInchAndVariant(t *testing.T) {
	cat := type1Catalog()
	r := NewResolver(FamilyType1, "Type 1 PIPE SUP'T")

	groups, err := r.Resolve(type1Table([][]string{
		{"x", "01-6B", "950"},
		{"x", "01-6B", "980"},
		{"x", "01-6B-A", "1020"},
	}), cat)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	plain := groups[0]
	assert.Equal(t, `Material List [For 6" Type 1 PIPE SUP'T]`, plain.Label)
	require.Len(t, plain.Lines, 5)

	// Both plain supports land in the 1000 mm pipe bucket.
	pipe := plain.Lines[0]
	assert.Equal(t, `6" Sch.40 L 1000`, pipe.Result.Display().Size)
	assert.True(t, pipe.Result.Found)
	assert.Equal(t, 2, pipe.Qty)

	elbow := plain.Lines[1]
	assert.Equal(t, `6" Sch.40 (Half Saddle)`, elbow.Result.Display().Size)
	assert.Equal(t, "A36", elbow.Result.Display().Material)
	assert.Equal(t, 2, elbow.Qty)

	assert.Equal(t, "PL 230x230x9", plain.Lines[2].Result.Display().Size)
	assert.Equal(t, 2, plain.Lines[2].Qty)
	assert.Equal(t, "PL 370x370x9", plain.Lines[3].Result.Display().Size)
	assert.Equal(t, 2, plain.Lines[3].Qty)
	assert.Equal(t, "EB M16x140", plain.Lines[4].Result.Display().Size)
	assert.Equal(t, 8, plain.Lines[4].Qty)

	alt := groups[1]
	assert.Equal(t, `Material List [For 6" Type 1-A PIPE SUP'T]`, alt.Label)
	require.Len(t, alt.Lines, 5)
	assert.Equal(t, `6" Sch.40 L 1100`, alt.Lines[0].Result.Display().Size)
	assert.Equal(t, 1, alt.Lines[0].Qty)

	altElbow := alt.Lines[1].Result.Display()
	assert.Equal(t, "ASTM A240 304/304L", altElbow.Material)
	assert.Equal(t, "-", altElbow.Treatment)
}

func TestType1VariantCDropsSmallPlateAndBolts(t *testing.T) {
	cat := type1Catalog()
	r := NewResolver(FamilyType1, "Type 1 PIPE SUP'T")

	groups, err := r.Resolve(type1Table([][]string{
		{"x", "01-6B-C", "1000"},
	}), cat)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, `Material List [For 6" Type 1-C PIPE SUP'T]`, g.Label)
	require.Len(t, g.Lines, 5)

	assert.Equal(t, "PL 230x230x9", g.Lines[2].Result.Display().Size)
	assert.Equal(t, 0, g.Lines[2].Qty, "variant C carries no small plate")
	assert.Equal(t, 1, g.Lines[3].Qty, "big plate stays")
	assert.Equal(t, 0, g.Lines[4].Qty, "variant C carries no embedded bolts")
}

func TestType1UnknownNominalSize(t *testing.T) {
	cat := type1Catalog()
	r := NewResolver(FamilyType1, "Type 1 PIPE SUP'T")

	groups, err := r.Resolve(type1Table([][]string{
		{"x", "01-5B", "700"},
	}), cat)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Lines, 1)

	line := groups[0].Lines[0]
	assert.False(t, line.Result.Found)
	assert.Equal(t, `5" (no Type 1 descriptor)`, line.Result.Display().Size)
	assert.Equal(t, 0, line.Qty)
}

func TestType1SkipsRowsWithoutNumericTotal(t *testing.T) {
	cat := type1Catalog()
	r := NewResolver(FamilyType1, "Type 1 PIPE SUP'T")

	groups, err := r.Resolve(type1Table([][]string{
		{"x", "01-6B", "**"},
		{"x", "01-6B", ""},
		{"x", "01-6B", "950"},
	}), cat)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Lines[0].Qty)
}

func TestType1RequiresColumns(t *testing.T) {
	cat := type1Catalog()
	r := NewResolver(FamilyType1, "Type 1 PIPE SUP'T")

	_, err := r.Resolve(&dataprocessing.Table{
		Headers: []string{"Family", "Type"},
		Rows:    [][]string{{"x", "01-6B"}},
	}, cat)
	assert.Error(t, err)
}

func TestParseType1Variant(t *testing.T) {
	tests := []struct {
		code string
		want type1Variant
	}{
		{"01-6B", variantPlain},
		{"01-6B-A", variantA},
		{"01-6B-C", variantC},
		{"01-6BC", variantC},
		{"01-6B-A-C", variantA},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, parseType1Variant(tt.code))
		})
	}
}
