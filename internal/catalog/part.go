package catalog

import (
	"mtocli/internal/parsing"
)

// Sentinel is the display token for fields the master workbook leaves
// blank and for placeholder parts with no catalog match.
const Sentinel = "**"

// MissingName flags a placeholder part in the output workbook.
const MissingName = "**MISSING IN MASTER**"

// Part is one record of the master parts catalog. Immutable once loaded.
type Part struct {
	ItemNo      string
	Material    string
	Name        string
	Size        string
	Treatment   string
	Unit        string
	UnitWeight  *float64
	UnitSurface *float64
	Remark      string
	AddNotes    string

	// NotesLower is the normalized-lowercase form of AddNotes, precomputed
	// because every matching rule scans it.
	NotesLower string
}

// Signature is the normalized identity a part aggregates under. Two rows
// with equal signatures sum into one grand-total line even when their
// display fields differ.
type Signature struct {
	Size      string
	Material  string
	Treatment string
	Name      string
	Unit      string
}

// Signature returns the aggregation identity of the part.
func (p Part) Signature() Signature {
	return Signature{
		Size:      parsing.NormTextLower(p.Size),
		Material:  parsing.NormTextLower(p.Material),
		Treatment: parsing.NormTextLower(p.Treatment),
		Name:      parsing.NormTextLower(p.Name),
		Unit:      parsing.NormTextLower(p.Unit),
	}
}

// Placeholder builds the synthetic part substituted when a computed size has
// no catalog match. The computed size is preserved so operators can see the
// gap; every other field carries the sentinel.
func Placeholder(size string) Part {
	return Part{
		ItemNo:    Sentinel,
		Material:  Sentinel,
		Name:      MissingName,
		Size:      size,
		Treatment: Sentinel,
		Unit:      Sentinel,
		Remark:    Sentinel,
		AddNotes:  Sentinel,
	}
}

// Result is the outcome of a catalog size lookup: either the matched part or
// a placeholder carrying the computed display size that missed. Part is
// always populated, so downstream field overrides apply uniformly; Found
// distinguishes the two cases. A miss is not an error; it renders as a
// placeholder line.
type Result struct {
	Part  Part
	Found bool
	Size  string
}

// Display returns the part to render on a sheet.
func (r Result) Display() Part {
	return r.Part
}

// Found wraps a matched part as a lookup result.
func Found(p Part) Result {
	return Result{Part: p, Found: true, Size: p.Size}
}

// Missing wraps a computed size with no catalog match.
func Missing(size string) Result {
	return Result{Part: Placeholder(size), Size: size}
}
