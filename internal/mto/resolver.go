package mto

import (
	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
)

// Line is one bill-of-materials row bound for a sheet: a catalog lookup
// result (found part or placeholder) and its quantity.
type Line struct {
	Result catalog.Result
	Qty    int
}

// Group is a labelled run of BOM lines, one per aggregation key of the
// family (inch size, variant, or channel code).
type Group struct {
	Label string
	Lines []Line
}

// Resolver turns the classified rows of one type file into BOM groups using
// the read-only catalog.
type Resolver interface {
	Resolve(t *dataprocessing.Table, cat *catalog.Catalog) ([]Group, error)
}

// NewResolver selects the resolver for a family. label is the file label
// rendered into group headings (the family sheet title, or the file base
// name for the standard family).
func NewResolver(kind FamilyKind, label string) Resolver {
	switch kind {
	case FamilyType1:
		return &type1Resolver{}
	case Family66, Family52, Family54A, Family54B:
		return &specialResolver{kind: kind, label: label}
	default:
		return &standardResolver{label: label}
	}
}
