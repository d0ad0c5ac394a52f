package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"mtocli/internal/parsing"
)

// ConfigurationError reports a master workbook whose header row cannot
// satisfy the required columns. It is fatal: the run aborts before any type
// file is processed.
type ConfigurationError struct {
	Missing string
	Headers []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("master catalog missing required column %q; headers found: %v", e.Missing, e.Headers)
}

// Catalog is the loaded master parts list plus its size-keyed index. It is
// read-only after Load and safe to share across resolver invocations.
type Catalog struct {
	Records []Part
	bySize  map[string]Part
}

// New builds a catalog over the given records. The size index is first-wins:
// a duplicate size keeps the earlier record.
func New(records []Part) *Catalog {
	c := &Catalog{Records: records, bySize: make(map[string]Part)}
	for _, p := range records {
		key := parsing.NormTextLower(p.Size)
		if key == "" {
			continue
		}
		if _, dup := c.bySize[key]; !dup {
			c.bySize[key] = p
		}
	}
	return c
}

// BySize returns the first catalog record whose normalized size equals the
// given size string.
func (c *Catalog) BySize(size string) (Part, bool) {
	p, ok := c.bySize[parsing.NormTextLower(size)]
	return p, ok
}

// Lookup resolves a computed size string to a found-or-missing result.
func (c *Catalog) Lookup(size string) Result {
	if p, ok := c.BySize(size); ok {
		return Found(p)
	}
	return Missing(size)
}

var headerStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// canonHeader canonicalizes a header cell for fuzzy matching: lowercase,
// fullwidth parens to ASCII, whitespace collapsed, punctuation stripped.
func canonHeader(h string) string {
	s := parsing.NormTextLower(strings.ReplaceAll(h, "\n", " "))
	s = strings.NewReplacer("（", "(", "）", ")").Replace(s)
	return headerStripRe.ReplaceAllString(s, "")
}

// columnMap resolves master columns by substring-token containment over the
// canonicalized headers. Only material, name and size are required.
type columnMap map[string]int

func mapColumns(headers []string) (columnMap, error) {
	type canonCol struct {
		key string
		col int
	}
	var canon []canonCol
	for i, h := range headers {
		if parsing.NormText(h) == "" {
			continue
		}
		canon = append(canon, canonCol{key: canonHeader(h), col: i})
	}

	// First header whose canonical form contains every token wins, in
	// column order, so "unit" resolves before "unit weight".
	find := func(tokens ...string) (int, bool) {
		for _, cc := range canon {
			all := true
			for _, t := range tokens {
				if !strings.Contains(cc.key, t) {
					all = false
					break
				}
			}
			if all {
				return cc.col, true
			}
		}
		return 0, false
	}
	optional := func(tokens ...string) int {
		if col, ok := find(tokens...); ok {
			return col
		}
		return -1
	}

	cols := columnMap{
		"material":    optional("material"),
		"name":        optional("name"),
		"size":        optional("size"),
		"itemno":      optional("item", "no"),
		"treatment":   optional("treatment"),
		"unit":        optional("unit"),
		"unitweight":  optional("unit", "weight"),
		"unitsurface": optional("unit", "surface"),
		"remark":      optional("remark"),
		"addnotes":    optional("add", "notes"),
	}
	for _, required := range []string{"material", "name", "size"} {
		if cols[required] < 0 {
			return nil, &ConfigurationError{Missing: required, Headers: headers}
		}
	}
	return cols, nil
}

// Load reads the master workbook's first sheet into a Catalog. Rows where
// size, name and material are all blank are skipped; on duplicate sizes the
// first record wins in the index.
func Load(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("master workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read master sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, &ConfigurationError{Missing: "material", Headers: nil}
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []Part
	for _, row := range rows[1:] {
		get := func(key string) string {
			c := cols[key]
			if c < 0 || c >= len(row) {
				return ""
			}
			return row[c]
		}

		size := parsing.NormText(get("size"))
		name := parsing.NormText(get("name"))
		material := parsing.NormText(get("material"))
		if size == "" && name == "" && material == "" {
			continue
		}

		p := Part{
			ItemNo:      orSentinel(parsing.NormText(get("itemno"))),
			Material:    orSentinel(material),
			Name:        orSentinel(name),
			Size:        orSentinel(size),
			Treatment:   orSentinel(parsing.NormText(get("treatment"))),
			Unit:        orSentinel(parsing.NormText(get("unit"))),
			UnitWeight:  optionalNumber(get("unitweight")),
			UnitSurface: optionalNumber(get("unitsurface")),
			Remark:      orSentinel(parsing.NormText(get("remark"))),
			AddNotes:    orSentinel(parsing.NormText(get("addnotes"))),
			NotesLower:  parsing.NormTextLower(get("addnotes")),
		}
		records = append(records, p)
	}
	return New(records), nil
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

func optionalNumber(s string) *float64 {
	if v, ok := parsing.Number(s); ok {
		return &v
	}
	return nil
}
