package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"mtocli/internal/parsing"
)

// FormatError reports a type file whose layout cannot be understood. It is
// caught per file: the file becomes an error sheet and the run continues.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("input format error in %s: %s", e.Path, e.Reason)
}

// headerScanLimit bounds how deep the header-row search looks.
const headerScanLimit = 40

var delimiters = []rune{'\t', ',', ';', '|'}

// ReadFile ingests one type file, spreadsheet or delimited text, and returns
// its table with the header row auto-detected.
func ReadFile(path string) (*Table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		rows, err = readSpreadsheet(path)
	default:
		rows, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return tableFromRows(path, rows)
}

func readSpreadsheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Path: path, Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readDelimited tries every candidate delimiter and keeps the parse that
// scores best: a detected header row dominates, the dimension-suffix columns
// and overall column fill break ties.
func readDelimited(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	var best, first [][]string
	bestScore := -1
	for _, sep := range orderCandidates(text) {
		rows, err := parseDelimited(text, sep)
		if err != nil {
			continue
		}
		if first == nil {
			first = rows
		}
		if sc := scoreRows(rows); sc > bestScore {
			bestScore = sc
			best = rows
		}
	}
	if best == nil {
		// No candidate exposed the sentinel headers; keep the best-guess
		// delimiter parse and let header detection fall back.
		best = first
	}
	if best == nil {
		return nil, &FormatError{Path: path, Reason: "could not parse delimited input"}
	}
	return best, nil
}

// orderCandidates returns the delimiter candidates, most frequent in the
// leading sample first.
func orderCandidates(text string) []rune {
	sample := text
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	out := append([]rune(nil), delimiters...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Count(sample, string(out[i])) > strings.Count(sample, string(out[j]))
	})
	return out
}

func parseDelimited(text string, sep rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	// Pad ragged rows so column indices stay stable.
	maxLen := 0
	for _, row := range rows {
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < maxLen {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows, nil
}

// scoreRows rates a candidate parse. No detectable sentinel header row
// scores -1; otherwise the score rewards the -H/-L dimension columns and
// header density.
func scoreRows(rows [][]string) int {
	hdr := sentinelHeaderRow(rows)
	if hdr < 0 {
		return -1
	}

	hasH, hasL := false, false
	nonEmpty := 0
	for _, h := range rows[hdr] {
		lc := dashRepl.Replace(parsing.NormTextLower(h))
		if hSuffixRe.MatchString(lc) || strings.HasSuffix(lc, "-h") {
			hasH = true
		}
		if lSuffixRe.MatchString(lc) || strings.HasSuffix(lc, "-l") {
			hasL = true
		}
		if strings.TrimSpace(h) != "" {
			nonEmpty++
		}
	}

	sc := 10
	if hasH {
		sc += 3
	}
	if hasL {
		sc += 3
	}
	if extra := nonEmpty / 3; extra < 5 {
		sc += extra
	} else {
		sc += 5
	}
	return sc
}

// sentinelHeaderRow finds the row carrying both required sentinel headers,
// "family" and "type", within the scan limit.
func sentinelHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		hasFamily, hasType := false, false
		for _, cell := range rows[i] {
			switch parsing.NormTextLower(cell) {
			case "family":
				hasFamily = true
			case "type":
				hasType = true
			}
		}
		if hasFamily && hasType {
			return i
		}
	}
	return -1
}

// fallbackHeaderRow accepts the first row with at least two non-empty cells.
func fallbackHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		nonEmpty := 0
		for _, cell := range rows[i] {
			if parsing.NormText(cell) != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 2 {
			return i
		}
	}
	return -1
}

func tableFromRows(path string, rows [][]string) (*Table, error) {
	hdr := sentinelHeaderRow(rows)
	if hdr < 0 {
		hdr = fallbackHeaderRow(rows)
	}
	if hdr < 0 {
		return nil, &FormatError{Path: path, Reason: "could not detect header row"}
	}

	headers := make([]string, len(rows[hdr]))
	seen := make(map[string]int)
	for i, h := range rows[hdr] {
		name := parsing.NormText(h)
		if name == "" {
			name = fmt.Sprintf("COL%d", i+1)
		}
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s__%d", name, seen[name])
		}
		headers[i] = name
	}

	return &Table{Headers: headers, Rows: rows[hdr+1:]}, nil
}
