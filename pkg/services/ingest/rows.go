package ingest

import (
	"fmt"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

type column int

const (
	colObjectName column = iota
	colCategoryCode
	colValueExclTax
	colValueInclTax
	colInitiationDate
	colCompletionDate
	colFinancingSource
	colCode
	colNameLocal
	colNameEnglish
)

// Header aliases in normalized form (lower case, no diacritics, single spaces).
var recordColumns = map[column][]string{
	colObjectName:      {"object name", "object", "name", "description", "denumire", "denumire obiect", "obiectul achizitiei", "obiect achizitie", "obiectul contractului"},
	colCategoryCode:    {"category code", "category", "cpv", "cpv code", "cod cpv", "cod"},
	colValueExclTax:    {"value excl tax", "value without vat", "value excl vat", "value", "valoare fara tva", "valoare estimata fara tva", "valoare estimata"},
	colValueInclTax:    {"value incl tax", "value with vat", "value incl vat", "valoare cu tva", "valoare estimata cu tva"},
	colInitiationDate:  {"initiation date", "start date", "data initiere", "data estimata initiere", "data de initiere", "data inceput"},
	colCompletionDate:  {"completion date", "end date", "data finalizare", "data estimata finalizare", "data de finalizare", "data atribuire"},
	colFinancingSource: {"financing source", "funding source", "source of financing", "sursa finantare", "sursa de finantare"},
}

var categoryColumns = map[column][]string{
	colCode:        {"code", "category code", "cpv", "cpv code", "cod", "cod cpv"},
	colNameLocal:   {"name local", "name ro", "local name", "denumire", "nume", "name"},
	colNameEnglish: {"name english", "name en", "english name", "denumire engleza"},
}

var diacritics = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"Ă", "a", "Â", "a", "Î", "i", "Ș", "s", "Ş", "s", "Ț", "t", "Ţ", "t",
	"_", " ", "-", " ", ".", " ", "(", " ", ")", " ",
)

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = diacritics.Replace(strings.ToLower(h))
	return strings.Join(strings.Fields(h), " ")
}

// headerIndex maps each known column to its position in the header row.
// The first header cell matching an alias wins.
func headerIndex(header []string, aliases map[column][]string) map[column]int {
	index := make(map[column]int)
	for pos, cell := range header {
		name := normalizeHeader(cell)
		for col, names := range aliases {
			if _, taken := index[col]; taken {
				continue
			}
			for _, alias := range names {
				if name == alias {
					index[col] = pos
					break
				}
			}
		}
	}
	return index
}

type rowReader struct {
	row   []string
	index map[column]int
}

func (r rowReader) get(col column) string {
	pos, ok := r.index[col]
	if !ok || pos >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[pos])
}

func (r rowReader) has(col column) bool {
	_, ok := r.index[col]
	return ok
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// splitHeader returns the first non-blank row and the rows after it.
func splitHeader(rows [][]string) ([]string, [][]string) {
	for i, row := range rows {
		if !isBlankRow(row) {
			return row, rows[i+1:]
		}
	}
	return nil, nil
}

// RecordsFromRows decodes a header row followed by record rows.
func RecordsFromRows(rows [][]string) ([]domain.ProcurementRecord, error) {
	header, body := splitHeader(rows)
	if header == nil {
		return []domain.ProcurementRecord{}, nil
	}

	index := headerIndex(header, recordColumns)
	var missing []string
	if _, ok := index[colObjectName]; !ok {
		missing = append(missing, "object name")
	}
	if _, ok := index[colValueExclTax]; !ok {
		missing = append(missing, "value without tax")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns: %s", ErrIncompatibleFile, strings.Join(missing, ", "))
	}

	records := make([]domain.ProcurementRecord, 0, len(body))
	for _, row := range body {
		if isBlankRow(row) {
			continue
		}
		rr := rowReader{row: row, index: index}
		excl := ParseAmount(rr.get(colValueExclTax))
		incl := excl
		if rr.has(colValueInclTax) {
			incl = ParseAmount(rr.get(colValueInclTax))
		}
		records = append(records, domain.ProcurementRecord{
			ObjectName:      rr.get(colObjectName),
			CategoryCode:    rr.get(colCategoryCode),
			ValueExclTax:    excl,
			ValueInclTax:    incl,
			InitiationDate:  rr.get(colInitiationDate),
			CompletionDate:  rr.get(colCompletionDate),
			FinancingSource: rr.get(colFinancingSource),
		})
	}
	return records, nil
}

// CategoriesFromRows decodes a header row followed by category rows.
func CategoriesFromRows(rows [][]string) (domain.CategoryTable, error) {
	header, body := splitHeader(rows)
	if header == nil {
		return domain.CategoryTable{}, nil
	}

	index := headerIndex(header, categoryColumns)
	if _, ok := index[colCode]; !ok {
		return nil, fmt.Errorf("%w: missing columns: code", ErrIncompatibleFile)
	}

	table := make(domain.CategoryTable, len(body))
	for _, row := range body {
		rr := rowReader{row: row, index: index}
		code := rr.get(colCode)
		if code == "" {
			continue
		}
		table[code] = domain.CategoryEntry{
			Code:        code,
			NameLocal:   rr.get(colNameLocal),
			NameEnglish: rr.get(colNameEnglish),
		}
	}
	return table, nil
}
