package analytics

import (
	"maps"
	"slices"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

const unknownCategoryName = "Unknown"

// ResolveCategoryName maps a category code to a human-readable name.
//
// The lookup is a prefix match in which the queried code must be a prefix of
// the reference code, so broad codes resolve through their specific children.
// Reference codes are scanned in ascending lexical order and the first match
// wins. Its local name is preferred, then its English name.
func ResolveCategoryName(code string, table domain.CategoryTable) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return unknownCategoryName
	}

	fallback := "Category " + code
	for _, ref := range slices.Sorted(maps.Keys(table)) {
		if !strings.HasPrefix(ref, code) {
			continue
		}
		entry := table[ref]
		switch {
		case strings.TrimSpace(entry.NameLocal) != "":
			return entry.NameLocal
		case strings.TrimSpace(entry.NameEnglish) != "":
			return entry.NameEnglish
		default:
			return fallback
		}
	}
	return fallback
}
