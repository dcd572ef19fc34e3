package ingest

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a loosely formatted monetary value to a float.
//
// Both "1.234,56" and "1,234.56" are accepted: when both separators appear the
// last one is the decimal mark; a lone comma followed by at most two digits is
// a decimal comma. A lone dot followed by exactly three digits groups
// thousands ("12.500" is 12500) unless the integer part is zero. Currency
// labels and spaces are ignored. Unparsable or negative input yields 0.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0
	}

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") == 1 && len(clean)-lastComma-1 <= 2 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(clean, ".") > 1 || isGroupedThousands(clean, lastDot) {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func isGroupedThousands(clean string, sep int) bool {
	whole := strings.TrimLeft(strings.TrimPrefix(clean[:sep], "-"), "0")
	return len(clean)-sep-1 == 3 && whole != ""
}
