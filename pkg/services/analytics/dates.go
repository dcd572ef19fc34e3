package analytics

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

// Month names are matched as lowercase substrings, months in calendar order.
// Abbreviations come first; the full forms are kept for readability of the table.
var romanianMonths = [12][]string{
	{"ian", "ianuarie"},
	{"feb", "februarie"},
	{"mar", "martie"},
	{"apr", "aprilie"},
	{"mai"},
	{"iun", "iunie"},
	{"iul", "iulie"},
	{"aug", "august"},
	{"sep", "septembrie"},
	{"oct", "octombrie"},
	{"noi", "noiembrie"},
	{"dec", "decembrie"},
}

var englishMonths = [12][]string{
	{"jan", "january"},
	{"feb", "february"},
	{"mar", "march"},
	{"apr", "april"},
	{"may"},
	{"jun", "june"},
	{"jul", "july"},
	{"aug", "august"},
	{"sep", "september"},
	{"oct", "october"},
	{"nov", "november"},
	{"dec", "december"},
}

var numericDatePattern = regexp.MustCompile(`(\d{1,4})[-/](\d{1,4})[-/](\d{1,4})`)

// ClassifyMonth extracts a calendar month from free-form date text.
//
// Romanian month names win over English ones, and both win over numeric
// dates. For numeric dates the second group is the month unless it exceeds 12
// while the first group does not, in which case the two are swapped. Dates
// where both groups are <= 12 always resolve to the second group.
func ClassifyMonth(text string) (time.Month, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return 0, false
	}

	if m, ok := matchMonthName(lower, romanianMonths); ok {
		return m, true
	}
	if m, ok := matchMonthName(lower, englishMonths); ok {
		return m, true
	}
	return matchNumericMonth(lower)
}

func matchMonthName(text string, names [12][]string) (time.Month, bool) {
	for i, forms := range names {
		for _, form := range forms {
			if strings.Contains(text, form) {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}

func matchNumericMonth(text string) (time.Month, bool) {
	groups := numericDatePattern.FindStringSubmatch(text)
	if groups == nil {
		return 0, false
	}

	first, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false
	}
	second, err := strconv.Atoi(groups[2])
	if err != nil {
		return 0, false
	}

	month := second
	if second > 12 && first <= 12 {
		month = first
	}
	if month < 1 || month > 12 {
		return 0, false
	}
	return time.Month(month), true
}

// ClassifyQuarter derives the calendar quarter from ClassifyMonth.
func ClassifyQuarter(text string) (domain.Quarter, bool) {
	m, ok := ClassifyMonth(text)
	if !ok {
		return 0, false
	}
	return domain.QuarterOf(m), true
}

// ClassifySeason derives the season from ClassifyMonth.
func ClassifySeason(text string) (domain.Season, bool) {
	m, ok := ClassifyMonth(text)
	if !ok {
		return 0, false
	}
	return domain.SeasonOf(m), true
}

// recordMonth resolves the month a record belongs to: the initiation date
// first, the completion date when the former is missing or unrecognized.
func recordMonth(r domain.ProcurementRecord) (time.Month, bool) {
	if m, ok := ClassifyMonth(r.InitiationDate); ok {
		return m, true
	}
	return ClassifyMonth(r.CompletionDate)
}

func hasDate(r domain.ProcurementRecord) bool {
	return strings.TrimSpace(r.InitiationDate) != "" || strings.TrimSpace(r.CompletionDate) != ""
}
