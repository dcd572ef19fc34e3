package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

const sectionRuleWidth = 60

// humanize.FormatFloat goes through int64; larger amounts are grouped as
// whole units.
const maxGroupedAmount = 1e15

func formatAmount(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	if math.Abs(v) >= maxGroupedAmount {
		return humanize.Commaf(math.Round(v)) + ".00"
	}
	return humanize.FormatFloat("#,###.##", v)
}

func formatMoney(v float64, currency string) string {
	if currency == "" {
		return formatAmount(v)
	}
	return formatAmount(v) + " " + currency
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// percentOf returns part as a percentage of total, 0 when total is not positive.
func percentOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

// sectionWriter accumulates the text of one report section.
type sectionWriter struct {
	sb strings.Builder
}

func newSectionWriter(number int, title string) *sectionWriter {
	w := &sectionWriter{}
	fmt.Fprintf(&w.sb, "%d. %s\n", number, title)
	w.sb.WriteString(strings.Repeat("-", sectionRuleWidth))
	w.sb.WriteString("\n")
	return w
}

func (w *sectionWriter) line(format string, args ...any) {
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteString("\n")
}

func (w *sectionWriter) blank() {
	w.sb.WriteString("\n")
}

func (w *sectionWriter) rule(width int) {
	w.sb.WriteString(strings.Repeat("-", width))
	w.sb.WriteString("\n")
}

// String returns the section text terminated by exactly one blank line.
func (w *sectionWriter) String() string {
	return strings.TrimRight(w.sb.String(), "\n") + "\n\n"
}

func banner(title string) string {
	rule := strings.Repeat("=", sectionRuleWidth)
	return rule + "\n" + title + "\n" + rule + "\n\n"
}
