package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

const topItemCount = 5

// TopItems returns up to limit records with a positive value, highest first.
// Records of equal value keep their original order.
func TopItems(records []domain.ProcurementRecord, limit int) []domain.ProcurementRecord {
	var items []domain.ProcurementRecord
	for _, r := range records {
		if r.ValueExclTax > 0 {
			items = append(items, r)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ValueExclTax > items[j].ValueExclTax
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func buildNotableItems(ds *Dataset, settings Settings, w *sectionWriter) {
	items := TopItems(ds.Records, topItemCount)
	if len(items) == 0 {
		w.line("No items with a positive value found.")
		return
	}

	w.line("Top %d items by value:", len(items))
	w.blank()
	for i, r := range items {
		name := strings.TrimSpace(r.ObjectName)
		if name == "" {
			name = "(unnamed item)"
		}
		code := r.CategoryCode
		if code == "" {
			code = "N/A"
		}
		w.line("%d. %s", i+1, name)
		w.line("   Value: %s | Category: %s", formatMoney(r.ValueExclTax, settings.Currency), code)
	}
}

func buildFinancingSources(ds *Dataset, settings Settings, w *sectionWriter) {
	if len(ds.Records) == 0 || !ds.HasSourceData {
		w.line("Financing source information is not available.")
		return
	}

	total := ds.BySource.TotalValue()
	width := len("Source")
	for _, b := range ds.BySource.Buckets() {
		width = max(width, len([]rune(b.Key)))
	}

	header := fmt.Sprintf("%-*s %22s %9s %8s", width, "Source", "Value", "% Total", "Items")
	w.line("%s", header)
	w.rule(len(header))
	for _, b := range ds.BySource.SortedByValue() {
		w.line("%-*s %22s %9s %8s",
			width, b.Key,
			formatMoney(b.TotalValue, settings.Currency),
			formatPercent(percentOf(b.TotalValue, total)),
			formatCount(b.ItemCount))
	}
}
