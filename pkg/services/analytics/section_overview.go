package analytics

import "fmt"

const topCategoryCount = 10

func buildGeneralStatistics(ds *Dataset, settings Settings, w *sectionWriter) {
	n := len(ds.Records)
	if n == 0 {
		w.line("No procurement records available for analysis.")
		return
	}

	tax := ds.TotalInclTax - ds.TotalExclTax
	w.line("Total number of items: %s", formatCount(n))
	w.line("Total value (without TVA): %s", formatMoney(ds.TotalExclTax, settings.Currency))
	w.line("Total value (with TVA): %s", formatMoney(ds.TotalInclTax, settings.Currency))
	w.line("Total TVA amount: %s", formatMoney(tax, settings.Currency))
	if ds.TotalExclTax > 0 {
		w.line("Effective TVA rate: %s", formatPercent(tax/ds.TotalExclTax*100))
	} else {
		w.line("Effective TVA rate: N/A")
	}
	w.line("Number of categories: %s", formatCount(ds.DistinctCategories()))
	w.line("Average value per item: %s", formatMoney(ds.TotalExclTax/float64(n), settings.Currency))
}

func buildCategoryAnalysis(ds *Dataset, settings Settings, w *sectionWriter) {
	total := ds.ByCategory.TotalValue()

	var top []categoryRank
	for _, b := range ds.ByCategory.SortedByValue() {
		if b.TotalValue <= 0 {
			continue
		}
		top = append(top, categoryRank{code: b.Key, value: b.TotalValue, items: b.ItemCount})
		if len(top) == topCategoryCount {
			break
		}
	}
	if len(top) == 0 {
		w.line("No category data available for analysis.")
		return
	}

	w.line("Top %d categories by value:", len(top))
	w.blank()
	for i, c := range top {
		code := c.code
		if code == "" {
			code = "(no code)"
		}
		w.line("%2d. %s - %s", i+1, code, ResolveCategoryName(c.code, ds.Categories))
		w.line("    Value: %s (%s of total), items: %s",
			formatMoney(c.value, settings.Currency),
			formatPercent(percentOf(c.value, total)),
			formatCount(c.items))
	}
}

type categoryRank struct {
	code  string
	value float64
	items int
}

func buildValueDistribution(ds *Dataset, settings Settings, w *sectionWriter) {
	if len(ds.Records) == 0 {
		w.line("No value data available for analysis.")
		return
	}

	totalValue := ds.ByValueRange.TotalValue()
	totalItems := ds.ByValueRange.ItemCount()

	header := fmt.Sprintf("%-20s %8s %9s %22s %9s", "Range", "Items", "% Items", "Value", "% Value")
	w.line("%s", header)
	w.rule(len(header))
	for _, b := range ds.ByValueRange.Buckets() {
		w.line("%-20s %8s %9s %22s %9s",
			b.Key,
			formatCount(b.ItemCount),
			formatPercent(percentOf(float64(b.ItemCount), float64(totalItems))),
			formatMoney(b.TotalValue, settings.Currency),
			formatPercent(percentOf(b.TotalValue, totalValue)))
	}
}
