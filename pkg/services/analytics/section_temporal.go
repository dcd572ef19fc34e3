package analytics

import (
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

const insufficientTimeData = "insufficient data (fewer than 20% of records carry an initiation or completion date)."

func buildMonthlyDistribution(ds *Dataset, settings Settings, w *sectionWriter) {
	if !ds.HasTimeData {
		w.line("Monthly analysis skipped: %s", insufficientTimeData)
		return
	}
	if ds.ByMonth.ItemCount() == 0 {
		w.line("No valid monthly data could be identified from the available dates.")
		return
	}

	months := ds.ByMonth.Buckets()
	total := ds.ByMonth.TotalValue()

	header := fmt.Sprintf("%-8s %8s %22s %9s %20s", "Month", "Items", "Value", "% Total", "Avg/Item")
	w.line("%s", header)
	w.rule(len(header))
	for _, b := range months {
		w.line("%-8s %8s %22s %9s %20s",
			b.Key,
			formatCount(b.ItemCount),
			formatMoney(b.TotalValue, settings.Currency),
			formatPercent(percentOf(b.TotalValue, total)),
			formatAmount(b.AverageValue()))
	}
	w.blank()

	active := 0
	for _, b := range months {
		if b.ItemCount > 0 {
			active++
		}
	}
	w.line("Months with activity: %d of 12", active)

	if peak, low, ok := peakAndLow(months); ok {
		w.line("Peak month: %s - %s (%s of identified total)",
			peak.Key, formatMoney(peak.TotalValue, settings.Currency), formatPercent(percentOf(peak.TotalValue, total)))
		w.line("Lowest month: %s - %s (%s of identified total)",
			low.Key, formatMoney(low.TotalValue, settings.Currency), formatPercent(percentOf(low.TotalValue, total)))
	}

	if d, ok := AnalyzeDispersion(ds.ByMonth.Values(), len(months)); ok {
		w.line("Coefficient of variation: %s - %s", formatPercent(d.CoefficientOfVariation), MonthlyVariability(d.CoefficientOfVariation))
	} else {
		w.line("Variability: not enough active months to assess (at least 2 required).")
	}

	if high, low, ok := averageExtremes(months); ok {
		w.line("Highest average value per item: %s - %s", high.Key, formatMoney(high.AverageValue(), settings.Currency))
		w.line("Lowest average value per item: %s - %s", low.Key, formatMoney(low.AverageValue(), settings.Currency))
	}
}

func buildQuarterlyDistribution(ds *Dataset, settings Settings, w *sectionWriter) {
	if !ds.HasTimeData {
		w.line("Quarterly analysis skipped: %s", insufficientTimeData)
		return
	}

	total := ds.ByQuarter.TotalValue()
	var rows []domain.Bucket
	for _, b := range ds.ByQuarter.Buckets() {
		if b.TotalValue != 0 {
			rows = append(rows, b)
		}
	}
	if len(rows) == 0 {
		w.line("No valid quarterly data could be identified from the available dates.")
		return
	}

	header := fmt.Sprintf("%-8s %8s %22s %9s", "Quarter", "Items", "Value", "% Total")
	w.line("%s", header)
	w.rule(len(header))
	for _, b := range rows {
		w.line("%-8s %8s %22s %9s",
			b.Key,
			formatCount(b.ItemCount),
			formatMoney(b.TotalValue, settings.Currency),
			formatPercent(percentOf(b.TotalValue, total)))
	}
}

func buildSeasonalAnalysis(ds *Dataset, settings Settings, w *sectionWriter) {
	if !ds.HasTimeData {
		w.line("Seasonal analysis skipped: %s", insufficientTimeData)
		return
	}
	if ds.BySeason.ItemCount() == 0 {
		w.line("No valid seasonal data could be identified from the available dates.")
		return
	}

	seasons := ds.BySeason.Buckets()
	total := ds.BySeason.TotalValue()

	header := fmt.Sprintf("%-8s %8s %22s %9s %18s %18s", "Season", "Items", "Value", "% Total", "Avg/Month", "Avg/Item")
	w.line("%s", header)
	w.rule(len(header))
	for _, b := range seasons {
		w.line("%-8s %8s %22s %9s %18s %18s",
			b.Key,
			formatCount(b.ItemCount),
			formatMoney(b.TotalValue, settings.Currency),
			formatPercent(percentOf(b.TotalValue, total)),
			formatAmount(b.TotalValue/3),
			formatAmount(b.AverageValue()))
	}
	w.blank()

	if peak, low, ok := peakAndLow(seasons); ok {
		w.line("Peak season: %s - %s (%s of identified total)",
			peak.Key, formatMoney(peak.TotalValue, settings.Currency), formatPercent(percentOf(peak.TotalValue, total)))
		w.line("Lowest season: %s - %s (%s of identified total)",
			low.Key, formatMoney(low.TotalValue, settings.Currency), formatPercent(percentOf(low.TotalValue, total)))
	}

	if d, ok := AnalyzeDispersion(ds.BySeason.Values(), len(seasons)); ok {
		w.line("Seasonal balance: %s (coefficient of variation %s)", SeasonalBalance(d.CoefficientOfVariation), formatPercent(d.CoefficientOfVariation))
	} else {
		w.line("Seasonal balance: not enough active seasons to assess (at least 2 required).")
	}
}

// peakAndLow returns the highest and lowest buckets among those with a
// positive value. The first bucket wins on ties.
func peakAndLow(buckets []domain.Bucket) (peak, low domain.Bucket, ok bool) {
	for _, b := range buckets {
		if b.TotalValue <= 0 {
			continue
		}
		if !ok {
			peak, low, ok = b, b, true
			continue
		}
		if b.TotalValue > peak.TotalValue {
			peak = b
		}
		if b.TotalValue < low.TotalValue {
			low = b
		}
	}
	return peak, low, ok
}

// averageExtremes returns the buckets with the highest and lowest average
// value per item, considering only buckets that hold items.
func averageExtremes(buckets []domain.Bucket) (high, low domain.Bucket, ok bool) {
	for _, b := range buckets {
		if b.ItemCount == 0 {
			continue
		}
		if !ok {
			high, low, ok = b, b, true
			continue
		}
		if b.AverageValue() > high.AverageValue() {
			high = b
		}
		if b.AverageValue() < low.AverageValue() {
			low = b
		}
	}
	return high, low, ok
}
