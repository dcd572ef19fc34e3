package analytics

// peakMonthWarningShare is the share of the identified monthly value above
// which a single month is flagged as a concentration risk.
const peakMonthWarningShare = 25.0

var generalRecommendations = []string{
	"Plan purchases through an annual procurement programme approved before the start of the budget year.",
	"Group similar needs under the same CPV category to obtain better prices through larger lots.",
	"Avoid concentrating procedures at the end of the budget year; spread launches across quarters.",
	"Monitor contract execution against initiation and completion dates to detect delays early.",
	"Keep category codes, dates and financing sources complete so future analyses stay reliable.",
}

func buildRecommendations(ds *Dataset, settings Settings, w *sectionWriter) {
	if len(ds.Records) == 0 {
		w.line("No recommendations available: the record set is empty.")
		return
	}

	if ds.HasTimeData {
		total := ds.ByMonth.TotalValue()
		if peak, _, ok := peakAndLow(ds.ByMonth.Buckets()); ok {
			share := percentOf(peak.TotalValue, total)
			if share > peakMonthWarningShare {
				w.line("WARNING: %s concentrates %s of the identified monthly value (%s).",
					peak.Key, formatPercent(share), formatMoney(peak.TotalValue, settings.Currency))
				w.line("Consider spreading procurement procedures more evenly across the year.")
				w.blank()
			}
		}
	}

	w.line("General recommendations:")
	for _, r := range generalRecommendations {
		w.line("- %s", r)
	}
}
