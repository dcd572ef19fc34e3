package analytics

import (
	"strings"
	"time"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

const (
	// UnknownSourceLabel replaces a missing financing source.
	UnknownSourceLabel = "Unknown"
	// minTimeDataPercent is the share of records that must carry a date
	// string before temporal analyses are attempted.
	minTimeDataPercent = 20
)

// ValueRange is one of the fixed value-distribution buckets, [Min, Max).
// Max is 0 for the open-ended last range.
type ValueRange struct {
	Label string
	Min   float64
	Max   float64
}

// ValueRanges are the fixed buckets applied to ValueExclTax.
var ValueRanges = []ValueRange{
	{Label: "Under 10,000", Min: 0, Max: 10000},
	{Label: "10,000 - 50,000", Min: 10000, Max: 50000},
	{Label: "50,000 - 100,000", Min: 50000, Max: 100000},
	{Label: "Over 100,000", Min: 100000},
}

func valueRangeOf(value float64) ValueRange {
	for _, r := range ValueRanges[:len(ValueRanges)-1] {
		if value < r.Max {
			return r
		}
	}
	return ValueRanges[len(ValueRanges)-1]
}

// AggregateByCategory sums ValueExclTax per category code. An empty code is a bucket of its own.
func AggregateByCategory(records []domain.ProcurementRecord) *domain.Aggregate {
	agg := domain.NewAggregate()
	for _, r := range records {
		agg.Add(r.CategoryCode, r.ValueExclTax)
	}
	return agg
}

// AggregateByValueRange distributes every record over ValueRanges.
func AggregateByValueRange(records []domain.ProcurementRecord) *domain.Aggregate {
	keys := make([]string, 0, len(ValueRanges))
	for _, r := range ValueRanges {
		keys = append(keys, r.Label)
	}
	agg := domain.NewAggregate(keys...)
	for _, r := range records {
		agg.Add(valueRangeOf(r.ValueExclTax).Label, r.ValueExclTax)
	}
	return agg
}

// AggregateByMonth buckets records by resolved month, January to December.
// Records without a recognizable date are left out.
func AggregateByMonth(records []domain.ProcurementRecord) *domain.Aggregate {
	keys := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		keys = append(keys, domain.MonthLabel(m))
	}
	agg := domain.NewAggregate(keys...)
	for _, r := range records {
		if m, ok := recordMonth(r); ok {
			agg.Add(domain.MonthLabel(m), r.ValueExclTax)
		}
	}
	return agg
}

// AggregateByQuarter buckets records by resolved quarter, Q1 to Q4.
func AggregateByQuarter(records []domain.ProcurementRecord) *domain.Aggregate {
	keys := make([]string, 0, len(domain.Quarters))
	for _, q := range domain.Quarters {
		keys = append(keys, q.String())
	}
	agg := domain.NewAggregate(keys...)
	for _, r := range records {
		if m, ok := recordMonth(r); ok {
			agg.Add(domain.QuarterOf(m).String(), r.ValueExclTax)
		}
	}
	return agg
}

// AggregateBySeason buckets records by resolved season, Spring to Winter.
func AggregateBySeason(records []domain.ProcurementRecord) *domain.Aggregate {
	keys := make([]string, 0, len(domain.Seasons))
	for _, s := range domain.Seasons {
		keys = append(keys, s.String())
	}
	agg := domain.NewAggregate(keys...)
	for _, r := range records {
		if m, ok := recordMonth(r); ok {
			agg.Add(domain.SeasonOf(m).String(), r.ValueExclTax)
		}
	}
	return agg
}

// AggregateBySource groups records by financing source. The second return
// value reports whether any record named a source at all.
func AggregateBySource(records []domain.ProcurementRecord) (*domain.Aggregate, bool) {
	agg := domain.NewAggregate()
	known := false
	for _, r := range records {
		source := strings.TrimSpace(r.FinancingSource)
		if source == "" {
			source = UnknownSourceLabel
		} else {
			known = true
		}
		agg.Add(source, r.ValueExclTax)
	}
	return agg, known
}

// HasSufficientTimeData reports whether at least 20% of the records carry an
// initiation or completion date string. Only presence is checked.
func HasSufficientTimeData(records []domain.ProcurementRecord) bool {
	if len(records) == 0 {
		return false
	}
	dated := 0
	for _, r := range records {
		if hasDate(r) {
			dated++
		}
	}
	return dated*100 >= minTimeDataPercent*len(records)
}

// Dataset bundles every aggregate the report sections read. It is built once
// per report and never modified afterwards.
type Dataset struct {
	Records    []domain.ProcurementRecord
	Categories domain.CategoryTable

	TotalExclTax float64
	TotalInclTax float64

	ByCategory   *domain.Aggregate
	ByValueRange *domain.Aggregate
	ByMonth      *domain.Aggregate
	ByQuarter    *domain.Aggregate
	BySeason     *domain.Aggregate
	BySource     *domain.Aggregate

	HasTimeData   bool
	HasSourceData bool
}

// NewDataset runs every aggregation pass over records.
func NewDataset(records []domain.ProcurementRecord, categories domain.CategoryTable) *Dataset {
	ds := &Dataset{
		Records:      records,
		Categories:   categories,
		ByCategory:   AggregateByCategory(records),
		ByValueRange: AggregateByValueRange(records),
		ByMonth:      AggregateByMonth(records),
		ByQuarter:    AggregateByQuarter(records),
		BySeason:     AggregateBySeason(records),
		HasTimeData:  HasSufficientTimeData(records),
	}
	ds.BySource, ds.HasSourceData = AggregateBySource(records)

	for _, r := range records {
		ds.TotalExclTax += r.ValueExclTax
		ds.TotalInclTax += r.ValueInclTax
	}
	return ds
}

// DistinctCategories counts the non-empty category codes present in the records.
func (ds *Dataset) DistinctCategories() int {
	count := 0
	for _, b := range ds.ByCategory.Buckets() {
		if b.Key != "" {
			count++
		}
	}
	return count
}
