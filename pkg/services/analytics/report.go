package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidArgument is returned when a required input collection is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Settings contains the presentation options of a report
type Settings struct {
	// Title is printed in the report banner (default: "PROCUREMENT ANALYTICS REPORT")
	Title string
	// Currency is appended to monetary values; empty prints bare amounts (default: "RON")
	Currency string
}

// DefaultSettings returns the default report settings
func DefaultSettings() Settings {
	return Settings{
		Title:    "PROCUREMENT ANALYTICS REPORT",
		Currency: "RON",
	}
}

type sectionBuilder struct {
	title string
	build func(ds *Dataset, settings Settings, w *sectionWriter)
}

// sections lists the report sections in output order. Numbering follows the index.
var sections = []sectionBuilder{
	{title: "GENERAL STATISTICS", build: buildGeneralStatistics},
	{title: "CATEGORY ANALYSIS", build: buildCategoryAnalysis},
	{title: "VALUE DISTRIBUTION", build: buildValueDistribution},
	{title: "MONTHLY DISTRIBUTION", build: buildMonthlyDistribution},
	{title: "QUARTERLY DISTRIBUTION", build: buildQuarterlyDistribution},
	{title: "NOTABLE ITEMS", build: buildNotableItems},
	{title: "FINANCING SOURCES", build: buildFinancingSources},
	{title: "SEASONAL ANALYSIS", build: buildSeasonalAnalysis},
	{title: "RECOMMENDATIONS", build: buildRecommendations},
}

// Generator assembles procurement reports. It holds no per-report state and
// is safe for concurrent use.
type Generator struct {
	settings Settings
}

func NewGenerator(settings Settings) *Generator {
	defaults := DefaultSettings()
	if settings.Title == "" {
		settings.Title = defaults.Title
	}
	return &Generator{settings: settings}
}

// Generate aggregates records once and renders every section. Sections are
// computed concurrently but always appear in their fixed order.
func (g *Generator) Generate(
	ctx context.Context,
	records []domain.ProcurementRecord,
	categories domain.CategoryTable,
) (*domain.Report, error) {
	if records == nil {
		return nil, fmt.Errorf("%w: records are required", ErrInvalidArgument)
	}
	if categories == nil {
		return nil, fmt.Errorf("%w: category table is required", ErrInvalidArgument)
	}

	logger := zerolog.Ctx(ctx)
	ds := NewDataset(records, categories)

	report := &domain.Report{
		Title:    g.settings.Title,
		Header:   banner(g.settings.Title),
		Sections: make([]domain.ReportSection, len(sections)),
	}

	var eg errgroup.Group
	for i, s := range sections {
		eg.Go(func() error {
			w := newSectionWriter(i+1, s.title)
			s.build(ds, g.settings, w)
			report.Sections[i] = domain.ReportSection{
				Number: i + 1,
				Title:  s.title,
				Text:   w.String(),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build report sections: %w", err)
	}

	logger.Debug().
		Int("records", len(records)).
		Int("categories", len(categories)).
		Bool("time_data", ds.HasTimeData).
		Bool("source_data", ds.HasSourceData).
		Msg("procurement report generated")

	return report, nil
}

// GenerateReport renders the full text report with default settings.
func GenerateReport(records []domain.ProcurementRecord, categories domain.CategoryTable) (string, error) {
	report, err := NewGenerator(DefaultSettings()).Generate(context.Background(), records, categories)
	if err != nil {
		return "", err
	}
	return report.String(), nil
}
