package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// ValuesReader reads a cell range from a spreadsheet.
type ValuesReader interface {
	Values(ctx context.Context, spreadsheetID, cellRange string) ([][]any, error)
}

type sheetsService struct {
	svc *gsheet.Service
}

func (s *sheetsService) Values(ctx context.Context, spreadsheetID, cellRange string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, cellRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

type sheetsSource struct {
	reader          ValuesReader
	spreadsheetID   string
	recordsRange    string
	categoriesRange string
}

func NewSheetsSource(reader ValuesReader, spreadsheetID, recordsRange, categoriesRange string) Source {
	return &sheetsSource{
		reader:          reader,
		spreadsheetID:   spreadsheetID,
		recordsRange:    recordsRange,
		categoriesRange: categoriesRange,
	}
}

// SheetsFactory expects "spreadsheet_id" and "credentials_file" (a service
// account key). "records_range" defaults to the first sheet; "categories_range"
// is optional.
func SheetsFactory(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	spreadsheetID, err := requireSetting(profile, "spreadsheet_id")
	if err != nil {
		return nil, err
	}
	credentials, err := requireSetting(profile, "credentials_file")
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(credentials),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewSheetsSource(
		&sheetsService{svc: svc},
		spreadsheetID,
		profile.Get("records_range", "A:Z"),
		profile.Get("categories_range", ""),
	), nil
}

func (s *sheetsSource) Records(ctx context.Context) ([]domain.ProcurementRecord, error) {
	rows, err := s.rows(ctx, s.recordsRange)
	if err != nil {
		return nil, err
	}
	return ingest.RecordsFromRows(rows)
}

func (s *sheetsSource) Categories(ctx context.Context) (domain.CategoryTable, error) {
	if s.categoriesRange == "" {
		return domain.CategoryTable{}, nil
	}
	rows, err := s.rows(ctx, s.categoriesRange)
	if err != nil {
		return nil, err
	}
	return ingest.CategoriesFromRows(rows)
}

func (s *sheetsSource) rows(ctx context.Context, cellRange string) ([][]string, error) {
	zerolog.Ctx(ctx).Debug().Str("spreadsheet", s.spreadsheetID).Str("range", cellRange).Msg("reading sheet range")
	values, err := s.reader.Values(ctx, s.spreadsheetID, cellRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", cellRange, err)
	}
	return stringRows(values), nil
}

// stringRows renders sheet cells as text. Formatted values are kept as the
// API returns them.
func stringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cellText(cell)
		}
	}
	return rows
}

// cellText renders an unformatted number with a decimal point that cannot
// be mistaken for a thousands group.
func cellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case float64:
		text := strconv.FormatFloat(v, 'f', -1, 64)
		if dot := strings.IndexByte(text, '.'); dot >= 0 && len(text)-dot-1 == 3 {
			text += "0"
		}
		return text
	default:
		return fmt.Sprint(v)
	}
}

func (s *sheetsSource) Close() error {
	return nil
}
