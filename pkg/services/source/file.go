package source

import (
	"context"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/ingest"
)

type fileSource struct {
	recordsPath    string
	categoriesPath string
}

// NewFileSource reads local CSV, XLSX or JSON files. categoriesPath may be empty.
func NewFileSource(recordsPath, categoriesPath string) Source {
	return &fileSource{recordsPath: recordsPath, categoriesPath: categoriesPath}
}

// FileFactory expects the "records" setting and an optional "categories" one.
func FileFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	records, err := requireSetting(profile, "records")
	if err != nil {
		return nil, err
	}
	return NewFileSource(records, profile.Get("categories", "")), nil
}

func (s *fileSource) Records(_ context.Context) ([]domain.ProcurementRecord, error) {
	return ingest.LoadRecords(s.recordsPath)
}

func (s *fileSource) Categories(_ context.Context) (domain.CategoryTable, error) {
	return ingest.LoadCategories(s.categoriesPath)
}

func (s *fileSource) Close() error {
	return nil
}
