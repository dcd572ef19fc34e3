package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/api"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

func decodeDataset(r io.Reader) (*api.Dataset, error) {
	var ds api.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return &ds, nil
}

func decodeJSONRecords(r io.Reader) ([]domain.ProcurementRecord, error) {
	ds, err := decodeDataset(r)
	if err != nil {
		return nil, err
	}
	return adapters.MapApiRecordsToDomain(ds.Records), nil
}

func decodeJSONCategories(r io.Reader) (domain.CategoryTable, error) {
	ds, err := decodeDataset(r)
	if err != nil {
		return nil, err
	}
	return adapters.MapApiCategoriesToDomain(ds.Categories), nil
}
