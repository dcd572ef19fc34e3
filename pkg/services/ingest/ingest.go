// Package ingest decodes procurement files into domain records and category tables.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no decoder handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrIncompatibleFile is returned when a file lacks the columns a decoder needs.
	ErrIncompatibleFile = errors.New("incompatible file")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatFromName infers the file format from its extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// DecodeRecords reads procurement records in the given format.
func DecodeRecords(format Format, r io.Reader) ([]domain.ProcurementRecord, error) {
	switch format {
	case FormatJSON:
		return decodeJSONRecords(r)
	case FormatCSV, FormatXLSX:
		rows, err := readRows(format, r)
		if err != nil {
			return nil, err
		}
		return RecordsFromRows(rows)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeCategories reads a category reference table in the given format.
func DecodeCategories(format Format, r io.Reader) (domain.CategoryTable, error) {
	switch format {
	case FormatJSON:
		return decodeJSONCategories(r)
	case FormatCSV, FormatXLSX:
		rows, err := readRows(format, r)
		if err != nil {
			return nil, err
		}
		return CategoriesFromRows(rows)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadRecords decodes the records file at path.
func LoadRecords(path string) ([]domain.ProcurementRecord, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer f.Close()

	records, err := DecodeRecords(format, f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// LoadCategories decodes the category file at path. An empty path yields an empty table.
func LoadCategories(path string) (domain.CategoryTable, error) {
	if path == "" {
		return domain.CategoryTable{}, nil
	}
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open categories file: %w", err)
	}
	defer f.Close()

	table, err := DecodeCategories(format, f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return table, nil
}

func readRows(format Format, r io.Reader) ([][]string, error) {
	if format == FormatXLSX {
		return readXLSXRows(r)
	}
	return readCSVRows(r)
}
