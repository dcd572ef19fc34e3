package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*){0,2}$`)

type ReaderSettings struct {
	RecordsTable    string
	CategoriesTable string
	// Dataset restricts both tables to rows with a matching dataset column when set.
	Dataset string
}

func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		RecordsTable:    "procurement_records",
		CategoriesTable: "procurement_categories",
	}
}

// Reader loads procurement records from any database/sql warehouse that
// exposes the procurement_records and procurement_categories columns.
type Reader interface {
	Records(ctx context.Context) ([]store.ProcurementRecord, error)
	Categories(ctx context.Context) ([]store.CategoryEntry, error)
}

type reader struct {
	db       *sql.DB
	settings ReaderSettings
}

func NewReader(db *sql.DB, settings ReaderSettings) (Reader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	for _, table := range []string{settings.RecordsTable, settings.CategoriesTable} {
		if !identifierPattern.MatchString(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}
	return &reader{db: db, settings: settings}, nil
}

func (r *reader) where() (string, []any) {
	if r.settings.Dataset == "" {
		return "", nil
	}
	return " WHERE dataset = ?", []any{r.settings.Dataset}
}

func (r *reader) Records(ctx context.Context) ([]store.ProcurementRecord, error) {
	logger := zerolog.Ctx(ctx)
	where, args := r.where()
	query := fmt.Sprintf(`
		SELECT
			object_name,
			category_code,
			value_excl_tax,
			value_incl_tax,
			initiation_date,
			completion_date,
			financing_source
		FROM %s%s`, r.settings.RecordsTable, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("records query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close records query rows")
		}
	}(rows)

	records := make([]store.ProcurementRecord, 0)
	for rows.Next() {
		rec := store.ProcurementRecord{Dataset: r.settings.Dataset}
		if err := rows.Scan(
			&rec.ObjectName,
			&rec.CategoryCode,
			&rec.ValueExclTax,
			&rec.ValueInclTax,
			&rec.InitiationDate,
			&rec.CompletionDate,
			&rec.FinancingSource,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.Debug().Int("records", len(records)).Str("table", r.settings.RecordsTable).Msg("records loaded")
	return records, nil
}

func (r *reader) Categories(ctx context.Context) ([]store.CategoryEntry, error) {
	where, args := r.where()
	query := fmt.Sprintf(`
		SELECT
			code,
			name_local,
			name_english
		FROM %s%s`, r.settings.CategoriesTable, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("categories query failed: %w", err)
	}
	defer rows.Close()

	entries := make([]store.CategoryEntry, 0)
	for rows.Next() {
		var (
			code  sql.NullString
			entry = store.CategoryEntry{Dataset: r.settings.Dataset}
		)
		if err := rows.Scan(&code, &entry.NameLocal, &entry.NameEnglish); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		entry.Code = strings.TrimSpace(code.String)
		if entry.Code == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
