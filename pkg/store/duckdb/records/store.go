package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/procurement-atlas/pkg/models/store"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
)

// Store keeps imported procurement datasets in DuckDB. Records of a dataset
// are returned in the order they were added.
type Store interface {
	AddRecords(ctx context.Context, dataset string, records []store.ProcurementRecord) error
	AddCategories(ctx context.Context, dataset string, entries []store.CategoryEntry) error
	Records(ctx context.Context, dataset string) ([]store.ProcurementRecord, error)
	Categories(ctx context.Context, dataset string) ([]store.CategoryEntry, error)
	Datasets(ctx context.Context) ([]store.DatasetStats, error)
	DeleteDataset(ctx context.Context, dataset string) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type recordsStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordsStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *recordsStore) conn(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *recordsStore) AddRecords(ctx context.Context, dataset string, records []store.ProcurementRecord) error {
	if dataset == "" {
		return fmt.Errorf("dataset name is required")
	}
	if len(records) == 0 {
		return nil
	}

	conn := s.conn(ctx)
	var next int
	err := conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq) + 1, 0) FROM procurement_records WHERE dataset = ?`, dataset,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("read next sequence: %w", err)
	}

	stmt, err := conn.PrepareContext(ctx, `
		INSERT INTO procurement_records (
			id, dataset, seq, object_name, category_code, value_excl_tax,
			value_incl_tax, initiation_date, completion_date, financing_source, imported_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	importedAt := s.now()
	for i, record := range records {
		id := record.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			id,
			dataset,
			next+i,
			record.ObjectName,
			record.CategoryCode,
			record.ValueExclTax,
			record.ValueInclTax,
			record.InitiationDate,
			record.CompletionDate,
			record.FinancingSource,
			importedAt,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return nil
}

func (s *recordsStore) AddCategories(ctx context.Context, dataset string, entries []store.CategoryEntry) error {
	if dataset == "" {
		return fmt.Errorf("dataset name is required")
	}
	if len(entries) == 0 {
		return nil
	}

	stmt, err := s.conn(ctx).PrepareContext(ctx, `
		INSERT OR REPLACE INTO procurement_categories (dataset, code, name_local, name_english)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, dataset, entry.Code, entry.NameLocal, entry.NameEnglish); err != nil {
			return fmt.Errorf("insert category %s: %w", entry.Code, err)
		}
	}
	return nil
}

func (s *recordsStore) Records(ctx context.Context, dataset string) ([]store.ProcurementRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dataset, object_name, category_code, value_excl_tax, value_incl_tax,
		       initiation_date, completion_date, financing_source, imported_at
		FROM procurement_records
		WHERE dataset = ?
		ORDER BY seq`, dataset)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]store.ProcurementRecord, 0)
	for rows.Next() {
		var r store.ProcurementRecord
		if err := rows.Scan(
			&r.ID, &r.Dataset, &r.ObjectName, &r.CategoryCode, &r.ValueExclTax, &r.ValueInclTax,
			&r.InitiationDate, &r.CompletionDate, &r.FinancingSource, &r.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *recordsStore) Categories(ctx context.Context, dataset string) ([]store.CategoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dataset, code, name_local, name_english
		FROM procurement_categories
		WHERE dataset = ?
		ORDER BY code`, dataset)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	entries := make([]store.CategoryEntry, 0)
	for rows.Next() {
		var e store.CategoryEntry
		if err := rows.Scan(&e.Dataset, &e.Code, &e.NameLocal, &e.NameEnglish); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *recordsStore) Datasets(ctx context.Context) ([]store.DatasetStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dataset, COUNT(*), MAX(imported_at)
		FROM procurement_records
		GROUP BY dataset
		ORDER BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	stats := make([]store.DatasetStats, 0)
	for rows.Next() {
		var (
			st   store.DatasetStats
			last sql.NullTime
		)
		if err := rows.Scan(&st.Dataset, &st.RecordsCount, &last); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		if last.Valid {
			t := last.Time
			st.LastImportAt = &t
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *recordsStore) DeleteDataset(ctx context.Context, dataset string) error {
	conn := s.conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM procurement_records WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM procurement_categories WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}
