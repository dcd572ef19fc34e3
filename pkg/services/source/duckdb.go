package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb/records"
)

type duckdbSource struct {
	db      *sql.DB
	store   records.Store
	dataset string
}

// NewDuckDBSource reads one imported dataset. The caller keeps ownership of db.
func NewDuckDBSource(store records.Store, dataset string) Source {
	return &duckdbSource{store: store, dataset: dataset}
}

// DuckDBFactory expects a "dataset" setting; "db_path" defaults to defaultDbPath.
func DuckDBFactory(defaultDbPath string) Factory {
	return func(_ context.Context, profile domain.SourceProfile) (Source, error) {
		dataset, err := requireSetting(profile, "dataset")
		if err != nil {
			return nil, err
		}

		db, err := duckdb.NewDB(duckdb.Settings{DbPath: profile.Get("db_path", defaultDbPath)})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := records.NewStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &duckdbSource{db: db, store: store, dataset: dataset}, nil
	}
}

func (s *duckdbSource) Records(ctx context.Context) ([]domain.ProcurementRecord, error) {
	rows, err := s.store.Records(ctx, s.dataset)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProcurementRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, adapters.MapStoreRecordToDomain(r))
	}
	return out, nil
}

func (s *duckdbSource) Categories(ctx context.Context) (domain.CategoryTable, error) {
	entries, err := s.store.Categories(ctx, s.dataset)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreCategoriesToDomain(entries), nil
}

func (s *duckdbSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
