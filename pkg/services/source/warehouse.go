package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	sqlstore "github.com/de-tools/procurement-atlas/pkg/store/sql"
	sf "github.com/snowflakedb/gosnowflake"
	_ "modernc.org/sqlite"
)

// sqlSource reads records through a warehouse connection it owns.
type sqlSource struct {
	db     *sql.DB
	reader sqlstore.Reader
}

func newSQLSource(db *sql.DB, profile domain.SourceProfile) (Source, error) {
	defaults := sqlstore.DefaultReaderSettings()
	reader, err := sqlstore.NewReader(db, sqlstore.ReaderSettings{
		RecordsTable:    profile.Get("records_table", defaults.RecordsTable),
		CategoriesTable: profile.Get("categories_table", defaults.CategoriesTable),
		Dataset:         profile.Get("dataset", ""),
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &sqlSource{db: db, reader: reader}, nil
}

// SnowflakeFactory expects "account", "user" and "password"; "database",
// "schema", "warehouse" and "role" are passed through to the driver.
func SnowflakeFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	cfg := &sf.Config{
		Account:   profile.Get("account", ""),
		User:      profile.Get("user", ""),
		Password:  profile.Get("password", ""),
		Database:  profile.Get("database", ""),
		Schema:    profile.Get("schema", ""),
		Warehouse: profile.Get("warehouse", ""),
		Role:      profile.Get("role", ""),
	}
	for _, key := range []string{"account", "user", "password"} {
		if _, err := requireSetting(profile, key); err != nil {
			return nil, err
		}
	}

	dsn, err := sf.DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}
	return newSQLSource(db, profile)
}

// DatabricksDSN builds a databricks-sql-go DSN from host, token and http_path.
func DatabricksDSN(profile domain.SourceProfile) (string, error) {
	host, err := requireSetting(profile, "host")
	if err != nil {
		return "", err
	}
	token, err := requireSetting(profile, "token")
	if err != nil {
		return "", err
	}
	httpPath, err := requireSetting(profile, "http_path")
	if err != nil {
		return "", err
	}

	dsn := fmt.Sprintf("token:%s@%s%s", token, host, httpPath)
	query := url.Values{}
	if catalog := profile.Get("catalog", ""); catalog != "" {
		query.Set("catalog", catalog)
	}
	if schema := profile.Get("schema", ""); schema != "" {
		query.Set("schema", schema)
	}
	if len(query) > 0 {
		dsn += "?" + query.Encode()
	}
	return dsn, nil
}

func DatabricksFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	dsn, err := DatabricksDSN(profile)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("databricks", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	return newSQLSource(db, profile)
}

// SQLiteFactory expects a "path" to a SQLite database holding the procurement tables.
func SQLiteFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	path, err := requireSetting(profile, "path")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return newSQLSource(db, profile)
}

func (s *sqlSource) Records(ctx context.Context) ([]domain.ProcurementRecord, error) {
	rows, err := s.reader.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProcurementRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, adapters.MapStoreRecordToDomain(r))
	}
	return out, nil
}

func (s *sqlSource) Categories(ctx context.Context) (domain.CategoryTable, error) {
	entries, err := s.reader.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreCategoriesToDomain(entries), nil
}

func (s *sqlSource) Close() error {
	return s.db.Close()
}
