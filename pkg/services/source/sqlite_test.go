package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSource(t *testing.T) {
	// Given a SQLite export holding the procurement tables
	path := filepath.Join(t.TempDir(), "export.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE procurement_records (
			dataset TEXT, object_name TEXT, category_code TEXT, value_excl_tax REAL,
			value_incl_tax REAL, initiation_date TEXT, completion_date TEXT, financing_source TEXT)`,
		`CREATE TABLE procurement_categories (dataset TEXT, code TEXT, name_local TEXT, name_english TEXT)`,
		`INSERT INTO procurement_records VALUES ('2024', 'Fuel', '09130000-9', 1000, 1190, '2024-02-01', NULL, 'Buget local')`,
		`INSERT INTO procurement_records VALUES ('2023', 'Old', NULL, 5, 5, NULL, NULL, NULL)`,
		`INSERT INTO procurement_categories VALUES ('2024', '09130000-9', 'Petrol', NULL)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	// When
	src, err := SQLiteFactory(context.Background(), domain.SourceProfile{
		Name:     "export",
		Type:     domain.SourceTypeSQLite,
		Settings: map[string]string{"path": path, "dataset": "2024"},
	})
	require.NoError(t, err)
	defer src.Close()
	recs, cats, err := Load(context.Background(), src)

	// Then
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fuel", recs[0].ObjectName)
	assert.Equal(t, "", recs[0].CompletionDate)
	assert.Equal(t, "Petrol", cats["09130000-9"].NameLocal)

	_, err = SQLiteFactory(context.Background(), domain.SourceProfile{Name: "nopath", Type: domain.SourceTypeSQLite})
	assert.Error(t, err)
}
