package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RecordsTableSchema = `
	CREATE TABLE IF NOT EXISTS procurement_records (
		id VARCHAR NOT NULL,
		dataset VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		object_name VARCHAR,
		category_code VARCHAR,
		value_excl_tax DOUBLE,
		value_incl_tax DOUBLE,
		initiation_date VARCHAR,
		completion_date VARCHAR,
		financing_source VARCHAR,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (dataset, id)
	);
`
const CategoriesTableSchema = `
	CREATE TABLE IF NOT EXISTS procurement_categories (
		dataset VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		name_local VARCHAR,
		name_english VARCHAR,
		PRIMARY KEY (dataset, code)
	);
`

var bootQueries = []string{
	RecordsTableSchema,
	CategoriesTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
