package store

import (
	"database/sql"
	"time"
)

// ProcurementRecord is a procurement_records row. Text columns are nullable
// in warehouse sources, so they are scanned as sql.NullString.
type ProcurementRecord struct {
	ID              string
	Dataset         string
	ObjectName      sql.NullString
	CategoryCode    sql.NullString
	ValueExclTax    sql.NullFloat64
	ValueInclTax    sql.NullFloat64
	InitiationDate  sql.NullString
	CompletionDate  sql.NullString
	FinancingSource sql.NullString
	ImportedAt      time.Time
}

type CategoryEntry struct {
	Dataset     string
	Code        string
	NameLocal   sql.NullString
	NameEnglish sql.NullString
}

type DatasetStats struct {
	Dataset      string
	RecordsCount int64
	LastImportAt *time.Time
}
