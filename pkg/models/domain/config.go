package domain

import "fmt"

type SourceType string

const (
	SourceTypeFile       SourceType = "file"
	SourceTypeS3         SourceType = "s3"
	SourceTypeAzure      SourceType = "azure"
	SourceTypeDuckDB     SourceType = "duckdb"
	SourceTypeSnowflake  SourceType = "snowflake"
	SourceTypeDatabricks SourceType = "databricks"
	SourceTypeSQLite     SourceType = "sqlite"
	SourceTypeSheets     SourceType = "sheets"
)

// SourceProfile names a configured place procurement data is read from.
type SourceProfile struct {
	Name     string
	Type     SourceType
	Settings map[string]string
}

func (p SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Type, p.Name)
}

// Get returns a profile setting or def when it is not set.
func (p SourceProfile) Get(key, def string) string {
	if v, ok := p.Settings[key]; ok && v != "" {
		return v
	}
	return def
}
