package source

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/models/store"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Records(context.Context) ([]domain.ProcurementRecord, error) {
	return []domain.ProcurementRecord{{ObjectName: "stub"}}, nil
}
func (stubSource) Categories(context.Context) (domain.CategoryTable, error) {
	return domain.CategoryTable{}, nil
}
func (stubSource) Close() error { return nil }

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	stub := func(context.Context, domain.SourceProfile) (Source, error) { return stubSource{}, nil }

	t.Run("register and open", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(domain.SourceTypeFile, stub))

		src, err := r.Open(ctx, domain.SourceProfile{Name: "p", Type: domain.SourceTypeFile})
		require.NoError(t, err)
		recs, _, err := Load(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, "stub", recs[0].ObjectName)
	})

	t.Run("rejects duplicates and empty input", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(domain.SourceTypeFile, stub))
		assert.Error(t, r.Register(domain.SourceTypeFile, stub))
		assert.Error(t, r.Register("", stub))
		assert.Error(t, r.Register(domain.SourceTypeS3, nil))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewRegistry().Open(ctx, domain.SourceProfile{Name: "p", Type: domain.SourceTypeS3})
		assert.Error(t, err)
	})

	t.Run("factory errors are wrapped with the profile", func(t *testing.T) {
		r := NewRegistry()
		boom := errors.New("boom")
		require.NoError(t, r.Register(domain.SourceTypeS3, func(context.Context, domain.SourceProfile) (Source, error) {
			return nil, boom
		}))
		_, err := r.Open(ctx, domain.SourceProfile{Name: "bucket", Type: domain.SourceTypeS3})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "s3:bucket")
	})

	t.Run("default registry lists every type", func(t *testing.T) {
		types := NewDefaultRegistry("atlas.db").ListTypes()
		assert.Equal(t, []domain.SourceType{
			domain.SourceTypeAzure,
			domain.SourceTypeDatabricks,
			domain.SourceTypeDuckDB,
			domain.SourceTypeFile,
			domain.SourceTypeS3,
			domain.SourceTypeSheets,
			domain.SourceTypeSnowflake,
			domain.SourceTypeSQLite,
		}, types)
	})
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "plan.csv")
	categoriesPath := filepath.Join(dir, "cpv.csv")
	require.NoError(t, os.WriteFile(recordsPath, []byte("object,value,cpv\nToner,250,30125100-2\n"), 0o644))
	require.NoError(t, os.WriteFile(categoriesPath, []byte("code,name_en\n30125100-2,Toner cartridges\n"), 0o644))

	src, err := FileFactory(context.Background(), domain.SourceProfile{
		Name:     "plan",
		Type:     domain.SourceTypeFile,
		Settings: map[string]string{"records": recordsPath, "categories": categoriesPath},
	})
	require.NoError(t, err)
	defer src.Close()

	recs, cats, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "30125100-2", recs[0].CategoryCode)
	assert.Equal(t, "Toner cartridges", cats["30125100-2"].NameEnglish)

	_, err = FileFactory(context.Background(), domain.SourceProfile{Name: "empty", Type: domain.SourceTypeFile})
	assert.Error(t, err)
}

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Bucket), aws.ToString(params.Key))
	if body, ok := args.Get(0).(string); ok {
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Source(t *testing.T) {
	ctx := context.Background()
	client := new(mockObjectGetter)
	client.On("GetObject", ctx, "procurement", "2024/plan.json").
		Return(`{"records":[{"object_name":"Fuel","value_excl_tax":1000,"value_incl_tax":1190}]}`, nil)
	client.On("GetObject", ctx, "procurement", "2024/cpv.csv").
		Return("code,name_local\n09130000-9,Petrol\n", nil)

	src := NewS3Source(client, "procurement", "2024/plan.json", "2024/cpv.csv")
	recs, cats, err := Load(ctx, src)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fuel", recs[0].ObjectName)
	assert.Equal(t, "Petrol", cats["09130000-9"].NameLocal)
	client.AssertExpectations(t)
}

func TestS3Source_Errors(t *testing.T) {
	ctx := context.Background()
	client := new(mockObjectGetter)
	client.On("GetObject", ctx, "procurement", "plan.csv").Return(nil, errors.New("access denied"))

	_, err := NewS3Source(client, "procurement", "plan.csv", "").Records(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://procurement/plan.csv")

	cats, err := NewS3Source(client, "procurement", "plan.csv", "").Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = NewS3Source(client, "procurement", "plan.pdf", "").Records(ctx)
	assert.Error(t, err)

	_, err = S3Factory(ctx, domain.SourceProfile{Name: "nobucket", Type: domain.SourceTypeS3})
	assert.Error(t, err)
}

func TestDuckDBSource(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "atlas.db")

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	require.NoError(t, err)
	st, err := records.NewStore(db)
	require.NoError(t, err)
	require.NoError(t, st.AddRecords(ctx, "plan", []store.ProcurementRecord{{
		ObjectName:   sql.NullString{String: "Desks", Valid: true},
		ValueExclTax: sql.NullFloat64{Float64: 9000, Valid: true},
		ValueInclTax: sql.NullFloat64{Float64: 10710, Valid: true},
	}}))
	require.NoError(t, st.AddCategories(ctx, "plan", []store.CategoryEntry{{
		Code:      "39100000-3",
		NameLocal: sql.NullString{String: "Mobilier", Valid: true},
	}}))
	require.NoError(t, db.Close())

	src, err := DuckDBFactory(dbPath)(ctx, domain.SourceProfile{
		Name:     "local",
		Type:     domain.SourceTypeDuckDB,
		Settings: map[string]string{"dataset": "plan"},
	})
	require.NoError(t, err)
	defer src.Close()

	recs, cats, err := Load(ctx, src)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Desks", recs[0].ObjectName)
	assert.Equal(t, "", recs[0].InitiationDate)
	assert.Equal(t, "Mobilier", cats["39100000-3"].NameLocal)
}

func TestSQLSource(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM proc.records WHERE dataset = ?")).
		WithArgs("2024").
		WillReturnRows(sqlmock.NewRows([]string{
			"object_name", "category_code", "value_excl_tax", "value_incl_tax",
			"initiation_date", "completion_date", "financing_source",
		}).AddRow("Fuel", "09130000-9", 1000.0, 1190.0, "2024-02-01", nil, "PNRR"))
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM procurement_categories WHERE dataset = ?")).
		WithArgs("2024").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name_local", "name_english"}))
	sqlMock.ExpectClose()

	src, err := newSQLSource(db, domain.SourceProfile{
		Name:     "wh",
		Type:     domain.SourceTypeSnowflake,
		Settings: map[string]string{"records_table": "proc.records", "dataset": "2024"},
	})
	require.NoError(t, err)

	recs, cats, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "PNRR", recs[0].FinancingSource)
	assert.Equal(t, "", recs[0].CompletionDate)
	assert.Empty(t, cats)

	require.NoError(t, src.Close())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDatabricksDSN(t *testing.T) {
	dsn, err := DatabricksDSN(domain.SourceProfile{
		Name: "dbx",
		Type: domain.SourceTypeDatabricks,
		Settings: map[string]string{
			"host":      "adb-123.azuredatabricks.net:443",
			"token":     "dapi",
			"http_path": "/sql/1.0/warehouses/wh",
			"catalog":   "finance",
			"schema":    "procurement",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "token:dapi@adb-123.azuredatabricks.net:443/sql/1.0/warehouses/wh?catalog=finance&schema=procurement", dsn)

	_, err = DatabricksDSN(domain.SourceProfile{Name: "dbx", Settings: map[string]string{"host": "h"}})
	assert.Error(t, err)
}

func TestSnowflakeFactory_RequiresCredentials(t *testing.T) {
	_, err := SnowflakeFactory(context.Background(), domain.SourceProfile{
		Name:     "wh",
		Type:     domain.SourceTypeSnowflake,
		Settings: map[string]string{"account": "acme"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}
