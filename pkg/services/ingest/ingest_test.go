package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"1,234.56", 1234.56},
		{"1.234.567", 1234567},
		{"1,234,567", 1234567},
		{"12,5", 12.5},
		{"12,500", 12500},
		{"15 000,00 lei", 15000},
		{"RON 2.500", 2500},
		{"12.500", 12500},
		{"0.125", 0.125},
		{"12.5", 12.5},
		{"1.2345", 1.2345},
		{"", 0},
		{"n/a", 0},
		{"-500", 0},
		{"1-2-3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.in), 1e-9)
		})
	}
}

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"plan.csv":       FormatCSV,
		"PLAN.XLSX":      FormatXLSX,
		"data/plan.json": FormatJSON,
		"export.txt":     FormatCSV,
	}
	for name, want := range tests {
		got, err := FormatFromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatFromName("plan.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeRecords_CSVRomanianHeaders(t *testing.T) {
	// Given a semicolon separated export with Romanian headers
	doc := "\ufeffObiectul achiziției;Cod CPV;Valoare estimată fără TVA;Valoare cu TVA;Data estimată inițiere;Data estimată finalizare;Sursa de finanțare\n" +
		"Hârtie copiator;30197630-1;12.500,00;14.875,00;martie 2024;aprilie 2024;Buget local\n" +
		";;;;;;\n" +
		"Servicii curățenie;90910000-9;80000;95200;;15/09/2024;\n"

	// When
	records, err := DecodeRecords(FormatCSV, strings.NewReader(doc))

	// Then
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Hârtie copiator", records[0].ObjectName)
	assert.Equal(t, "30197630-1", records[0].CategoryCode)
	assert.InDelta(t, 12500.0, records[0].ValueExclTax, 1e-9)
	assert.InDelta(t, 14875.0, records[0].ValueInclTax, 1e-9)
	assert.Equal(t, "martie 2024", records[0].InitiationDate)
	assert.Equal(t, "aprilie 2024", records[0].CompletionDate)
	assert.Equal(t, "Buget local", records[0].FinancingSource)

	assert.Equal(t, "", records[1].InitiationDate)
	assert.Equal(t, "15/09/2024", records[1].CompletionDate)
	assert.Equal(t, "", records[1].FinancingSource)
}

func TestDecodeRecords_DotGroupedThousands(t *testing.T) {
	doc := "Denumire;Valoare fara TVA;Valoare cu TVA\nToner;12.500;14.875\nCapsator;0.125;0.150\n"

	records, err := DecodeRecords(FormatCSV, strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 12500.0, records[0].ValueExclTax, 1e-9)
	assert.InDelta(t, 14875.0, records[0].ValueInclTax, 1e-9)
	assert.InDelta(t, 0.125, records[1].ValueExclTax, 1e-9)
}

func TestDecodeRecords_MissingInclusiveValueCopiesExclusive(t *testing.T) {
	doc := "name,value\nLaptop,3500.50\n"

	records, err := DecodeRecords(FormatCSV, strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 3500.50, records[0].ValueExclTax, 1e-9)
	assert.InDelta(t, 3500.50, records[0].ValueInclTax, 1e-9)
}

func TestDecodeRecords_IncompatibleFile(t *testing.T) {
	doc := "foo,bar\n1,2\n"

	_, err := DecodeRecords(FormatCSV, strings.NewReader(doc))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatibleFile)
	assert.Contains(t, err.Error(), "object name")
	assert.Contains(t, err.Error(), "value without tax")
}

func TestDecodeRecords_EmptyDocument(t *testing.T) {
	records, err := DecodeRecords(FormatCSV, strings.NewReader(""))

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDecodeRecords_JSON(t *testing.T) {
	doc := `{"records":[{"object_name":"Fuel","category_code":"09130000-9","value_excl_tax":1000,"value_incl_tax":1190,"initiation_date":"2024-02-01"}]}`

	records, err := DecodeRecords(FormatJSON, strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fuel", records[0].ObjectName)
	assert.Equal(t, "2024-02-01", records[0].InitiationDate)
	assert.InDelta(t, 1190.0, records[0].ValueInclTax, 1e-9)

	_, err = DecodeRecords(FormatJSON, strings.NewReader("{"))
	assert.Error(t, err)
}

func TestDecodeRecords_XLSX(t *testing.T) {
	// Given a workbook built in memory
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Denumire", "CPV", "Valoare fara TVA", "Data initiere"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Mobilier", "39100000-3", "45000", "iulie"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// When
	records, err := DecodeRecords(FormatXLSX, bytes.NewReader(buf.Bytes()))

	// Then
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mobilier", records[0].ObjectName)
	assert.Equal(t, "39100000-3", records[0].CategoryCode)
	assert.InDelta(t, 45000.0, records[0].ValueExclTax, 1e-9)
	assert.Equal(t, "iulie", records[0].InitiationDate)
}

func TestDecodeCategories(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		doc := "code,name_ro,name_en\n30197630-1,Hârtie de imprimantă,Printing paper\n,,\n"

		table, err := DecodeCategories(FormatCSV, strings.NewReader(doc))

		require.NoError(t, err)
		require.Len(t, table, 1)
		entry := table["30197630-1"]
		assert.Equal(t, "Hârtie de imprimantă", entry.NameLocal)
		assert.Equal(t, "Printing paper", entry.NameEnglish)
	})

	t.Run("json", func(t *testing.T) {
		doc := `{"categories":[{"code":"301","name_english":"Office machinery"}]}`

		table, err := DecodeCategories(FormatJSON, strings.NewReader(doc))

		require.NoError(t, err)
		assert.Equal(t, "Office machinery", table["301"].NameEnglish)
	})

	t.Run("missing code column", func(t *testing.T) {
		_, err := DecodeCategories(FormatCSV, strings.NewReader("label\nx\n"))

		assert.ErrorIs(t, err, ErrIncompatibleFile)
	})
}

func TestLoadRecordsAndCategories(t *testing.T) {
	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "plan.csv")
	require.NoError(t, os.WriteFile(recordsPath, []byte("object,value\nToner,250\n"), 0o644))

	records, err := LoadRecords(recordsPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	table, err := LoadCategories("")
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)

	_, err = LoadRecords(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
