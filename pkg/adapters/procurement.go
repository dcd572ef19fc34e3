package adapters

import (
	"database/sql"

	"github.com/de-tools/procurement-atlas/pkg/models/api"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/models/store"
)

func MapStoreRecordToDomain(r store.ProcurementRecord) domain.ProcurementRecord {
	return domain.ProcurementRecord{
		ObjectName:      r.ObjectName.String,
		CategoryCode:    r.CategoryCode.String,
		ValueExclTax:    r.ValueExclTax.Float64,
		ValueInclTax:    r.ValueInclTax.Float64,
		InitiationDate:  r.InitiationDate.String,
		CompletionDate:  r.CompletionDate.String,
		FinancingSource: r.FinancingSource.String,
	}
}

func MapDomainRecordToStore(dataset string, r domain.ProcurementRecord) store.ProcurementRecord {
	return store.ProcurementRecord{
		Dataset:         dataset,
		ObjectName:      nullString(r.ObjectName),
		CategoryCode:    nullString(r.CategoryCode),
		ValueExclTax:    sql.NullFloat64{Float64: r.ValueExclTax, Valid: true},
		ValueInclTax:    sql.NullFloat64{Float64: r.ValueInclTax, Valid: true},
		InitiationDate:  nullString(r.InitiationDate),
		CompletionDate:  nullString(r.CompletionDate),
		FinancingSource: nullString(r.FinancingSource),
	}
}

func MapStoreCategoriesToDomain(entries []store.CategoryEntry) domain.CategoryTable {
	table := make(domain.CategoryTable, len(entries))
	for _, e := range entries {
		table[e.Code] = domain.CategoryEntry{
			Code:        e.Code,
			NameLocal:   e.NameLocal.String,
			NameEnglish: e.NameEnglish.String,
		}
	}
	return table
}

func MapDomainCategoryToStore(dataset string, e domain.CategoryEntry) store.CategoryEntry {
	return store.CategoryEntry{
		Dataset:     dataset,
		Code:        e.Code,
		NameLocal:   nullString(e.NameLocal),
		NameEnglish: nullString(e.NameEnglish),
	}
}

func MapApiRecordsToDomain(records []api.ProcurementRecord) []domain.ProcurementRecord {
	out := make([]domain.ProcurementRecord, 0, len(records))
	for _, r := range records {
		out = append(out, domain.ProcurementRecord{
			ObjectName:      r.ObjectName,
			CategoryCode:    r.CategoryCode,
			ValueExclTax:    r.ValueExclTax,
			ValueInclTax:    r.ValueInclTax,
			InitiationDate:  r.InitiationDate,
			CompletionDate:  r.CompletionDate,
			FinancingSource: r.FinancingSource,
		})
	}
	return out
}

func MapApiCategoriesToDomain(entries []api.CategoryEntry) domain.CategoryTable {
	table := make(domain.CategoryTable, len(entries))
	for _, e := range entries {
		table[e.Code] = domain.CategoryEntry{
			Code:        e.Code,
			NameLocal:   e.NameLocal,
			NameEnglish: e.NameEnglish,
		}
	}
	return table
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
