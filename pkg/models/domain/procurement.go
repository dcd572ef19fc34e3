package domain

// ProcurementRecord is a single procurement line as decoded by ingestion.
// Optional text fields are empty when absent.
type ProcurementRecord struct {
	ObjectName      string
	CategoryCode    string  // CPV-style code, may be empty
	ValueExclTax    float64 // 0 when the upstream value was unparsable
	ValueInclTax    float64
	InitiationDate  string // free text, arbitrary format
	CompletionDate  string
	FinancingSource string
}

// CategoryEntry describes one row of the category reference table.
type CategoryEntry struct {
	Code        string
	NameLocal   string
	NameEnglish string
}

// CategoryTable is the category reference table keyed by code.
type CategoryTable map[string]CategoryEntry
