package api

type ProcurementRecord struct {
	ObjectName      string  `json:"object_name"`
	CategoryCode    string  `json:"category_code,omitempty"`
	ValueExclTax    float64 `json:"value_excl_tax"`
	ValueInclTax    float64 `json:"value_incl_tax"`
	InitiationDate  string  `json:"initiation_date,omitempty"`
	CompletionDate  string  `json:"completion_date,omitempty"`
	FinancingSource string  `json:"financing_source,omitempty"`
}

type CategoryEntry struct {
	Code        string `json:"code"`
	NameLocal   string `json:"name_local,omitempty"`
	NameEnglish string `json:"name_english,omitempty"`
}

// Dataset is the JSON document accepted by the report endpoint and by file ingestion.
type Dataset struct {
	Records    []ProcurementRecord `json:"records"`
	Categories []CategoryEntry     `json:"categories"`
}
