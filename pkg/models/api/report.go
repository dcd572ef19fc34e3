package api

type ReportSection struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

type Report struct {
	Title    string          `json:"title"`
	Text     string          `json:"text"`
	Sections []ReportSection `json:"sections"`
}

type Profile struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Error struct {
	Error string `json:"error"`
}
