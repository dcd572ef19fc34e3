package domain

import "strings"

// Report represents a complete analysis report
type Report struct {
	Title    string
	Header   string
	Sections []ReportSection
}

// ReportSection represents a numbered section of the report.
// Text holds the rendered section, heading included, and ends with one blank line.
type ReportSection struct {
	Number int
	Title  string
	Text   string
}

// String assembles the banner and all sections in order.
func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString(r.Header)
	for _, s := range r.Sections {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
