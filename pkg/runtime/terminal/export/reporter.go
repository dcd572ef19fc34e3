package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/models/store"
	"github.com/dustin/go-humanize"
)

type TableConfig struct {
	NameWidth  int
	TypeWidth  int
	CountWidth int
	DateWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		TypeWidth:  12,
		CountWidth: 10,
		DateWidth:  20,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `{{.Header}}{{range .Sections}}{{.Text}}{{end}}`

// Handle prints the assembled report text.
func (c *Reporter) Handle(report *domain.Report) error {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, report)
}

// HandleJSON prints the report in its API shape.
func (c *Reporter) HandleJSON(report *domain.Report) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(adapters.MapReportDomainToApi(report))
}

func (c *Reporter) Profiles(profiles []domain.SourceProfile) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, kind string) string {
			return fmt.Sprintf("| %-*s | %-*s |", c.config.NameWidth, name, c.config.TypeWidth, kind)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2))
		},
		"str": func(t domain.SourceType) string { return string(t) },
	}

	tmpl := `{{separator}}
{{formatRow "Profile" "Type"}}
{{separator}}
{{range .}}{{formatRow .Name (str .Type)}}
{{end}}{{separator}}
`
	t, err := template.New("profiles").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, profiles)
}

func (c *Reporter) Datasets(stats []store.DatasetStats) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, count, last string) string {
			return fmt.Sprintf("| %-*s | %*s | %-*s |",
				c.config.NameWidth, name,
				c.config.CountWidth, count,
				c.config.DateWidth, last)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.CountWidth+2),
				strings.Repeat("-", c.config.DateWidth+2))
		},
		"count": humanize.Comma,
		"when": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.UTC().Format("2006-01-02 15:04:05")
		},
	}

	tmpl := `{{separator}}
{{formatRow "Dataset" "Records" "Last import (UTC)"}}
{{separator}}
{{range .}}{{formatRow .Dataset (count .RecordsCount) (when .LastImportAt)}}
{{end}}{{separator}}
`
	t, err := template.New("datasets").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, stats)
}
