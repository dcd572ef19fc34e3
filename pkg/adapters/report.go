package adapters

import (
	"github.com/de-tools/procurement-atlas/pkg/models/api"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

func MapReportDomainToApi(r *domain.Report) api.Report {
	res := api.Report{
		Title:    r.Title,
		Text:     r.String(),
		Sections: make([]api.ReportSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, api.ReportSection{
			Number: s.Number,
			Title:  s.Title,
			Text:   s.Text,
		})
	}
	return res
}

func MapProfileDomainToApi(p domain.SourceProfile) api.Profile {
	return api.Profile{
		Name: p.Name,
		Type: string(p.Type),
	}
}
