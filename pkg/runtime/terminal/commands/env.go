package commands

import (
	"github.com/de-tools/procurement-atlas/pkg/services/analytics"
	"github.com/de-tools/procurement-atlas/pkg/services/config"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
)

// Env is shared by all commands. Config is populated before a command runs.
type Env struct {
	Config  *config.AppConfig
	Sources source.Registry
}

func (e *Env) reportSettings() analytics.Settings {
	settings := analytics.DefaultSettings()
	if e.Config == nil {
		return settings
	}
	if e.Config.Report.Title != "" {
		settings.Title = e.Config.Report.Title
	}
	settings.Currency = e.Config.Report.Currency
	return settings
}

func (e *Env) profiles() (config.Registry, error) {
	return config.NewRegistry(e.Config.ProfilesPath)
}
