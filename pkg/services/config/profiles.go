package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var ErrProfileNotFound = errors.New("profile not found")

// Registry lists the source profiles configured in a .procurementcfg file.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.SourceProfile, error)
	GetProfile(ctx context.Context, name string) (domain.SourceProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.SourceProfile, error) {
	var profiles []domain.SourceProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := profileFromSection(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.SourceProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.SourceProfile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return profileFromSection(section)
}

func profileFromSection(section *ini.Section) (domain.SourceProfile, error) {
	settings := section.KeysHash()
	kind := settings["type"]
	delete(settings, "type")

	switch t := domain.SourceType(kind); t {
	case domain.SourceTypeFile, domain.SourceTypeS3, domain.SourceTypeAzure, domain.SourceTypeDuckDB,
		domain.SourceTypeSnowflake, domain.SourceTypeDatabricks, domain.SourceTypeSQLite,
		domain.SourceTypeSheets:
		return domain.SourceProfile{Name: section.Name(), Type: t, Settings: settings}, nil
	case "":
		return domain.SourceProfile{}, fmt.Errorf("profile %s has no type", section.Name())
	default:
		return domain.SourceProfile{}, fmt.Errorf("profile %s has unknown type %q", section.Name(), kind)
	}
}
