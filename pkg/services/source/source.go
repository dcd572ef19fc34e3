// Package source opens the procurement data behind a configured profile.
package source

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
)

// Source yields the record set and category table of one profile.
type Source interface {
	Records(ctx context.Context) ([]domain.ProcurementRecord, error)
	Categories(ctx context.Context) (domain.CategoryTable, error)
	Close() error
}

// Factory opens a Source for a profile of the type it was registered under.
type Factory func(ctx context.Context, profile domain.SourceProfile) (Source, error)

// Registry manages source factories by profile type
type Registry interface {
	// Register adds a factory for a profile type
	Register(sourceType domain.SourceType, factory Factory) error
	// Open creates the source described by the profile
	Open(ctx context.Context, profile domain.SourceProfile) (Source, error)
	// ListTypes returns the registered profile types in sorted order
	ListTypes() []domain.SourceType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceType]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceType]Factory),
	}
}

func (r *registry) Register(sourceType domain.SourceType, factory Factory) error {
	if sourceType == "" {
		return fmt.Errorf("source type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q is already registered", sourceType)
	}

	r.factories[sourceType] = factory
	return nil
}

func (r *registry) Open(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source type %q is not registered", profile.Type)
	}

	src, err := factory(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", profile, err)
	}
	return src, nil
}

func (r *registry) ListTypes() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// NewDefaultRegistry registers every built-in source type. DuckDB profiles
// without a db_path use defaultDbPath.
func NewDefaultRegistry(defaultDbPath string) Registry {
	r := NewRegistry()
	for t, f := range map[domain.SourceType]Factory{
		domain.SourceTypeFile:       FileFactory,
		domain.SourceTypeS3:         S3Factory,
		domain.SourceTypeAzure:      AzureFactory,
		domain.SourceTypeDuckDB:     DuckDBFactory(defaultDbPath),
		domain.SourceTypeSnowflake:  SnowflakeFactory,
		domain.SourceTypeDatabricks: DatabricksFactory,
		domain.SourceTypeSQLite:     SQLiteFactory,
		domain.SourceTypeSheets:     SheetsFactory,
	} {
		_ = r.Register(t, f)
	}
	return r
}

// Load reads records and categories from a source in one go.
func Load(ctx context.Context, src Source) ([]domain.ProcurementRecord, domain.CategoryTable, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	categories, err := src.Categories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return records, categories, nil
}

func requireSetting(profile domain.SourceProfile, key string) (string, error) {
	v := profile.Get(key, "")
	if v == "" {
		return "", fmt.Errorf("profile %s: %q is required", profile.Name, key)
	}
	return v, nil
}
