package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/store"
	"github.com/de-tools/procurement-atlas/pkg/services/ingest"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb/records"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	env            *Env
	dataset        string
	recordsPath    string
	categoriesPath string
	replace        bool
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import procurement files into the local DuckDB store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dataset, "dataset", "", "Dataset name to import into")
	cmd.Flags().StringVar(&ic.recordsPath, "records", "", "Records file (csv, xlsx or json)")
	cmd.Flags().StringVar(&ic.categoriesPath, "categories", "", "Category table file (csv, xlsx or json)")
	cmd.Flags().BoolVar(&ic.replace, "replace", false, "Replace the dataset instead of appending to it")

	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	recs, err := ingest.LoadRecords(ic.recordsPath)
	if err != nil {
		return err
	}
	categories, err := ingest.LoadCategories(ic.categoriesPath)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.env.Config.Storage.DbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	recordStore, err := records.NewStore(db)
	if err != nil {
		return err
	}

	rows := make([]store.ProcurementRecord, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, adapters.MapDomainRecordToStore(ic.dataset, r))
	}
	entries := make([]store.CategoryEntry, 0, len(categories))
	for _, e := range categories {
		entries = append(entries, adapters.MapDomainCategoryToStore(ic.dataset, e))
	}

	err = duckdb.RunInTransaction(ctx, db, func(ctx context.Context) error {
		if ic.replace {
			if err := recordStore.DeleteDataset(ctx, ic.dataset); err != nil {
				return err
			}
		}
		if err := recordStore.AddRecords(ctx, ic.dataset, rows); err != nil {
			return err
		}
		return recordStore.AddCategories(ctx, ic.dataset, entries)
	})
	if err != nil {
		return fmt.Errorf("failed to import dataset %s: %w", ic.dataset, err)
	}

	logger.Info().Str("dataset", ic.dataset).Int("records", len(rows)).Int("categories", len(entries)).Msg("dataset imported")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records and %d categories into dataset %q\n",
		len(rows), len(entries), ic.dataset)
	return nil
}
