package commands

import (
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb"
	"github.com/de-tools/procurement-atlas/pkg/store/duckdb/records"
	"github.com/spf13/cobra"
)

func NewDatasetsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List datasets imported into the local DuckDB store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := duckdb.NewDB(duckdb.Settings{DbPath: env.Config.Storage.DbPath})
			if err != nil {
				return fmt.Errorf("failed to create DuckDB instance: %w", err)
			}
			defer db.Close()

			recordStore, err := records.NewStore(db)
			if err != nil {
				return err
			}
			stats, err := recordStore.Datasets(cmd.Context())
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No datasets imported yet")
				return nil
			}
			return export.NewReporter(cmd.OutOrStdout()).Datasets(stats)
		},
	}
}
