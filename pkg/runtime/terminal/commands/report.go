package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/procurement-atlas/pkg/services/analytics"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	env            *Env
	profile        string
	recordsPath    string
	categoriesPath string
	output         string
	format         string
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the procurement analytics report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profile, "profile", "", "Source profile from the profiles file")
	cmd.Flags().StringVar(&rc.recordsPath, "records", "", "Records file (csv, xlsx or json)")
	cmd.Flags().StringVar(&rc.categoriesPath, "categories", "", "Category table file (csv, xlsx or json)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&rc.format, "format", "text", "Output format: text, json or xlsx")

	cmd.MarkFlagsMutuallyExclusive("profile", "records")
	cmd.MarkFlagsOneRequired("profile", "records")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if rc.format == "xlsx" && rc.output == "" {
		return fmt.Errorf("xlsx output requires --output")
	}

	src, err := rc.openSource(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close source")
		}
	}()

	records, categories, err := source.Load(ctx, src)
	if err != nil {
		return err
	}
	logger.Info().Int("records", len(records)).Int("categories", len(categories)).Msg("procurement data loaded")

	report, err := analytics.NewGenerator(rc.env.reportSettings()).Generate(ctx, records, categories)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	out := cmd.OutOrStdout()
	if rc.output != "" {
		f, err := os.Create(rc.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := rc.write(out, report); err != nil {
		return err
	}
	if rc.output != "" {
		logger.Info().Str("path", rc.output).Msg("report written")
	}
	return nil
}

func (rc *ReportCmd) openSource(cmd *cobra.Command) (source.Source, error) {
	if rc.profile == "" {
		return source.NewFileSource(rc.recordsPath, rc.categoriesPath), nil
	}

	profiles, err := rc.env.profiles()
	if err != nil {
		return nil, err
	}
	profile, err := profiles.GetProfile(cmd.Context(), rc.profile)
	if err != nil {
		return nil, err
	}
	return rc.env.Sources.Open(cmd.Context(), profile)
}

func (rc *ReportCmd) write(out io.Writer, report *domain.Report) error {
	switch rc.format {
	case "text":
		return export.NewReporter(out).Handle(report)
	case "json":
		return export.NewReporter(out).HandleJSON(report)
	case "xlsx":
		return export.WriteWorkbook(out, report)
	default:
		return fmt.Errorf("unsupported format %q", rc.format)
	}
}
