package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// WriteWorkbook stores the report in an xlsx workbook, one line per row with
// the section number in the first column.
func WriteWorkbook(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, "A1", &[]any{"Section", report.Title}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, section := range report.Sections {
		for _, line := range strings.Split(strings.TrimRight(section.Text, "\n"), "\n") {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(reportSheet, cell, &[]any{section.Number, line}); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(reportSheet, "B", "B", 100); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
