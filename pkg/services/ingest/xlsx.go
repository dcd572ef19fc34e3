package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSXRows returns the rows of the first worksheet of a workbook.
func readXLSXRows(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrIncompatibleFile)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
