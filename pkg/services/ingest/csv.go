package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// readCSVRows reads every row of a CSV document. The delimiter is sniffed from
// the first line: semicolons win over commas, as exported by Romanian locales.
func readCSVRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if line, _, _ := strings.Cut(string(first), "\n"); strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}
