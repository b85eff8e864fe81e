package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// payoffHeader is the column order of exported payoff tables.
var payoffHeader = []string{"c", "L", "instance", "realization", "payoff"}

// ExportPayoffsCSV writes rows as CSV with a header line.
func ExportPayoffsCSV(w io.Writer, rows []PayoffRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(payoffHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatFloat(r.C, 'g', -1, 64),
			strconv.Itoa(r.L),
			strconv.Itoa(r.Instance),
			strconv.Itoa(r.Realization),
			strconv.FormatFloat(r.Payoff, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
