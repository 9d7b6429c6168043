package iostat

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fred-chen/plotters/pkg/records"
)

// Cell timestamps use a layout without spaces so the table stays
// whitespace-separated.
const tableTimeLayout = "2006-01-02T15:04:05"

// WriteTable materializes a record list as a whitespace-separated table
// with columns [Seq., Time, <header columns>]. Cells a record does not
// carry, including Time when the log had no date stamps, are written as
// "-".
func WriteTable(w io.Writer, cols []string, recs []records.Record) error {
	header := append([]string{"Seq.", "Time"}, cols...)
	if _, err := fmt.Fprintln(w, strings.Join(header, " ")); err != nil {
		return err
	}
	for _, r := range recs {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(r.Seq))
		if r.Time != nil {
			row = append(row, r.Time.Format(tableTimeLayout))
		} else {
			row = append(row, "-")
		}
		for i, col := range cols {
			if i == 0 {
				row = append(row, r.Device)
				continue
			}
			if v, ok := r.Metrics[col]; ok {
				row = append(row, v)
			} else {
				row = append(row, "-")
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
