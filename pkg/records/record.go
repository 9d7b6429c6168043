package records

import (
	"sort"
	"strconv"
	"time"
)

// Record is one measurement row for one device at one sampling interval.
// Metrics maps column names, as declared by the log's own header line, to
// the raw tokens of the data line. Time is nil when the source log carries
// no date-stamp lines; callers fall back to Seq for the x-axis.
type Record struct {
	Seq     int
	Time    *time.Time
	Device  string
	Metrics map[string]string
}

// Float returns the named metric parsed as a float64. The second return
// value is false when the column is absent or not numeric.
func (r Record) Float(col string) (float64, bool) {
	raw, ok := r.Metrics[col]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Devices returns the distinct device names present in recs, sorted.
func Devices(recs []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		if !seen[r.Device] {
			seen[r.Device] = true
			out = append(out, r.Device)
		}
	}
	sort.Strings(out)
	return out
}
