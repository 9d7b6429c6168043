package iostat

import (
	"bufio"
	"io"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/fred-chen/plotters/pkg/records"
)

// Header lines start with "Dev" ("Device" or the older "Device:").
const headerPrefix = "Dev"

// Liveness message interval for long logs, in sampling intervals.
const progressEvery = 10000

// Date-stamp lines look like "Mon Aug  4 10:00:00 UTC 2025". Some iostat
// builds drop the zone, hence the ANSIC fallback.
var timestampLayouts = []string{time.UnixDate, time.ANSIC}

// Options control tokenization.
type Options struct {
	// OmitFirst drops every data line of the first header cycle after
	// each date-stamp reset. iostat's first report covers the whole time
	// since boot rather than one sampling interval.
	OmitFirst bool
}

// Result is the tokenized record sequence together with the column set of
// the first header, which fixes the layout of the materialized table.
type Result struct {
	Columns []string
	Records []records.Record
}

// Tokenize converts an iostat text log into a flat record sequence, one
// record per device per sampling interval. Blank lines are discarded, a
// date-stamp line sets the timestamp attached to the data lines that
// follow it, and each header occurrence starts a new sampling interval:
// it increments the sequence counter and redefines the active column set.
// Data lines are whitespace-tokenized and kept only when their token count
// matches the active column count, so banner lines, avg-cpu blocks and
// truncated trailing lines fall out without being reported.
func Tokenize(r io.Reader, opts Options) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	res := &Result{}
	var (
		active    []string
		current   *time.Time
		seq       int
		headerRep int
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if ts, ok := parseTimestamp(line); ok {
			stamp := ts
			current = &stamp
			headerRep = 0
			continue
		}
		if strings.HasPrefix(line, headerPrefix) {
			cols := strings.Fields(line)
			if res.Columns == nil {
				res.Columns = cols
			}
			active = cols
			headerRep++
			seq++
			if seq%progressEvery == 0 {
				klog.Infof("Processed %d sampling intervals", seq)
			}
			continue
		}
		if active == nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(active) {
			continue
		}
		if opts.OmitFirst && headerRep <= 1 {
			continue
		}
		metrics := make(map[string]string, len(active)-1)
		for i := 1; i < len(active); i++ {
			metrics[active[i]] = fields[i]
		}
		res.Records = append(res.Records, records.Record{
			Seq:     seq,
			Time:    current,
			Device:  fields[0],
			Metrics: metrics,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func parseTimestamp(line string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, line); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
