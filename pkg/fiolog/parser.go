package fiolog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// Direction codes used in fio per-interval log rows.
const (
	DirRead = iota
	DirWrite
	DirTrim
)

// DirectionLabels maps direction codes to chart legend names.
var DirectionLabels = []string{"Read", "Write", "Discard"}

// Metrics lists the per-interval log families fio produces, in the order
// the charts are generated.
var Metrics = []string{"bw", "iops", "lat", "slat", "clat"}

// Sample is one fio log row after unit conversion.
type Sample struct {
	Time      float64 // seconds
	Value     float64 // MiB/s for bw, count for iops, seconds for latencies
	Direction int
}

// LogPath returns the conventional "<prefix>_<metric>.log" file name.
func LogPath(prefix, metric string) string {
	return prefix + "_" + metric + ".log"
}

// YLabel returns the y-axis caption for a metric's chart.
func YLabel(metric string) string {
	switch metric {
	case "bw":
		return "Bandwidth (MiB/s)"
	case "iops":
		return "IOPS"
	default:
		return "Latency (s)"
	}
}

// ParseFile reads one fio per-interval log.
func ParseFile(path, metric string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, metric)
}

// Parse reads "time,value,direction[,offset]" rows and converts units:
// time msec to sec, bandwidth KiB/s to MiB/s, latencies nsec to sec, IOPS
// unchanged. Malformed rows are dropped rather than reported.
func Parse(r io.Reader, metric string) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		ms, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue
		}
		dir, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}
		out = append(out, Sample{
			Time:      ms / 1000,
			Value:     convert(metric, val),
			Direction: dir,
		})
	}
	return out, nil
}

func convert(metric string, v float64) float64 {
	switch metric {
	case "bw":
		return v / 1024
	case "lat", "slat", "clat":
		return v / 1e9
	default:
		return v
	}
}
