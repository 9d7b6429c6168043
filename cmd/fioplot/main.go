package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotter"
	"k8s.io/klog/v2"

	"github.com/fred-chen/plotters/pkg/charts"
	"github.com/fred-chen/plotters/pkg/fiolog"
)

func main() {
	start := flag.String("s", "", "start time in seconds")
	end := flag.String("e", "", "end time in seconds")
	settingsFile := flag.String("settings", "", "yaml chart settings file")
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	prefix := flag.Arg(0)

	startSec, hasStart, err := parseSeconds(*start)
	if err != nil {
		fail(err)
	}
	endSec, hasEnd, err := parseSeconds(*end)
	if err != nil {
		fail(err)
	}
	settings, err := charts.LoadSettings(*settingsFile)
	if err != nil {
		fail(err)
	}

	suffix := charts.FileSuffix("", *start, *end)
	for _, metric := range fiolog.Metrics {
		path := fiolog.LogPath(prefix, metric)
		samples, err := fiolog.ParseFile(path, metric)
		if err != nil {
			klog.Warningf("Skipping %s: %v", path, err)
			continue
		}
		series := seriesByDirection(samples, startSec, endSec, hasStart, hasEnd)
		kind := filepath.Base(prefix) + suffix + "_" + metric
		title := strings.ToUpper(metric) + " Over Time"
		if _, err := settings.RenderSeries(kind, title, "Time (s)", fiolog.YLabel(metric), series, false); err != nil {
			klog.Fatal(err)
		}
	}
}

// seriesByDirection splits samples into one line per I/O direction,
// dropping samples outside the requested time window.
func seriesByDirection(samples []fiolog.Sample, start, end float64, hasStart, hasEnd bool) []charts.Series {
	var out []charts.Series
	for dir, label := range fiolog.DirectionLabels {
		var xys plotter.XYs
		for _, s := range samples {
			if s.Direction != dir {
				continue
			}
			if hasStart && s.Time < start {
				continue
			}
			if hasEnd && s.Time > end {
				continue
			}
			xys = append(xys, plotter.XY{X: s.Time, Y: s.Value})
		}
		if len(xys) > 0 {
			out = append(out, charts.Series{Label: label, XYs: xys})
		}
	}
	return out
}

func parseSeconds(s string) (float64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("time bound %q is not an integer number of seconds", s)
	}
	return float64(n), true, nil
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"usage: %s [-s start_time_sec] [-e end_time_sec] [-settings file.yml] <log-file-prefix>\n",
		os.Args[0])
	flag.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
