package charts

import (
	"fmt"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"

	"github.com/fred-chen/plotters/pkg/records"
)

const timeTickFormat = "01-02 15:04:05"

// Series is one labeled line of a figure.
type Series struct {
	Label string
	XYs   plotter.XYs
}

// SeriesFromRecords builds one series per (device, column) pair, in device
// order, plotting each column value against the record timestamp when
// present and against the sequence number otherwise.
func SeriesFromRecords(recs []records.Record, cols []string) []Series {
	var out []Series
	for _, dev := range records.Devices(recs) {
		for _, col := range cols {
			var xys plotter.XYs
			for _, r := range recs {
				if r.Device != dev {
					continue
				}
				v, ok := r.Float(col)
				if !ok {
					continue
				}
				x := float64(r.Seq)
				if r.Time != nil {
					x = float64(r.Time.Unix())
				}
				xys = append(xys, plotter.XY{X: x, Y: v})
			}
			if len(xys) > 0 {
				out = append(out, Series{Label: dev + " " + col, XYs: xys})
			}
		}
	}
	return out
}

// Render draws the chart's columns for every device in recs and saves the
// figure as "<kind><suffix>.png" in the plot directory. An empty record
// list is a no-op: a message is logged and no file is written.
func (s Settings) Render(spec ChartSpec, recs []records.Record, suffix string) (string, error) {
	if len(recs) == 0 {
		klog.Infof("No records to plot for %s, skipping", spec.Kind)
		return "", nil
	}
	series := SeriesFromRecords(recs, spec.Columns)
	if len(series) == 0 {
		klog.Infof("None of %v present in the records, skipping %s", spec.Columns, spec.Kind)
		return "", nil
	}
	timed := recs[0].Time != nil
	xLabel := "Seq."
	if timed {
		xLabel = "Time"
	}
	return s.RenderSeries(spec.Kind+suffix, spec.Title, xLabel, spec.YLabel, series, timed)
}

// RenderSeries draws one labeled line per series onto a single figure and
// saves it as "<kind>.png" in the plot directory. With timed set, x values
// are Unix seconds and tick labels are time-formatted; otherwise they stay
// plain numbers. An empty series list is logged and skipped.
func (s Settings) RenderSeries(kind, title, xLabel, yLabel string, series []Series, timed bool) (string, error) {
	if len(series) == 0 {
		klog.Infof("Nothing to plot for %s, skipping", kind)
		return "", nil
	}

	p, err := plot.New()
	if err != nil {
		return "", err
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Y.Tick.Marker = hplot.Ticks{N: s.AxisTicks}
	if timed {
		p.X.Tick.Marker = plot.TimeTicks{Format: timeTickFormat, Ticker: hplot.Ticks{N: s.AxisTicks}}
	} else {
		p.X.Tick.Marker = hplot.Ticks{N: s.AxisTicks}
	}

	var xs []float64
	var lines []interface{}
	for _, sr := range series {
		lines = append(lines, sr.Label, sr.XYs)
		for _, xy := range sr.XYs {
			xs = append(xs, xy.X)
		}
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return "", err
	}
	if min, max := floats.Min(xs), floats.Max(xs); min < max {
		p.X.Min = min
		p.X.Max = max
	}

	name := filepath.Join(s.PlotDir, kind+".png")
	if err := p.Save(16*vg.Inch, 8*vg.Inch, name); err != nil {
		return "", err
	}
	fmt.Println("Saved to", name)
	return name, nil
}

// FileSuffix encodes the device filter and range bounds into the output
// name so differently filtered runs do not overwrite each other.
func FileSuffix(device, start, end string) string {
	var b strings.Builder
	if device != "" {
		b.WriteString("_dev" + sanitize(device))
	}
	if start != "" {
		b.WriteString("_s" + sanitize(start))
	}
	if end != "" {
		b.WriteString("_e" + sanitize(end))
	}
	return b.String()
}

func sanitize(s string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		":", "-",
		"/", "_",
		"*", "",
		"?", "",
		"|", "-",
	)
	return replacer.Replace(s)
}
