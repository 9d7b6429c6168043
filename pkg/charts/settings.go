package charts

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// AxisTicks is the default cap on evenly spaced x/y tick labels.
const AxisTicks = 20

// ChartSpec parameterizes one rendered figure: which metric columns to
// draw and how to label them.
type ChartSpec struct {
	Kind    string   `yaml:"kind"`
	Columns []string `yaml:"columns"`
	YLabel  string   `yaml:"y_label"`
	Title   string   `yaml:"title"`
}

// Settings holds rendering defaults, optionally overridden by a yaml
// settings file.
type Settings struct {
	AxisTicks int         `yaml:"axis_ticks"`
	PlotDir   string      `yaml:"plot_dir"`
	Charts    []ChartSpec `yaml:"charts"`
}

// DefaultCharts is the built-in iostat chart set.
func DefaultCharts() []ChartSpec {
	return []ChartSpec{
		{Kind: "await", Columns: []string{"r_await", "w_await"}, YLabel: "Await (ms)", Title: "I/O await"},
		{Kind: "reqsz", Columns: []string{"rareq-sz", "wareq-sz"}, YLabel: "Request size (KiB)", Title: "Average request size"},
		{Kind: "queue", Columns: []string{"aqu-sz"}, YLabel: "Queue depth", Title: "Average queue length"},
	}
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{AxisTicks: AxisTicks, PlotDir: ".", Charts: DefaultCharts()}
}

// LoadSettings reads a yaml settings file on top of the defaults. Fields
// left empty in the file keep their default values; an empty path returns
// the defaults untouched.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return settings, err
	}
	var over Settings
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return settings, err
	}
	if over.AxisTicks > 0 {
		settings.AxisTicks = over.AxisTicks
	}
	if over.PlotDir != "" {
		settings.PlotDir = over.PlotDir
	}
	if len(over.Charts) > 0 {
		settings.Charts = over.Charts
	}
	return settings, nil
}
