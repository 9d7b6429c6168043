package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/fred-chen/plotters/pkg/charts"
	"github.com/fred-chen/plotters/pkg/iostat"
	"github.com/fred-chen/plotters/pkg/records"
)

func main() {
	start := flag.String("s", "", "range start, sequence number or \"YYYY-MM-DD HH:MM:SS\"")
	end := flag.String("e", "", "range end, sequence number or \"YYYY-MM-DD HH:MM:SS\"")
	device := flag.String("d", "", "device name pattern to keep")
	omitFirst := flag.Bool("omit-first", false, "drop the cumulative since-boot sample after each date stamp")
	prefilter := flag.Bool("prefilter", false, "grep the log down to header and device lines before parsing")
	dump := flag.Bool("dump", false, "print the parsed table to stdout")
	settingsFile := flag.String("settings", "", "yaml chart settings file")
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	startBound, err := records.ParseBound(*start)
	if err != nil {
		fail(err)
	}
	endBound, err := records.ParseBound(*end)
	if err != nil {
		fail(err)
	}
	settings, err := charts.LoadSettings(*settingsFile)
	if err != nil {
		fail(err)
	}

	if *prefilter {
		path, err = iostat.Prefilter(path, *device)
		if err != nil {
			fail(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()

	res, err := iostat.Tokenize(f, iostat.Options{OmitFirst: *omitFirst})
	if err != nil {
		fail(err)
	}
	klog.Infof("Tokenized %d records over %d columns", len(res.Records), len(res.Columns))

	if *dump {
		if err := iostat.WriteTable(os.Stdout, res.Columns, res.Records); err != nil {
			klog.Fatal(err)
		}
	}

	filter := records.Filter{Start: startBound, End: endBound, Device: *device}
	kept, err := filter.Apply(res.Records)
	if err != nil {
		fail(err)
	}

	suffix := charts.FileSuffix(*device, *start, *end)
	for _, spec := range settings.Charts {
		if _, err := settings.Render(spec, kept, suffix); err != nil {
			klog.Fatal(err)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"usage: %s [-s start] [-e end] [-d device] [-omit-first] [-prefilter] [-dump] [-settings file.yml] <iostat-log>\n",
		os.Args[0])
	flag.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
