package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ngmaloney/divelog-export/internal/divedb"
	"github.com/ngmaloney/divelog-export/internal/export"
)

func main() {
	output := flag.String("o", "divelog.csv", "Path for the output CSV file")
	imperial := flag.Bool("i", false, "Use imperial units (feet and °F) instead of meters and °C")
	reverse := flag.Bool("r", false, "Reverse sort order (newest dives first)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	count, err := run(flag.Arg(0), *output, *imperial, *reverse)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Export complete! File saved as: %s\n", *output)
	fmt.Printf("Number of dives exported: %d\n", count)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: divecsv [options] <database.db>

Converts a Shearwater Cloud database export to CSV, adding average
depth and temperature statistics derived from the dive profiles.
Export the database first via File > Export > Export Database (*.db)
in Shearwater Cloud.

Options:
`)
	flag.PrintDefaults()
}

func run(dbPath, outPath string, imperial, reverse bool) (int, error) {
	log, err := divedb.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer log.Close()

	records, err := export.Collect(log)
	if err != nil {
		return 0, err
	}

	opts := export.Options{Descending: reverse}
	if imperial {
		opts.Units = export.Imperial
	}
	if err := export.WriteFile(outPath, records, opts); err != nil {
		return 0, err
	}
	return len(records), nil
}
