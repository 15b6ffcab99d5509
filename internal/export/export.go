package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/ngmaloney/divelog-export/internal/models"
)

// ErrWrite means the output file could not be created or written.
// A failure partway through writing may leave a truncated file behind.
var ErrWrite = errors.New("writing output file")

// UnitSystem selects between metric (stored) and imperial output units
type UnitSystem int

const (
	Metric UnitSystem = iota
	Imperial
)

// Record pairs a dive header with its derived statistics
type Record struct {
	Dive  models.Dive
	Stats models.Stats
}

// Options controls output units and sort direction
type Options struct {
	Units      UnitSystem
	Descending bool // newest dive first
}

const timeLayout = "2006-01-02 15:04:05"

// Header returns the fixed CSV header with unit labels matching the
// active unit system.
func Header(units UnitSystem) []string {
	depthUnit, tempUnit := "m", "°C"
	if units == Imperial {
		depthUnit, tempUnit = "ft", "°F"
	}
	return []string{
		"#", "Location", "Site", "StartTime", "Duration (min)",
		fmt.Sprintf("MaxDepth (%s)", depthUnit),
		fmt.Sprintf("AvgDepth (%s)", depthUnit),
		fmt.Sprintf("MinTemp (%s)", tempUnit),
		fmt.Sprintf("MaxTemp (%s)", tempUnit),
		fmt.Sprintf("AvgTemp (%s)", tempUnit),
	}
}

// Row formats one record for output. Depth and temperature values are
// rounded to one decimal place in either unit system. Aggregates the
// series could not provide render as empty fields, never as zero.
func Row(rec Record, units UnitSystem) []string {
	number := "?"
	if rec.Dive.Number > 0 {
		number = strconv.Itoa(rec.Dive.Number)
	}

	maxDepth := rec.Dive.MaxDepth
	if units == Imperial {
		maxDepth = models.MetersToFeet(maxDepth)
	}

	avgDepth := ""
	if rec.Stats.HasDepth {
		v := rec.Stats.AvgDepth
		if units == Imperial {
			v = models.MetersToFeet(v)
		}
		avgDepth = formatValue(v)
	}

	minTemp, maxTemp, avgTemp := "", "", ""
	if rec.Stats.HasTemp {
		minTemp = formatTemp(rec.Stats.MinTemp, units)
		maxTemp = formatTemp(rec.Stats.MaxTemp, units)
		avgTemp = formatTemp(rec.Stats.AvgTemp, units)
	}

	return []string{
		number,
		rec.Dive.Location,
		rec.Dive.Site,
		rec.Dive.StartTime.Format(timeLayout),
		strconv.Itoa(rec.Dive.DurationMinutes()),
		formatValue(maxDepth),
		avgDepth,
		minTemp,
		maxTemp,
		avgTemp,
	}
}

func formatTemp(c float64, units UnitSystem) string {
	if units == Imperial {
		return formatValue(models.CelsiusToFahrenheit(c))
	}
	return formatValue(c)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(models.Round1(v), 'f', 1, 64)
}

// Sort orders records by start time ascending (or descending when
// requested), breaking ties by dive number ascending so repeated runs
// produce identical output.
func Sort(records []Record, descending bool) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Dive, records[j].Dive
		if !a.StartTime.Equal(b.StartTime) {
			if descending {
				return a.StartTime.After(b.StartTime)
			}
			return a.StartTime.Before(b.StartTime)
		}
		return a.Number < b.Number
	})
}

// WriteFile sorts the records and writes them as CSV to path, creating
// or overwriting the file.
func WriteFile(path string, records []Record, opts Options) error {
	Sort(records, opts.Descending)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header(opts.Units)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, rec := range records {
		if err := w.Write(Row(rec, opts.Units)); err != nil {
			return fmt.Errorf("%w: %v (output may be truncated)", ErrWrite, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v (output may be truncated)", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v (output may be truncated)", ErrWrite, err)
	}
	return nil
}
