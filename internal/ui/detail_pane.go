package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/divelog-export/internal/export"
	"github.com/ngmaloney/divelog-export/internal/models"
)

var profileBlocks = []rune("▁▂▃▄▅▆▇█")

// renderDetailPane renders the header fields, derived statistics and
// depth profile for the selected dive
func (m Model) renderDetailPane(width int) string {
	entry := m.selected
	dive := entry.rec.Dive
	stats := entry.rec.Stats

	depthUnit, tempUnit := "m", "°C"
	if m.units == export.Imperial {
		depthUnit, tempUnit = "ft", "°F"
	}

	var content strings.Builder

	title := dive.Site
	if title == "" {
		title = "Unknown site"
	}
	content.WriteString(titleStyle.Render(title))
	if dive.Location != "" {
		content.WriteString(mutedStyle.Render("  " + dive.Location))
	}
	content.WriteString("\n\n")

	writeField := func(label, value string) {
		content.WriteString(labelStyle.Width(11).Render(label))
		content.WriteString(" ")
		content.WriteString(valueStyle.Render(value))
		content.WriteString("\n")
	}

	number := "?"
	if dive.Number > 0 {
		number = fmt.Sprintf("%d", dive.Number)
	}
	writeField("Dive", number)
	writeField("Start", dive.StartTime.Format("2006-01-02 15:04:05"))
	writeField("Duration", fmt.Sprintf("%d min", dive.DurationMinutes()))
	writeField("Max depth", m.formatDepth(dive.MaxDepth, depthUnit))

	if stats.HasDepth {
		writeField("Avg depth", m.formatDepth(stats.AvgDepth, depthUnit))
	} else {
		writeField("Avg depth", mutedStyle.Render("no profile data"))
	}

	if stats.HasTemp {
		writeField("Water temp", fmt.Sprintf("%s to %s, avg %s",
			m.formatTemp(stats.MinTemp, tempUnit),
			m.formatTemp(stats.MaxTemp, tempUnit),
			m.formatTemp(stats.AvgTemp, tempUnit)))
	} else {
		writeField("Water temp", mutedStyle.Render("no readings"))
	}

	if strip := profileStrip(entry.series, 40); strip != "" {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("Profile"))
		content.WriteString("\n")
		content.WriteString(profileStyle.Render(strip))
		content.WriteString("\n")
	}

	return paneStyle.Width(width).Render(content.String())
}

func (m Model) formatDepth(meters float64, unit string) string {
	v := meters
	if m.units == export.Imperial {
		v = models.MetersToFeet(v)
	}
	return fmt.Sprintf("%.1f %s", models.Round1(v), unit)
}

func (m Model) formatTemp(celsius float64, unit string) string {
	v := celsius
	if m.units == export.Imperial {
		v = models.CelsiusToFahrenheit(v)
	}
	return fmt.Sprintf("%.1f %s", models.Round1(v), unit)
}

// profileStrip draws the dive profile as a one-line bar strip, deeper
// samples rendering as taller blocks. Returns "" when the series is
// empty or flat.
func profileStrip(series models.SampleSeries, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}

	var maxDepth float64
	for _, s := range series {
		if s.Depth > maxDepth {
			maxDepth = s.Depth
		}
	}
	if maxDepth <= 0 {
		return ""
	}

	if len(series) < width {
		width = len(series)
	}

	var strip strings.Builder
	for i := 0; i < width; i++ {
		// Nearest sample for this column
		sample := series[i*len(series)/width]
		level := int(sample.Depth / maxDepth * float64(len(profileBlocks)-1))
		strip.WriteRune(profileBlocks[level])
	}
	return strip.String()
}
