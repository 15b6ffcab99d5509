package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/divelog-export/internal/export"
	"github.com/ngmaloney/divelog-export/internal/models"
)

// diveEntry pairs an export record with the raw series so the detail
// pane can draw the depth profile
type diveEntry struct {
	rec    export.Record
	series models.SampleSeries
}

// diveItem wraps a diveEntry for use in a list
type diveItem struct {
	entry diveEntry
}

// FilterValue implements list.Item
func (d diveItem) FilterValue() string {
	return d.entry.rec.Dive.Location + " " + d.entry.rec.Dive.Site
}

// Title implements list.DefaultItem
func (d diveItem) Title() string {
	dive := d.entry.rec.Dive
	number := "?"
	if dive.Number > 0 {
		number = fmt.Sprintf("%d", dive.Number)
	}
	site := dive.Site
	if site == "" {
		site = "Unknown site"
	}
	return fmt.Sprintf("#%s - %s", number, site)
}

// Description implements list.DefaultItem
func (d diveItem) Description() string {
	dive := d.entry.rec.Dive
	return fmt.Sprintf("%s · %d min", dive.StartTime.Format("2006-01-02 15:04"), dive.DurationMinutes())
}

// createDiveList creates a list.Model from dive entries
func createDiveList(entries []diveEntry, width, height int) list.Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = diveItem{entry: entry}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Dive Log"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return l
}
