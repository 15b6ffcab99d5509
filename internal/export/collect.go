package export

import (
	"fmt"

	"github.com/ngmaloney/divelog-export/internal/models"
)

// Source yields dive headers and their sample series. *divedb.Log
// satisfies it; tests substitute fakes.
type Source interface {
	Dives() ([]models.Dive, error)
	Samples(diveID string) (models.SampleSeries, error)
}

// Collect reads every dive from src and derives its statistics. Each
// dive header yields exactly one record; dives without samples carry
// empty Stats and render with blank derived fields.
func Collect(src Source) ([]Record, error) {
	dives, err := src.Dives()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(dives))
	for _, dive := range dives {
		series, err := src.Samples(dive.ID)
		if err != nil {
			return nil, fmt.Errorf("reading samples for dive %d: %w", dive.Number, err)
		}
		records = append(records, Record{Dive: dive, Stats: series.Stats()})
	}
	return records, nil
}
