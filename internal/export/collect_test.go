package export

import (
	"errors"
	"testing"
	"time"

	"github.com/ngmaloney/divelog-export/internal/models"
)

type fakeSource struct {
	dives   []models.Dive
	series  map[string]models.SampleSeries
	sampErr error
}

func (f *fakeSource) Dives() ([]models.Dive, error) {
	return f.dives, nil
}

func (f *fakeSource) Samples(diveID string) (models.SampleSeries, error) {
	if f.sampErr != nil {
		return nil, f.sampErr
	}
	return f.series[diveID], nil
}

func TestCollectOneRecordPerDive(t *testing.T) {
	src := &fakeSource{
		dives: []models.Dive{
			{ID: "a", Number: 1, StartTime: time.Unix(100, 0)},
			{ID: "b", Number: 2, StartTime: time.Unix(200, 0)},
		},
		series: map[string]models.SampleSeries{
			"a": {
				{Elapsed: 10, Depth: 10, Temp: 25, TempValid: true},
				{Elapsed: 20, Depth: 20, Temp: 27, TempValid: true},
			},
			// dive "b" has no samples at all
		},
	}

	records, err := Collect(src)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if !records[0].Stats.HasDepth || !records[0].Stats.HasTemp {
		t.Errorf("dive with samples should have aggregates: %+v", records[0].Stats)
	}
	if records[1].Stats.HasDepth || records[1].Stats.HasTemp {
		t.Errorf("dive without samples should have empty stats: %+v", records[1].Stats)
	}
}

func TestCollectPropagatesSampleError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{
		dives:   []models.Dive{{ID: "a", Number: 1}},
		sampErr: boom,
	}

	_, err := Collect(src)
	if !errors.Is(err, boom) {
		t.Errorf("Collect = %v, want wrapped sample error", err)
	}
}
