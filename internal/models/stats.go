package models

// Stats holds the aggregates derived from a dive's sample series.
// HasDepth and HasTemp distinguish "no data" from a legitimate zero;
// a dive logged in freezing water averages 0.0 with HasTemp true.
type Stats struct {
	AvgDepth float64 // meters
	MinTemp  float64 // Celsius
	MaxTemp  float64 // Celsius
	AvgTemp  float64 // Celsius
	HasDepth bool
	HasTemp  bool
}

// Stats computes derived aggregates from the series.
//
// Average depth is a time-weighted trapezoidal mean when elapsed times
// are strictly increasing, so recording gaps don't skew the result.
// When elapsed times are absent or out of order it falls back to the
// arithmetic mean of the depth readings. Temperature aggregates only
// consider samples with a valid reading; samples without one are
// excluded, never counted as zero. An empty series yields zero-value
// Stats with both Has flags false.
func (s SampleSeries) Stats() Stats {
	if len(s) == 0 {
		return Stats{}
	}

	stats := Stats{
		AvgDepth: averageDepth(s),
		HasDepth: true,
	}

	var sum float64
	var count int
	for _, sample := range s {
		if !sample.TempValid {
			continue
		}
		if count == 0 || sample.Temp < stats.MinTemp {
			stats.MinTemp = sample.Temp
		}
		if count == 0 || sample.Temp > stats.MaxTemp {
			stats.MaxTemp = sample.Temp
		}
		sum += sample.Temp
		count++
	}
	if count > 0 {
		stats.AvgTemp = sum / float64(count)
		stats.HasTemp = true
	}

	return stats
}

// averageDepth integrates depth over elapsed time (trapezoid rule) when
// the series has usable timestamps, otherwise averages the readings.
func averageDepth(s SampleSeries) float64 {
	if len(s) == 1 {
		return s[0].Depth
	}

	timed := true
	for i := 1; i < len(s); i++ {
		if s[i].Elapsed <= s[i-1].Elapsed {
			timed = false
			break
		}
	}

	if !timed {
		var sum float64
		for _, sample := range s {
			sum += sample.Depth
		}
		return sum / float64(len(s))
	}

	var area float64
	for i := 1; i < len(s); i++ {
		dt := float64(s[i].Elapsed - s[i-1].Elapsed)
		area += (s[i].Depth + s[i-1].Depth) / 2.0 * dt
	}
	return area / float64(s[len(s)-1].Elapsed-s[0].Elapsed)
}
