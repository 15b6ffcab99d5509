package models

import "time"

// Dive represents one logged dive session's header metadata
type Dive struct {
	ID        string // Export-internal id used to look up the sample series
	Number    int    // Dive number assigned by the computer (0 if unknown)
	Location  string // e.g., "Bonaire"
	Site      string // e.g., "Salt Pier"
	StartTime time.Time
	Duration  int     // seconds
	MaxDepth  float64 // meters
}

// Sample is a single profile reading captured during a dive
type Sample struct {
	Elapsed   int     // seconds since dive start
	Depth     float64 // meters
	Temp      float64 // Celsius
	TempValid bool    // false when the computer logged no temperature
}

// SampleSeries is the time-ordered profile for one dive
type SampleSeries []Sample

// DurationMinutes returns the dive length rounded to whole minutes
func (d *Dive) DurationMinutes() int {
	return int(float64(d.Duration)/60.0 + 0.5)
}
