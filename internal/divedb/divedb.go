package divedb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ngmaloney/divelog-export/internal/models"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound means the database file does not exist or cannot be read
	ErrNotFound = errors.New("database file not found")

	// ErrSchemaMismatch means a required table or column is absent,
	// which signals an unsupported or corrupted export
	ErrSchemaMismatch = errors.New("unsupported database schema")

	// ErrEmptyLog means the export contains no dive records
	ErrEmptyLog = errors.New("no dive records found")
)

// Log is a read-only handle on a Shearwater Cloud database export
type Log struct {
	db *sql.DB
}

// Open opens the export at path read-only and validates that it
// carries the expected schema. The source file is never mutated.
func Open(path string) (*Log, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	log := &Log{db: db}
	if err := log.validateSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return log, nil
}

// Close releases the read handle
func (l *Log) Close() error {
	return l.db.Close()
}

// validateSchema checks every table and column in schemaV1 against the
// opened file before any data query runs.
func (l *Log) validateSchema() error {
	for _, table := range schemaV1 {
		var count int
		err := l.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table.name,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: missing table %s", ErrSchemaMismatch, table.name)
		}

		present, err := l.tableColumns(table.name)
		if err != nil {
			return err
		}
		for _, col := range table.columns {
			if !present[col] {
				return fmt.Errorf("%w: table %s missing column %s",
					ErrSchemaMismatch, table.name, col)
			}
		}
	}
	return nil
}

func (l *Log) tableColumns(table string) (map[string]bool, error) {
	rows, err := l.db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString

		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// Dives enumerates dive headers in storage order. Sorting for output
// is the export layer's job. Returns ErrEmptyLog when the export holds
// no dive records.
func (l *Log) Dives() ([]models.Dive, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s, %s, %s FROM %s",
		colDiveID, colDiveNumber, colLocation, colSite,
		colDiveDate, colDepth, colLength, tableDiveDetails,
	)

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying dives: %w", err)
	}
	defer rows.Close()

	var dives []models.Dive
	for rows.Next() {
		var d models.Dive
		var number sql.NullInt64
		var location, site sql.NullString
		var date sql.NullInt64
		var depth, length sql.NullFloat64

		if err := rows.Scan(&d.ID, &number, &location, &site, &date, &depth, &length); err != nil {
			return nil, fmt.Errorf("scanning dive: %w", err)
		}

		d.Number = int(number.Int64)
		d.Location = location.String
		d.Site = site.String
		d.StartTime = time.Unix(date.Int64, 0).UTC()
		d.MaxDepth = depth.Float64
		d.Duration = int(length.Float64)
		dives = append(dives, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading dives: %w", err)
	}

	if len(dives) == 0 {
		return nil, ErrEmptyLog
	}
	return dives, nil
}

// Samples fetches the ordered profile series for one dive. A dive with
// no recorded samples returns an empty series, not an error; the
// statistics layer treats that as "no aggregates".
func (l *Log) Samples(diveID string) (models.SampleSeries, error) {
	query := fmt.Sprintf(
		"SELECT r.%s, r.%s, r.%s FROM %s r JOIN %s l ON r.%s = l.%s WHERE l.%s = ? ORDER BY r.%s",
		colRecordTime, colRecordDepth, colRecordTemp,
		tableLogRecords, tableDiveLogs,
		colRecordLogID, colLogID, colLogDiveID, colRecordTime,
	)

	rows, err := l.db.Query(query, diveID)
	if err != nil {
		return nil, fmt.Errorf("querying samples for dive %s: %w", diveID, err)
	}
	defer rows.Close()

	var series models.SampleSeries
	for rows.Next() {
		var s models.Sample
		var elapsed sql.NullFloat64
		var depth sql.NullFloat64
		var temp sql.NullFloat64

		if err := rows.Scan(&elapsed, &depth, &temp); err != nil {
			return nil, fmt.Errorf("scanning sample for dive %s: %w", diveID, err)
		}

		s.Elapsed = int(elapsed.Float64)
		s.Depth = depth.Float64
		s.Temp = temp.Float64
		s.TempValid = temp.Valid
		series = append(series, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading samples for dive %s: %w", diveID, err)
	}

	return series, nil
}
