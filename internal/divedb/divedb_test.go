package divedb

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const fixtureSchema = `
	CREATE TABLE dive_details (
		DiveId TEXT PRIMARY KEY,
		DiveNumber INTEGER,
		Location TEXT,
		Site TEXT,
		DiveDate INTEGER,
		Depth REAL,
		DiveLengthTime REAL
	);
	CREATE TABLE dive_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		diveId TEXT NOT NULL
	);
	CREATE TABLE dive_log_records (
		diveLogId INTEGER NOT NULL,
		currentTime REAL,
		depth REAL,
		waterTemp REAL
	);
`

// newFixture creates a temp database laid out like a Shearwater Cloud
// export and returns its path.
func newFixture(t *testing.T, populate func(db *sql.DB)) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "divedb_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "export.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(fixtureSchema); err != nil {
		t.Fatalf("Failed to create fixture schema: %v", err)
	}
	if populate != nil {
		populate(db)
	}
	return dbPath
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("Failed to exec %q: %v", query, err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(os.TempDir(), "does-not-exist.db"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open on missing file = %v, want ErrNotFound", err)
	}
}

func TestOpenValidatesSchema(t *testing.T) {
	dbPath := newFixture(t, nil)

	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open on valid schema failed: %v", err)
	}
	log.Close()
}

func TestOpenMissingTable(t *testing.T) {
	dbPath := newFixture(t, func(db *sql.DB) {
		mustExec(t, db, "DROP TABLE dive_log_records")
	})

	_, err := Open(dbPath)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Open with missing table = %v, want ErrSchemaMismatch", err)
	}
}

func TestOpenMissingColumn(t *testing.T) {
	dbPath := newFixture(t, func(db *sql.DB) {
		mustExec(t, db, "ALTER TABLE dive_details DROP COLUMN Site")
	})

	_, err := Open(dbPath)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Open with missing column = %v, want ErrSchemaMismatch", err)
	}
}

func TestDivesEmptyLog(t *testing.T) {
	dbPath := newFixture(t, nil)

	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer log.Close()

	_, err = log.Dives()
	if !errors.Is(err, ErrEmptyLog) {
		t.Errorf("Dives on empty export = %v, want ErrEmptyLog", err)
	}
}

func TestDives(t *testing.T) {
	dbPath := newFixture(t, func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO dive_details VALUES
			('dive-1', 41, 'Bonaire', 'Salt Pier', 1717243200, 18.3, 2712.0),
			('dive-2', NULL, NULL, NULL, 1717329600, 40.9, 3605.0)`)
	})

	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer log.Close()

	dives, err := log.Dives()
	if err != nil {
		t.Fatalf("Dives failed: %v", err)
	}
	if len(dives) != 2 {
		t.Fatalf("got %d dives, want 2", len(dives))
	}

	first := dives[0]
	if first.ID != "dive-1" || first.Number != 41 {
		t.Errorf("unexpected first dive header: %+v", first)
	}
	if first.Location != "Bonaire" || first.Site != "Salt Pier" {
		t.Errorf("unexpected first dive location: %+v", first)
	}
	if first.MaxDepth != 18.3 || first.Duration != 2712 {
		t.Errorf("unexpected first dive depth/duration: %+v", first)
	}
	if got := first.StartTime.Format("2006-01-02 15:04:05"); got != "2024-06-01 12:00:00" {
		t.Errorf("StartTime = %s, want 2024-06-01 12:00:00", got)
	}

	second := dives[1]
	if second.Number != 0 || second.Location != "" || second.Site != "" {
		t.Errorf("null header fields should scan as zero values: %+v", second)
	}
}

func TestSamplesOrderedSeries(t *testing.T) {
	dbPath := newFixture(t, func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO dive_details VALUES
			('dive-1', 1, 'Bonaire', 'Salt Pier', 1717243200, 18.3, 2712.0)`)
		mustExec(t, db, `INSERT INTO dive_logs (id, diveId) VALUES (7, 'dive-1')`)
		// Inserted out of order; the reader must return them by elapsed time.
		mustExec(t, db, `INSERT INTO dive_log_records VALUES
			(7, 20.0, 12.0, 26.0),
			(7, 10.0, 6.0, 25.0),
			(7, 30.0, 18.0, NULL)`)
	})

	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer log.Close()

	series, err := log.Samples("dive-1")
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("got %d samples, want 3", len(series))
	}

	for i := 1; i < len(series); i++ {
		if series[i].Elapsed <= series[i-1].Elapsed {
			t.Errorf("series not ordered by elapsed time: %+v", series)
		}
	}
	if series[0].Depth != 6.0 || !series[0].TempValid || series[0].Temp != 25.0 {
		t.Errorf("unexpected first sample: %+v", series[0])
	}
	if series[2].TempValid {
		t.Errorf("null waterTemp must scan as invalid, got %+v", series[2])
	}
}

func TestSamplesNoRecords(t *testing.T) {
	dbPath := newFixture(t, func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO dive_details VALUES
			('dive-1', 1, 'Bonaire', 'Salt Pier', 1717243200, 18.3, 2712.0)`)
	})

	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer log.Close()

	series, err := log.Samples("dive-1")
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("dive without records should yield an empty series, got %+v", series)
	}
}
