package divedb

// Table and column names of the Shearwater Cloud database export.
// Kept in one place as a versioned map so schema drift between
// application versions only ever touches this file.

type tableSchema struct {
	name    string
	columns []string
}

const (
	tableDiveDetails = "dive_details"
	tableDiveLogs    = "dive_logs"
	tableLogRecords  = "dive_log_records"

	colDiveID     = "DiveId"
	colDiveNumber = "DiveNumber"
	colLocation   = "Location"
	colSite       = "Site"
	colDiveDate   = "DiveDate"
	colDepth      = "Depth"
	colLength     = "DiveLengthTime"

	colLogID     = "id"
	colLogDiveID = "diveId"

	colRecordLogID = "diveLogId"
	colRecordTime  = "currentTime"
	colRecordDepth = "depth"
	colRecordTemp  = "waterTemp"
)

// schemaV1 lists every table and column this tool reads. An export
// missing any of them is unsupported (or corrupted) and rejected
// up front rather than failing mid-query.
var schemaV1 = []tableSchema{
	{
		name: tableDiveDetails,
		columns: []string{
			colDiveID, colDiveNumber, colLocation, colSite,
			colDiveDate, colDepth, colLength,
		},
	},
	{
		name:    tableDiveLogs,
		columns: []string{colLogID, colLogDiveID},
	},
	{
		name: tableLogRecords,
		columns: []string{
			colRecordLogID, colRecordTime, colRecordDepth, colRecordTemp,
		},
	},
}
