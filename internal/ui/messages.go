package ui

// Message types for async operations

// logLoadedMsg is sent when the dive log has been read and the
// per-dive statistics derived
type logLoadedMsg struct {
	entries []diveEntry
	err     error
}

// exportDoneMsg is sent when a CSV export triggered from the browser
// has finished
type exportDoneMsg struct {
	path string
	err  error
}
