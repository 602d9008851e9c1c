package gsheets

import "errors"

const (
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	// ValueInputRaw stores values as typed, without formula parsing.
	ValueInputRaw = "RAW"
	// InsertRows makes append insert new rows instead of overwriting.
	InsertRows = "INSERT_ROWS"
)

var (
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrNoSheets            = errors.New("spreadsheet has no sheets")
)

// AppendResult describes where an appended row landed.
type AppendResult struct {
	SpreadsheetID string
	UpdatedRange  string
	UpdatedRows   int64
}
