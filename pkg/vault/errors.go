package vault

import "errors"

var (
	// ErrNothingToExport is returned when an export selects no entries.
	ErrNothingToExport = errors.New("no secrets to export")
	// ErrEmptyQuery is returned by Codes for a blank filter.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrInvalidPageSize is returned for a page size outside 1..secretstore.MaxPageSize.
	ErrInvalidPageSize = errors.New("page size out of range")
	// ErrFailedToWriteArtifact wraps storage and encoding failures of exports and reports.
	ErrFailedToWriteArtifact = errors.New("failed to write artifact")
)
