package ingestion

import "errors"

var (
	// ErrSourceNotFound means the configured input does not exist (or the
	// Postgres mirror is empty). Nothing downstream runs when it is returned.
	ErrSourceNotFound = errors.New("data source not found")

	// ErrMissingColumn means a required header column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrSampleTooLarge means more sample rows were requested than the table holds.
	ErrSampleTooLarge = errors.New("sample larger than table")
)
