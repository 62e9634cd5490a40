package catalog

import "errors"

var (
	// ErrFetchFailed indicates an HTTP export could not be retrieved.
	ErrFetchFailed = errors.New("fetching sheet failed")

	// ErrMissingColumn indicates a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidRow indicates a CSV row that cannot be parsed into its
	// typed record.
	ErrInvalidRow = errors.New("invalid row")

	// ErrOutputDirRequired is returned when a writer is created without an
	// output directory.
	ErrOutputDirRequired = errors.New("output directory required")
)
