package ai

import "errors"

var (
	// ErrMalformedExtraction is returned when the extraction model's output
	// cannot be parsed into the expected order line structure after retries.
	ErrMalformedExtraction = errors.New("malformed extraction output")
)
