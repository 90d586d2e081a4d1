package attendance

import "errors"

// Attendance domain errors
var (
	// ErrNoUsableRows means the uploaded data yielded zero rows with any
	// parseable punch. The engine returns no partial summary in that case.
	ErrNoUsableRows = errors.New("no usable attendance rows found in input")
)
