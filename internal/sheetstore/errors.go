package sheetstore

import "fmt"

// ConnectionError covers every backend-level failure: bad credentials,
// unreachable API, missing spreadsheet or worksheet, header mismatch.
// There is no retry or backoff behind it — one attempt, surfaced as-is.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// InvalidFieldError is a programmer error: UpdateField was handed a field
// name outside the fixed 12-column layout. No network write happens.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("unknown lead field %q", e.Field)
}
