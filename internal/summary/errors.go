package summary

import "fmt"

// StoreUnavailableError indicates record retrieval failed before or during a
// scan page fetch. The whole load is aborted; a partial record set is never
// surfaced.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("record store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// MalformedRecordError indicates an amount field that could not be coerced to
// a decimal. Fatal for the whole request: skipping the record would corrupt
// the total invariant.
type MalformedRecordError struct {
	Index int
	Value interface{}
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d has malformed amount %v: %v", e.Index, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// StoreWriteError indicates snapshot persistence failed after aggregation
// succeeded. Still fatal: callers expect summaryKey to be valid whenever the
// response reports success.
type StoreWriteError struct {
	Key string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("snapshot write to %s failed: %v", e.Key, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
