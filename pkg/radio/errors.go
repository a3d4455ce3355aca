package radio

import "fmt"

// DecodeError reports a response whose shape violates the expected
// structure for a required field. Entity names the record being decoded
// and Field the missing or malformed field, to aid debugging.
type DecodeError struct {
	Entity string
	Field  string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: field %q: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: field %q is missing or malformed", e.Entity, e.Field)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErrorf builds a DecodeError for entity and field.
func decodeErrorf(entity, field string, err error) *DecodeError {
	return &DecodeError{Entity: entity, Field: field, Err: err}
}
