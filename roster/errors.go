package roster

import (
	"errors"
	"fmt"
)

var (
	ErrFieldCount  = errors.New("expected two fields")
	ErrWeight      = errors.New("weight is not an integer")
	ErrUnencodable = errors.New("name cannot be written to a roster file")
)

// LineError reports a malformed line in a roster file
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadError is returned when a roster file could not be read completely.
// Records before the failing one have already been handed to the caller.
type LoadError struct {
	Path   string
	Loaded int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s (after %d records): %s", e.Path, e.Loaded, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PersistError is returned when a roster file could not be written. The
// previous file contents are left in place.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("saving %s: %s", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
