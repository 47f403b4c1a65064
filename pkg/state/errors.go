package state

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence matches every *PersistenceError via errors.Is.
	ErrPersistence = errors.New("state: persistence failure")
	// ErrCorruptDocument reports stored content that is not a flat object.
	ErrCorruptDocument = errors.New("state: corrupt document")
	// ErrUnsupportedFormat reports a file extension with no known encoding.
	ErrUnsupportedFormat = errors.New("state: unsupported document format")
)

// PersistenceError reports a failed load or save of the backing document.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("state: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports true for ErrPersistence so callers can match the error kind
// without unwrapping.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func persistenceError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *PersistenceError
	if errors.As(err, &existing) {
		return err
	}
	return &PersistenceError{Op: op, Path: path, Err: err}
}
