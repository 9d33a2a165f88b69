package searchlog

import (
	"errors"
	"fmt"
)

// Search log error sentinels.
var (
	ErrEmptyTerm      = errors.New("search term is empty")
	ErrStoreCorrupted = errors.New("search log is corrupted")
	ErrStoreWrite     = errors.New("failed to write search log")
)

// CorruptedError reports a backing table that exists but cannot be parsed.
// It matches ErrStoreCorrupted.
type CorruptedError struct {
	Path string
	Err  error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("search log %s is corrupted: %v", e.Path, e.Err)
}

func (e *CorruptedError) Unwrap() error { return e.Err }

func (e *CorruptedError) Is(target error) bool { return target == ErrStoreCorrupted }

// WriteError reports a failed write-back of the table. It matches ErrStoreWrite.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write search log %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrStoreWrite }
