package internal

import (
	"errors"
	"fmt"
)

// ErrNotText is returned for files whose content is not valid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// FileError records a failure to access a single path during a run.
type FileError struct {
	Op   string // "read", "readdir" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
