package otpimport

import "errors"

var (
	// ErrFileProcess reports an item source or report sink that could not be read or written.
	ErrFileProcess = errors.New("failed to process import file")
	// ErrAborted wraps a non-classifiable error returned by the add callback.
	ErrAborted = errors.New("import aborted")
)
