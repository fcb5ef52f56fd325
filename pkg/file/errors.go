package file

import "errors"

var (
	// ErrInvalidConfig is returned when a storage backend is missing required settings
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrInvalidPath is returned when the path contains invalid characters or traversal attempts
	ErrInvalidPath = errors.New("invalid path")

	// ErrFileNotFound is returned when a file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrDirectoryNotFound is returned when a directory does not exist
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrNotDirectory is returned when a path is expected to be a directory but isn't
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrIsDirectory is returned when a path is expected to be a file but is a directory
	ErrIsDirectory = errors.New("path is a directory")

	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
)
