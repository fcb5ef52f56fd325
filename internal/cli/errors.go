package cli

import "errors"

var (
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrUnknownStore         = errors.New("unknown store, expected memory or postgres")
	ErrUnknownStorage       = errors.New("unknown storage, expected local or s3")
	ErrInvalidUserID        = errors.New("user id must be positive")
	ErrInvalidEntryID       = errors.New("invalid entry id")
	ErrPostgresRequired     = errors.New("command requires the postgres store")
	ErrConfirmationRequired = errors.New("refusing to delete every secret without --yes")
)
