package util

import "errors"

var (
	ErrNoActivePuzzle     = errors.New("no active puzzle")
	ErrRosterTooSmall     = errors.New("roster must contain at least 2 entities")
	ErrNoThemes           = errors.New("theme list is empty")
	ErrInvalidAttempts    = errors.New("attempts must be a positive integer")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrStorageUnavailable = errors.New("storage provider unavailable")
)
