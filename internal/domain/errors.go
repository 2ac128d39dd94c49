package domain

import "errors"

var (
	// ErrNotFound means no live record has the requested id.
	ErrNotFound = errors.New("not_found")

	// ErrVersionConflict means a version-constrained update matched nothing.
	ErrVersionConflict = errors.New("version_conflict")
)
