package ingest

import "errors"

var (
	// ErrStoreRequired is returned when a catalog store is not provided.
	ErrStoreRequired = errors.New("catalog store required")

	// ErrInvalidBatchSize is returned when the configured batch size is
	// not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrRootRequired is returned when no root path is configured.
	ErrRootRequired = errors.New("root path required")

	// ErrRootNotFound is returned when the configured root path does not
	// exist.
	ErrRootNotFound = errors.New("file or directory must exist")

	// ErrFailedDirNotWritable is returned when the ingest failure
	// directory cannot be created or written to.
	ErrFailedDirNotWritable = errors.New("ingest failure directory is not writable")

	// ErrCycleDetected is returned when the directory walk encounters a
	// symbolic link cycle.
	ErrCycleDetected = errors.New("symbolic link cycle detected")
)
