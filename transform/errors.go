package transform

import "errors"

var (
	// ErrUnknownTransformer is returned when no transformer is registered
	// under the requested identifier.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrEmptyInput is returned when the source file has no content to
	// transform.
	ErrEmptyInput = errors.New("empty input")
)
