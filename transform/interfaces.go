package transform

import (
	"context"
	"io"

	"github.com/poiesic/catalogit/core"
)

// Transformer converts the bytes of a single source file into a Record.
// name is the base name of the source file; implementations may use it
// for titles or content-type detection but must not touch the filesystem.
type Transformer interface {
	Transform(ctx context.Context, r io.Reader, name string) (*core.Record, error)
}
