package transform

import (
	"context"
	"fmt"
	"io"

	"github.com/poiesic/catalogit/core"
)

// MUS decodes a Record from its MUS binary encoding. This is the
// default transformer: it ingests files produced by catalogit itself
// (or by recordgen).
type MUS struct{}

var _ Transformer = MUS{}

// Transform reads the full input and decodes a Record from it.
func (MUS) Transform(ctx context.Context, r io.Reader, name string) (*core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	record, _, err := core.RecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decoding mus record: %w", err)
	}
	return &record, nil
}
