package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/catalogit/core"
)

// JSON decodes a Record from a JSON document.
type JSON struct{}

var _ Transformer = JSON{}

// jsonRecord is the accepted document shape. Contents is a plain string
// rather than base64 so documents can be written by hand.
type jsonRecord struct {
	Id          uint64            `json:"id,omitempty"`
	Title       string            `json:"title"`
	ContentType string            `json:"contentType,omitempty"`
	Contents    string            `json:"contents"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Transform reads the full input and decodes a Record from it.
func (JSON) Transform(ctx context.Context, r io.Reader, name string) (*core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	var doc jsonRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding json record: %w", err)
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/json"
	}

	return &core.Record{
		Id:          core.ID(doc.Id),
		Title:       doc.Title,
		ContentType: contentType,
		Contents:    []byte(doc.Contents),
		Metadata:    doc.Metadata,
	}, nil
}
