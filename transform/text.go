package transform

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/catalogit/core"
	"github.com/tmc/langchaingo/documentloaders"
)

// maxTitleLen bounds titles taken from the first line of a document.
const maxTitleLen = 120

// Text builds a Record from a plain-text document. The title is the
// first non-blank line; the pipeline backfills the file name when the
// document is blank-headed.
type Text struct{}

var _ Transformer = Text{}

// Transform loads the document and maps it onto a Record.
func (Text) Transform(ctx context.Context, r io.Reader, name string) (*core.Record, error) {
	loader := documentloaders.NewText(r)
	docs, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading text document: %w", err)
	}
	if len(docs) == 0 || docs[0].PageContent == "" {
		return nil, ErrEmptyInput
	}

	content := docs[0].PageContent

	return &core.Record{
		Title:       firstLine(content),
		ContentType: "text/plain",
		Contents:    []byte(content),
	}, nil
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxTitleLen {
			line = line[:maxTitleLen]
		}
		return line
	}
	return ""
}
