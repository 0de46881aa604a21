package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/transform"
)

// producer walks the source tree sequentially, transforms each file,
// and pushes the resulting records onto the shared queue. It is the
// only stage that appends to the queue.
type producer struct {
	root        string
	transformer transform.Transformer
	filter      *IgnoreFilter
	queue       *recordQueue
	stats       *RunStats
	tracker     *ProgressTracker
	failedDir   string // empty when no failure directory is configured
	console     io.Writer
	logger      *slog.Logger
	ingestLog   *slog.Logger
}

// run consumes the file sequence and always marks the queue built on
// return. That flag is the sole signal to the scheduler that no more
// records will ever be enqueued.
func (p *producer) run(ctx context.Context) {
	defer p.stats.MarkQueueBuilt()

	err := walkFiles(p.root, func(path string) error {
		p.handleFile(ctx, path)
		return nil
	})
	if err != nil {
		p.logger.Error("directory walk failed", "root", p.root, "err", err)
		fmt.Fprintf(p.console, "Error: failed to walk [%s]: %v\n", p.root, err)
	}
}

func (p *producer) handleFile(ctx context.Context, path string) {
	name := filepath.Base(path)

	if p.filter.Hidden(name) {
		p.stats.IncIgnored()
		return
	}
	if p.filter.Matches(name) {
		p.stats.IncIgnored()
		p.tracker.Refresh()
		return
	}

	record, err := p.transformFile(ctx, path)
	if err != nil {
		p.logger.Debug("failed to ingest file", "path", path, "err", err)
		p.ingestLog.Warn("failed to ingest file", "path", path, "err", fmt.Sprintf("%+v", err))
		if p.failedDir != "" {
			p.moveToFailedDir(path)
		}
		fmt.Fprintf(p.console, "Error: failed to ingest file [%s].\n", path)
		return
	}

	if record.Title == "" {
		p.logger.Debug("record title was blank, using file name", "path", path)
		record.Title = name
	}
	if record.Source == "" {
		record.Source = path
	}
	p.queue.Push(record)
}

func (p *producer) transformFile(ctx context.Context, path string) (*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.transformer.Transform(ctx, f, filepath.Base(path))
}

// moveToFailedDir relocates a failed source file. A failed rename is
// reported but does not abort the run.
func (p *producer) moveToFailedDir(path string) {
	destination := filepath.Join(p.failedDir, filepath.Base(path))
	if err := os.Rename(path, destination); err != nil {
		p.logger.Error("unable to move failed source file", "path", path, "destination", p.failedDir, "err", err)
		fmt.Fprintf(p.console, "Error: unable to move source file [%s] to [%s].\n", path, p.failedDir)
	}
}
