// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/catalogit"
	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/ingest"
	"github.com/poiesic/catalogit/transform"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalogit",
		Usage: "Bulk file ingest for catalog stores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a file or directory tree into the catalog",
				ArgsUsage: "<path>",
				Action:    ingestCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:    "transformer",
						Aliases: []string{"t"},
						Usage:   "Transformer used to turn files into records (mus, json, text)",
						Value:   transform.DefaultID,
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"m"},
						Usage:   "Number of concurrent store submissions",
						Value:   ingest.DefaultConcurrency,
					},
					&cli.IntFlag{
						Name:    "batchsize",
						Aliases: []string{"b"},
						Usage:   "Number of records submitted to the store at a time",
						Value:   ingest.DefaultBatchSize,
					},
					&cli.StringFlag{
						Name:    "failed-dir",
						Aliases: []string{"f"},
						Usage:   "Directory that receives source files that fail to transform (forces batchsize 1)",
					},
					&cli.StringSliceFlag{
						Name:    "ignore",
						Aliases: []string{"i"},
						Usage:   "File extension or exact file name to skip (repeatable)",
					},
					&cli.StringFlag{
						Name:  "ingest-log",
						Usage: "File that receives per-file and per-batch failure detail",
					},
				),
			},
			{
				Name:      "show",
				Usage:     "Show a record by ID, or the record count with no arguments",
				ArgsUsage: "[record-id]",
				Action:    showCommand,
				Flags:     storeFlags(),
			},
		},
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Aliases: []string{"s"},
			Usage:   "Catalog store backend (badger, postgres)",
			Value:   "badger",
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the BadgerDB store directory",
			Value:   "./catalog_db",
		},
		&cli.StringFlag{
			Name:    "dsn",
			Usage:   "PostgreSQL connection string",
			EnvVars: []string{"DATABASE_URL"},
		},
	}
}

func openCatalog(ctx context.Context, c *cli.Context) (*catalogit.Catalog, error) {
	switch c.String("store") {
	case "badger":
		return catalogit.NewCatalog(c.String("db"))
	case "postgres":
		dsn := c.String("dsn")
		if dsn == "" {
			return nil, fmt.Errorf("postgres store requires --dsn or DATABASE_URL")
		}
		return catalogit.NewPostgresCatalog(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store %q: must be one of badger, postgres", c.String("store"))
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a file or directory path is required")
	}

	catalog, err := openCatalog(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	cfg := ingest.DefaultConfig()
	cfg.RootPath = path
	cfg.TransformerID = c.String("transformer")
	cfg.Concurrency = c.Int("concurrency")
	cfg.BatchSize = c.Int("batchsize")
	cfg.FailedDir = c.String("failed-dir")
	cfg.IgnoreList = c.StringSlice("ignore")

	var opts []ingest.Option
	if logPath := c.String("ingest-log"); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open ingest log: %w", err)
		}
		defer f.Close()
		opts = append(opts, ingest.WithIngestLogger(slog.New(slog.NewTextHandler(f, nil))))
	}

	ingester, err := catalog.NewIngester(cfg, opts...)
	if err != nil {
		return err
	}

	if _, err := ingester.Run(ctx); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	catalog, err := openCatalog(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	if c.Args().Len() == 0 {
		count, err := catalog.Store().CountRecords(ctx)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		fmt.Printf("%d record(s) in catalog\n", count)
		return nil
	}

	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record ID %q: %w", c.Args().First(), err)
	}

	record, err := catalog.Store().GetRecord(ctx, core.ID(id))
	if err != nil {
		return fmt.Errorf("failed to get record %d: %w", id, err)
	}

	fmt.Printf("ID:           %d\n", record.Id)
	fmt.Printf("Title:        %s\n", record.Title)
	fmt.Printf("Source:       %s\n", record.Source)
	fmt.Printf("Content-Type: %s\n", record.ContentType)
	fmt.Printf("Size:         %d byte(s)\n", len(record.Contents))
	fmt.Printf("Created:      %s\n", record.CreatedAt)
	fmt.Printf("Modified:     %s\n", record.ModifiedAt)
	for key, value := range record.Metadata {
		fmt.Printf("Metadata:     %s=%s\n", key, value)
	}
	return nil
}

func setup(c *cli.Context) error {
	// .env is optional; flags and real environment take precedence
	_ = godotenv.Load()
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
