package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/catalogit/core"
)

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A gentle breeze rustled the leaves of the old oak tree.",
	"She found a hidden key in the dusty attic.",
	"The city skyline glowed under the starry night sky.",
	"Rain drummed on the rooftop, creating a soothing rhythm.",
	"A bright comet streaked across the horizon at midnight.",
	"The ancient library held stories that never faded.",
	"Beneath the waves, coral gardens shimmered in colors unseen.",
	"A mysterious map led them to a forgotten treasure.",
	"Sunlight filtered through curtains, turning dust motes into golden specks.",
	"The old clock chimed thirteen times in an abandoned town.",
	"A sudden thunderclap shattered the silence of the forest.",
	"The desert dunes shifted silently under a pale moon.",
	"She painted the sunset with bold strokes of crimson and gold.",
	"They discovered an ancient rune carved deep within the stone.",
	"The lighthouse beam cut through fog, guiding sailors safely.",
	"A gentle snowfall blanketed the city in quiet white.",
	"The river's current carried leaves downstream like paper boats.",
	"They explored caves filled with stalactites glittering like chandeliers.",
	"The old map showed roads that no longer existed.",
}

var (
	outDir = flag.String("out", "./sample_records", "directory to write sample record files into")
	count  = flag.Int("count", 20, "number of record files to generate")
	format = flag.String("format", "mus", "record file format (mus, json, text)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func writeMUS(path string, record core.Record) error {
	bs := make([]byte, core.RecordMUS.Size(record))
	core.RecordMUS.Marshal(record, bs)
	return os.WriteFile(path, bs, 0644)
}

func writeJSON(path string, record core.Record) error {
	doc := map[string]any{
		"title":       record.Title,
		"contentType": record.ContentType,
		"contents":    string(record.Contents),
		"metadata":    record.Metadata,
	}
	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}

func writeText(path string, record core.Record) error {
	body := fmt.Sprintf("%s\n\n%s\n", record.Title, record.Contents)
	return os.WriteFile(path, []byte(body), 0644)
}

func main() {
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	extension := map[string]string{"mus": ".rec", "json": ".json", "text": ".txt"}[*format]
	if extension == "" {
		slog.Error("unknown format", "format", *format)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		sentence := sentences[i%len(sentences)]
		record := core.Record{
			Title:       fmt.Sprintf("Sample record %d", i+1),
			ContentType: "text/plain",
			Contents:    fmt.Appendf(nil, "%s (copy %d)", sentence, i/len(sentences)+1),
			Metadata:    map[string]string{"generator": "recordgen"},
		}

		path := filepath.Join(*outDir, fmt.Sprintf("record-%04d%s", i+1, extension))
		var err error
		switch *format {
		case "mus":
			err = writeMUS(path, record)
		case "json":
			err = writeJSON(path, record)
		case "text":
			err = writeText(path, record)
		}
		if err != nil {
			panic(err)
		}
	}

	slog.Info("generated sample records", "count", *count, "format", *format, "dir", *outDir)
}
