package convert

import (
	"context"
	"log/slog"
	"strings"

	"comicconv/internal/archive"
	"comicconv/internal/imaging"
	"comicconv/internal/logging"
)

// Converter drives local conversion of whole archives.
type Converter struct {
	job      Job
	logger   *slog.Logger
	observer Observer
}

// New builds a Converter. logger and observer may be nil.
func New(job Job, logger *slog.Logger, observer Observer) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{job: job.Normalize(), logger: logger, observer: observer}
}

// Convert transcodes every image in the archive and rebuilds it, preserving
// entry order and renaming file entries to the target extension.
func (c *Converter) Convert(ctx context.Context, data []byte, kind archive.Kind) ([]byte, error) {
	entries, err := archive.Decode(data, kind)
	if err != nil {
		return nil, err
	}
	return c.convertEntries(ctx, entries, kind)
}

// ConvertDetect is Convert with magic-byte container detection.
func (c *Converter) ConvertDetect(ctx context.Context, data []byte) ([]byte, archive.Kind, error) {
	entries, kind, err := archive.Detect(data)
	if err != nil {
		return nil, 0, err
	}
	out, err := c.convertEntries(ctx, entries, kind)
	if err != nil {
		return nil, 0, err
	}
	return out, kind, nil
}

func (c *Converter) convertEntries(ctx context.Context, entries []archive.Entry, kind archive.Kind) ([]byte, error) {
	tasks := make([]Task, 0, len(entries))
	for i, entry := range entries {
		if entry.Dir {
			continue
		}
		tasks = append(tasks, Task{Index: i, Path: entry.Path, Data: entry.Data})
	}
	notifyFileCount(c.observer, len(tasks))

	c.logger.Info("converting archive",
		logging.String("container", kind.String()),
		logging.String("format", c.job.Format.String()),
		logging.Int("files", len(tasks)),
		logging.Int("workers", c.job.Threads),
	)

	opts := c.job.Options()
	results, err := runPool(ctx, c.job.Threads, tasks, func(task Task) ([]byte, error) {
		return imaging.Transcode(task.Data, c.job.Format, opts)
	}, func() {
		notifyEntryDone(c.observer)
	})
	if err != nil {
		return nil, err
	}

	extension := c.job.Format.Extension()
	rebuilt := make([]archive.Entry, len(entries))
	copy(rebuilt, entries)
	for _, task := range tasks {
		rebuilt[task.Index] = archive.Entry{
			Path: replaceExtension(task.Path, extension),
			Data: results[task.Index],
		}
	}
	return archive.Encode(rebuilt, kind)
}

// replaceExtension swaps the extension after the last dot for the target
// one; names without a dot gain the extension.
func replaceExtension(path, extension string) string {
	base := path
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		base = path[:idx]
	}
	return base + "." + extension
}
