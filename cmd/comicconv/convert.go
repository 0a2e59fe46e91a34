package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"comicconv/internal/archive"
	"comicconv/internal/config"
	"comicconv/internal/convert"
	"comicconv/internal/imaging"
	"comicconv/internal/logging"
	"comicconv/internal/remote"
	"comicconv/internal/staging"
)

type convertOptions struct {
	format      string
	quality     int
	speed       int
	archiveKind string
	threads     int
	server      string
	quiet       bool
	backup      bool
	configPath  string
}

type fileResult struct {
	path     string
	inSize   int64
	outSize  int64
	duration time.Duration
	err      error
}

func runConvert(ctx context.Context, opts *convertOptions, files []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	formatName := cfg.Conversion.Format
	if opts.format != "" {
		formatName = opts.format
	}
	format, err := imaging.ParseFormat(formatName)
	if err != nil {
		return err
	}

	job := convert.Job{
		Format:  format,
		Quality: cfg.Conversion.Quality,
		Speed:   cfg.Conversion.Speed,
		Threads: cfg.Conversion.Threads,
	}
	if opts.quality >= 0 {
		job.Quality = opts.quality
	}
	if opts.speed >= 0 {
		job.Speed = opts.speed
	}
	if opts.threads > 0 {
		job.Threads = opts.threads
	}
	job = job.Normalize()

	var kind archive.Kind
	kindSet := opts.archiveKind != ""
	if kindSet {
		if kind, err = archive.ParseKind(opts.archiveKind); err != nil {
			return err
		}
	}

	server := cfg.Remote.Server
	if opts.server != "" {
		server = opts.server
	}
	backup := opts.backup || cfg.Conversion.Backup

	// Progress bars only make sense on an interactive terminal.
	interactive := !opts.quiet && isatty.IsTerminal(os.Stdout.Fd())

	logger := logging.NewNop()
	if !opts.quiet {
		if logger, err = logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
			return err
		}
	}

	run, err := staging.NewRun(cfg.Paths.StagingDir)
	if err != nil {
		return err
	}
	defer run.Close()
	staging.CleanStale(cfg.Paths.StagingDir, 24*time.Hour, logger)

	var client *remote.Client
	if server != "" {
		if client, err = remote.Dial(ctx, server, cfg.Remote.Attempts, logger); err != nil {
			return err
		}
		defer client.Close()
	}

	results := make([]fileResult, 0, len(files))
	failed := 0
	for i, file := range files {
		if !opts.quiet {
			fmt.Printf("[%d/%d] Converting %s...\n", i+1, len(files), file)
		}
		res := convertOne(ctx, file, i, convertDeps{
			job:         job,
			kind:        kind,
			kindSet:     kindSet,
			backup:      backup,
			interactive: interactive,
			logger:      logger,
			run:         run,
			client:      client,
		})
		if res.err != nil {
			failed++
			logger.Error("conversion failed",
				logging.String("file", file),
				logging.Error(res.err),
			)
		}
		results = append(results, res)
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if !opts.quiet {
		fmt.Print(renderSummary(results))
		fmt.Println("Done!")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

type convertDeps struct {
	job         convert.Job
	kind        archive.Kind
	kindSet     bool
	backup      bool
	interactive bool
	logger      *slog.Logger
	run         *staging.Run
	client      *remote.Client
}

func convertOne(ctx context.Context, file string, index int, deps convertDeps) fileResult {
	start := time.Now()
	result := fileResult{path: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.err = err
		return result
	}
	result.inSize = int64(len(data))

	reporter := newReporter(deps.interactive)
	defer reporter.stop()

	var out []byte
	if deps.client != nil {
		out, err = deps.client.Convert(ctx, remote.SessionConfig{
			Job:      deps.job,
			Logger:   deps.logger,
			Observer: reporter,
			Transfer: reporter.transfer(),
		}, data)
	} else {
		converter := convert.New(deps.job, deps.logger, reporter)
		if deps.kindSet {
			out, err = converter.Convert(ctx, data, deps.kind)
		} else {
			out, _, err = converter.ConvertDetect(ctx, data)
		}
	}
	if err != nil {
		result.err = err
		return result
	}
	result.outSize = int64(len(out))

	if err := replaceFile(deps.run, index, file, out, deps.backup); err != nil {
		result.err = err
		return result
	}
	result.duration = time.Since(start)
	return result
}

// replaceFile stages the rebuilt archive in the run directory first; the
// original is touched only once the new bytes are safely on disk.
func replaceFile(run *staging.Run, index int, file string, data []byte, backup bool) error {
	staged := run.Path(fmt.Sprintf("%d-%s", index, filepath.Base(file)))
	if err := os.WriteFile(staged, data, 0o644); err != nil {
		return fmt.Errorf("stage output: %w", err)
	}
	if backup {
		if err := os.Rename(file, file+".bak"); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}
	if err := moveIntoPlace(staged, file); err != nil {
		return fmt.Errorf("replace original: %w", err)
	}
	return nil
}

// moveIntoPlace prefers rename and falls back to copy when staging lives on
// another filesystem.
func moveIntoPlace(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
