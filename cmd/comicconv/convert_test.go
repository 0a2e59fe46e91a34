package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"comicconv/internal/archive"
	"comicconv/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[paths]\nstaging_dir = %q\n", filepath.Join(dir, "staging"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeComic(t *testing.T, dir, name string) string {
	t.Helper()
	page := testsupport.PNG(t, 16, 16)
	data := testsupport.Zip(t, []testsupport.Entry{
		{Path: "pages/", Dir: true},
		{Path: "pages/001.png", Data: page},
		{Path: "pages/002.png", Data: page},
	})
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunConvertLocal(t *testing.T) {
	comic := writeComic(t, t.TempDir(), "book.cbz")
	opts := &convertOptions{
		format:     "jpeg",
		quality:    80,
		speed:      3,
		threads:    2,
		quiet:      true,
		configPath: writeTestConfig(t),
	}

	if err := runConvert(context.Background(), opts, []string{comic}); err != nil {
		t.Fatalf("runConvert: %v", err)
	}

	data, err := os.ReadFile(comic)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := archive.Decode(data, archive.KindZip)
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[1].Path != "pages/001.jpg" || entries[2].Path != "pages/002.jpg" {
		t.Fatalf("entries not renamed: %q, %q", entries[1].Path, entries[2].Path)
	}
}

func TestRunConvertBackup(t *testing.T) {
	dir := t.TempDir()
	comic := writeComic(t, dir, "book.cbz")
	original, err := os.ReadFile(comic)
	if err != nil {
		t.Fatal(err)
	}

	opts := &convertOptions{
		format:     "jpeg",
		quality:    80,
		speed:      3,
		quiet:      true,
		backup:     true,
		configPath: writeTestConfig(t),
	}
	if err := runConvert(context.Background(), opts, []string{comic}); err != nil {
		t.Fatalf("runConvert: %v", err)
	}

	backup, err := os.ReadFile(comic + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != string(original) {
		t.Fatal("backup does not match original bytes")
	}
}

func TestRunConvertLeavesOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.cbz")
	if err := os.WriteFile(garbage, []byte("not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &convertOptions{
		format:     "jpeg",
		quiet:      true,
		quality:    -1,
		speed:      -1,
		configPath: writeTestConfig(t),
	}
	if err := runConvert(context.Background(), opts, []string{garbage}); err == nil {
		t.Fatal("expected failure for unsupported container")
	}

	data, err := os.ReadFile(garbage)
	if err != nil || string(data) != "not an archive" {
		t.Fatalf("original was touched: %q, %v", data, err)
	}
}

func TestRunConvertExplicitKind(t *testing.T) {
	dir := t.TempDir()
	page := testsupport.PNG(t, 8, 8)
	data := testsupport.Tar(t, []testsupport.Entry{{Path: "a.png", Data: page}})
	comic := filepath.Join(dir, "book.cbt")
	if err := os.WriteFile(comic, data, 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &convertOptions{
		format:      "png",
		quality:     -1,
		speed:       -1,
		archiveKind: "cbt",
		quiet:       true,
		configPath:  writeTestConfig(t),
	}
	if err := runConvert(context.Background(), opts, []string{comic}); err != nil {
		t.Fatalf("runConvert: %v", err)
	}

	out, err := os.ReadFile(comic)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := archive.Decode(out, archive.KindTar)
	if err != nil {
		t.Fatalf("output is not a tar: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "a.png" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
