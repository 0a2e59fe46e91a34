// Package testsupport builds the archive and image fixtures the package
// tests share: tiny generated PNGs and in-memory zip/tar archives with a
// controlled entry order.
package testsupport

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// Entry describes one archive member for the builders below.
type Entry struct {
	Path string
	Dir  bool
	Data []byte
}

// PNG returns an encoded width x height image filled with a color gradient.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 37), G: uint8(y * 53), B: uint8((x + y) * 11), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture png: %v", err)
	}
	return buf.Bytes()
}

// Zip builds a zip archive with entries in the given order.
func Zip(t *testing.T, entries []Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		if entry.Dir {
			name := entry.Path
			if !strings.HasSuffix(name, "/") {
				name += "/"
			}
			if _, err := zw.Create(name); err != nil {
				t.Fatalf("fixture zip dir %s: %v", entry.Path, err)
			}
			continue
		}
		w, err := zw.Create(entry.Path)
		if err != nil {
			t.Fatalf("fixture zip entry %s: %v", entry.Path, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			t.Fatalf("fixture zip entry %s: %v", entry.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("finalize fixture zip: %v", err)
	}
	return buf.Bytes()
}

// Tar builds a tar archive with entries in the given order.
func Tar(t *testing.T, entries []Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, entry := range entries {
		header := &tar.Header{Name: entry.Path, Mode: 0o644, Typeflag: tar.TypeReg, Size: int64(len(entry.Data))}
		if entry.Dir {
			header = &tar.Header{Name: strings.TrimSuffix(entry.Path, "/") + "/", Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("fixture tar entry %s: %v", entry.Path, err)
		}
		if !entry.Dir {
			if _, err := tw.Write(entry.Data); err != nil {
				t.Fatalf("fixture tar entry %s: %v", entry.Path, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("finalize fixture tar: %v", err)
	}
	return buf.Bytes()
}
