package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// Encode rebuilds an archive from entries, preserving slice order. Kinds
// without a writer (7z, rar) produce zip bytes.
func Encode(entries []Entry, kind Kind) ([]byte, error) {
	if kind == KindTar {
		return encodeTar(entries)
	}
	return encodeZip(entries)
}

func encodeZip(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	for _, entry := range entries {
		if entry.Dir {
			name := entry.Path
			if !strings.HasSuffix(name, "/") {
				name += "/"
			}
			if _, err := zw.Create(name); err != nil {
				return nil, fmt.Errorf("write directory %s: %w", entry.Path, err)
			}
			continue
		}
		w, err := zw.Create(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("write entry %s: %w", entry.Path, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", entry.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeTar(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, entry := range entries {
		if entry.Dir {
			name := entry.Path
			if !strings.HasSuffix(name, "/") {
				name += "/"
			}
			header := &tar.Header{Name: name, Mode: 0o755, Typeflag: tar.TypeDir}
			if err := tw.WriteHeader(header); err != nil {
				return nil, fmt.Errorf("write directory %s: %w", entry.Path, err)
			}
			continue
		}
		header := &tar.Header{
			Name:     entry.Path,
			Mode:     0o644,
			Size:     int64(len(entry.Data)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", entry.Path, err)
		}
		if _, err := tw.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", entry.Path, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("finalize tar: %w", err)
	}
	return buf.Bytes(), nil
}
