package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// Decode enumerates the archive's entries in container order. Corrupt or
// unreadable input fails with ErrUnsupportedContainer.
func Decode(data []byte, kind Kind) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch kind {
	case KindZip:
		entries, err = decodeZip(data)
	case KindTar:
		entries, err = decodeTar(data)
	case KindSevenZip:
		entries, err = decodeSevenZip(data)
	case KindRar:
		entries, err = decodeRar(data)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedContainer, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnsupportedContainer, kind, err)
	}
	return entries, nil
}

// Detect sniffs the kind and decodes in one step.
func Detect(data []byte) ([]Entry, Kind, error) {
	kind, err := DetectKind(data)
	if err != nil {
		return nil, 0, err
	}
	entries, err := Decode(data, kind)
	if err != nil {
		return nil, 0, err
	}
	return entries, kind, nil
}

func decodeZip(data []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(zr.File))
	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			entries = append(entries, Entry{Path: file.Name, Dir: true})
			continue
		}
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", file.Name, err)
		}
		entries = append(entries, Entry{Path: file.Name, Data: content})
	}
	return entries, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func decodeTar(data []byte) ([]Entry, error) {
	tr := tar.NewReader(bytes.NewReader(data))
	var entries []Entry
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			entries = append(entries, Entry{Path: header.Name, Dir: true})
		case tar.TypeReg:
			content, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("entry %s: %w", header.Name, err)
			}
			entries = append(entries, Entry{Path: header.Name, Data: content})
		}
	}
}

func decodeSevenZip(data []byte) ([]Entry, error) {
	sr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(sr.File))
	for _, file := range sr.File {
		if file.FileInfo().IsDir() {
			entries = append(entries, Entry{Path: file.Name, Dir: true})
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", file.Name, err)
		}
		entries = append(entries, Entry{Path: file.Name, Data: content})
	}
	return entries, nil
}

func decodeRar(data []byte) ([]Entry, error) {
	rr, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for {
		header, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		name := strings.ReplaceAll(header.Name, `\`, "/")
		if header.IsDir {
			entries = append(entries, Entry{Path: name, Dir: true})
			continue
		}
		content, err := io.ReadAll(rr)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", name, err)
		}
		entries = append(entries, Entry{Path: name, Data: content})
	}
}
