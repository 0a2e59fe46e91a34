package archive

import (
	"fmt"
	"strings"

	"github.com/h2non/filetype"
)

// Kind identifies a container format.
type Kind int

const (
	KindZip Kind = iota
	KindTar
	KindSevenZip
	KindRar
)

func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindTar:
		return "tar"
	case KindSevenZip:
		return "7z"
	case KindRar:
		return "rar"
	default:
		return "unknown"
	}
}

// Writable reports whether archives of this kind can be produced natively.
// Non-writable kinds fall back to zip output in Encode.
func (k Kind) Writable() bool {
	return k == KindZip || k == KindTar
}

// ParseKind resolves a user-supplied archive kind name. Both the container
// names and the comic extensions are accepted.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "zip", "cbz":
		return KindZip, nil
	case "tar", "cbt":
		return KindTar, nil
	case "7z", "cb7":
		return KindSevenZip, nil
	case "rar", "cbr":
		return KindRar, nil
	default:
		return 0, fmt.Errorf("unknown archive kind %q", value)
	}
}

// DetectKind sniffs the container kind from magic bytes.
func DetectKind(data []byte) (Kind, error) {
	match, _ := filetype.Match(data)
	switch match.Extension {
	case "zip":
		return KindZip, nil
	case "tar":
		return KindTar, nil
	case "7z":
		return KindSevenZip, nil
	case "rar":
		return KindRar, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized magic bytes", ErrUnsupportedContainer)
	}
}
