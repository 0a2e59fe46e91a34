package imaging

import (
	"fmt"
	"strings"
)

// Format identifies a target image format.
type Format int

const (
	FormatAVIF Format = iota
	FormatWebP
	FormatPNG
	FormatJPEG
	FormatJXL
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "avif":
		return FormatAVIF, nil
	case "webp":
		return FormatWebP, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "jxl", "jpegxl":
		return FormatJXL, nil
	default:
		return 0, fmt.Errorf("unknown image format %q", value)
	}
}

// Extension returns the file extension used when renaming converted entries,
// without a leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatAVIF:
		return "avif"
	case FormatWebP:
		return "webp"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	case FormatJXL:
		return "jxl"
	default:
		return ""
	}
}

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return f.Extension()
}

// WireCode returns the one-byte format code used by the remote conversion
// protocol. JPEG XL has no code assigned; offloading it is rejected before
// any traffic is sent.
func (f Format) WireCode() (byte, bool) {
	switch f {
	case FormatAVIF:
		return 'A', true
	case FormatWebP:
		return 'W', true
	case FormatPNG:
		return 'P', true
	case FormatJPEG:
		return 'J', true
	default:
		return 0, false
	}
}
