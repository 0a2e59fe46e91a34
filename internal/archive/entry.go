package archive

import "errors"

// ErrUnsupportedContainer reports that input bytes are not a recognizable,
// readable archive of any supported kind. It is not retryable.
var ErrUnsupportedContainer = errors.New("unsupported container")

// Entry is one record inside an archive. Identity is the entry's position in
// the decoded slice; rebuilds must keep that order.
type Entry struct {
	Path string
	Dir  bool
	Data []byte
}
