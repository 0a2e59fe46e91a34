package convert

import (
	"errors"
	"fmt"

	"comicconv/internal/archive"
)

var (
	// ErrInvalidResponse reports a remote peer violating the wire protocol.
	// Recoverable only by reconnecting and restarting from the handshake.
	ErrInvalidResponse = errors.New("invalid server response")

	// ErrHashMismatch reports a downloaded payload whose digest does not
	// match the one the server declared. Recoverable only by full retry.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrUnsupportedContainer mirrors the archive sentinel so callers can
	// classify every conversion failure through this package.
	ErrUnsupportedContainer = archive.ErrUnsupportedContainer
)

// CodecError reports a decode or encode failure for a single archive entry.
// The index identifies the entry in container order.
type CodecError struct {
	Index int
	Path  string
	Err   error
}

func (e *CodecError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("entry %d (%s): %v", e.Index, e.Path, e.Err)
	}
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// Retryable reports whether a failed run may succeed when repeated from
// scratch. Protocol violations, integrity failures, and transport errors
// qualify; an unreadable container or a broken image never will.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnsupportedContainer) {
		return false
	}
	var codecErr *CodecError
	return !errors.As(err, &codecErr)
}
