package remote

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"comicconv/internal/convert"
	"comicconv/internal/logging"
)

// Transfer receives byte-level progress for the upload and download phases.
// All fields are optional.
type Transfer struct {
	UploadStart   func(total int)
	Uploaded      func(n int)
	DownloadStart func(total int)
	Downloaded    func(n int)
}

// SessionConfig bundles the per-session collaborators.
type SessionConfig struct {
	Job      convert.Job
	Logger   *slog.Logger
	Observer convert.Observer
	Transfer Transfer
}

// Session converts one archive over an established connection. It owns the
// connection for its lifetime and is not safe for concurrent use. A failed
// session leaves the connection in an undefined state; callers must
// reconnect before retrying.
type Session struct {
	conn     net.Conn
	job      convert.Job
	logger   *slog.Logger
	observer convert.Observer
	transfer Transfer

	sent        int64
	received    int64
	expected    int
	entriesDone int
}

// NewSession wraps an established connection. The job is normalized here so
// raw user input is acceptable.
func NewSession(conn net.Conn, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		conn:     conn,
		job:      cfg.Job.Normalize(),
		logger:   logger,
		observer: cfg.Observer,
		transfer: cfg.Transfer,
	}
}

// BytesSent reports payload and framing bytes written so far.
func (s *Session) BytesSent() int64 { return s.sent }

// BytesReceived reports bytes read so far.
func (s *Session) BytesReceived() int64 { return s.received }

// EntriesDone reports how many per-entry progress tokens have arrived.
func (s *Session) EntriesDone() (done, expected int) { return s.entriesDone, s.expected }

// Convert runs the full protocol state machine and returns the converted
// archive bytes.
func (s *Session) Convert(ctx context.Context, payload []byte) ([]byte, error) {
	code, ok := s.job.Format.WireCode()
	if !ok {
		return nil, fmt.Errorf("format %s cannot be offloaded", s.job.Format)
	}
	if tcp, isTCP := s.conn.(*net.TCPConn); isTCP {
		if err := tcp.SetNoDelay(true); err != nil {
			return nil, fmt.Errorf("configure connection: %w", err)
		}
	}

	if err := s.handshake(ctx); err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}
	if err := s.sendJob(ctx, code, payload); err != nil {
		return nil, fmt.Errorf("send job: %w", err)
	}
	if err := s.upload(ctx, payload); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if err := s.awaitProgress(ctx); err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	data, err := s.download(ctx)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return data, nil
}

func (s *Session) handshake(ctx context.Context) error {
	if err := s.write(ctx, []byte(clientMagic)); err != nil {
		return err
	}
	var reply [4]byte
	if err := s.read(ctx, reply[:]); err != nil {
		return err
	}
	if string(reply[:]) != serverMagic {
		return fmt.Errorf("%w: magic %q", convert.ErrInvalidResponse, reply)
	}
	return nil
}

func (s *Session) sendJob(ctx context.Context, code byte, payload []byte) error {
	header := JobHeader{
		FormatCode: code,
		Speed:      byte(s.job.Speed),
		Quality:    byte(s.job.Quality),
		PayloadLen: uint32(len(payload)),
	}.Encode()
	if err := s.write(ctx, header[:]); err != nil {
		return err
	}
	digest := sha256.Sum256(payload)
	return s.write(ctx, digest[:])
}

func (s *Session) upload(ctx context.Context, payload []byte) error {
	if s.transfer.UploadStart != nil {
		s.transfer.UploadStart(len(payload))
	}
	for sent := 0; sent < len(payload); {
		size := min(len(payload)-sent, chunkSize)
		if err := s.write(ctx, payload[sent:sent+size]); err != nil {
			return err
		}
		var ack [2]byte
		if err := s.read(ctx, ack[:]); err != nil {
			return err
		}
		if string(ack[:]) != ackToken {
			return fmt.Errorf("%w: chunk ack %q", convert.ErrInvalidResponse, ack)
		}
		sent += size
		if s.transfer.Uploaded != nil {
			s.transfer.Uploaded(size)
		}
	}
	return nil
}

func (s *Session) awaitProgress(ctx context.Context) error {
	count, err := s.readUint32(ctx)
	if err != nil {
		return err
	}
	s.expected = int(count)
	if s.observer != nil {
		s.observer.FileCount(s.expected)
	}
	for s.entriesDone < s.expected {
		var token [4]byte
		if err := s.read(ctx, token[:]); err != nil {
			return err
		}
		if string(token[:]) != entryToken {
			return fmt.Errorf("%w: progress token %q", convert.ErrInvalidResponse, token)
		}
		s.entriesDone++
		if s.observer != nil {
			s.observer.EntryDone()
		}
	}
	return nil
}

func (s *Session) download(ctx context.Context) ([]byte, error) {
	length, err := s.readUint32(ctx)
	if err != nil {
		return nil, err
	}
	var declared [digestSize]byte
	if err := s.read(ctx, declared[:]); err != nil {
		return nil, err
	}
	if s.transfer.DownloadStart != nil {
		s.transfer.DownloadStart(int(length))
	}

	data := make([]byte, 0, length)
	buf := make([]byte, chunkSize)
	for remaining := int(length); remaining > 0; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return nil, err
		}
		n, err := s.conn.Read(buf[:min(remaining, len(buf))])
		if n > 0 {
			s.received += int64(n)
			data = append(data, buf[:n]...)
			remaining -= n
			if s.transfer.Downloaded != nil {
				s.transfer.Downloaded(n)
			}
		}
		if err != nil {
			if remaining <= 0 && err == io.EOF {
				break
			}
			return nil, err
		}
	}

	digest := sha256.Sum256(data)
	if !bytes.Equal(digest[:], declared[:]) {
		return nil, convert.ErrHashMismatch
	}
	return data, nil
}

func (s *Session) readUint32(ctx context.Context) (uint32, error) {
	var buf [4]byte
	if err := s.read(ctx, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (s *Session) read(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return err
	}
	n, err := io.ReadFull(s.conn, buf)
	s.received += int64(n)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		// The server hung up where the protocol requires more bytes.
		return fmt.Errorf("%w: connection closed mid-phase", convert.ErrInvalidResponse)
	}
	return err
}

func (s *Session) write(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.conn.Write(buf)
	s.sent += int64(n)
	return err
}
