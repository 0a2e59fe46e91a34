package remote

import (
	"encoding/binary"
	"time"
)

// Wire constants. The protocol is byte-exact: fixed magics, a fixed ack
// token per uploaded chunk, and a fixed progress token per converted entry.
const (
	clientMagic = "comi"
	serverMagic = "conv"
	ackToken    = "ok"
	entryToken  = "plus"

	// chunkSize caps each upload write; the server acks per chunk.
	chunkSize = 1 << 20

	// readTimeout bounds every read after the connection is established.
	readTimeout = 10 * time.Second

	// digestSize is the length of the SHA-256 content hash exchanged in
	// both directions.
	digestSize = 32

	// headerSize is the job header: format code, speed, quality, one
	// reserved byte, then the payload length as a big-endian uint32.
	headerSize = 8
)

// JobHeader is the decoded form of the 8-byte job header. The server side
// of the protocol (and the test harness) parses uploads with it.
type JobHeader struct {
	FormatCode byte
	Speed      byte
	Quality    byte
	PayloadLen uint32
}

// Encode renders the header in wire order. Byte 3 is reserved and zero.
func (h JobHeader) Encode() [headerSize]byte {
	var buf [headerSize]byte
	buf[0] = h.FormatCode
	buf[1] = h.Speed
	buf[2] = h.Quality
	binary.BigEndian.PutUint32(buf[4:], h.PayloadLen)
	return buf
}

// ParseJobHeader decodes an 8-byte job header.
func ParseJobHeader(buf [headerSize]byte) JobHeader {
	return JobHeader{
		FormatCode: buf[0],
		Speed:      buf[1],
		Quality:    buf[2],
		PayloadLen: binary.BigEndian.Uint32(buf[4:]),
	}
}
