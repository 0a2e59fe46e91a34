// Package remote implements the client side of the comicconv offload
// protocol: a length-prefixed streaming protocol that ships a whole archive
// to a conversion server over one TCP connection and streams the converted
// archive back.
//
// A session walks fixed phases in order: handshake, job header plus payload
// digest, chunked upload with per-chunk acks, expected entry count, one
// progress token per converted entry, result header plus digest, download,
// and a final integrity check. Every read is bounded by a deadline, so a
// stalled or short server stream fails instead of hanging. Nothing is
// resumable mid-stream; any failure means reconnecting and replaying the
// full payload, which Client's attempt loop does for retryable errors.
package remote
