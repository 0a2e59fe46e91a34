package remote

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
)

func TestClientReconnectsAndReplays(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	// First connection dies right after the handshake; the second one
	// serves the full protocol.
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		var magic [4]byte
		if _, err := io.ReadFull(conn, magic[:]); err == nil {
			conn.Write([]byte(serverMagic))
		}
		conn.Close()

		conn, err = listener.Accept()
		if err != nil {
			return
		}
		serveConversion(t, conn, 2)
	}()

	client, err := Dial(context.Background(), listener.Addr().String(), 2, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	payload := []byte("archive bytes")
	result, err := client.Convert(context.Background(), SessionConfig{Job: testJob()}, payload)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !bytes.Equal(result, bytes.ToUpper(payload)) {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestClientGivesUpAfterAttempts(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	// Every connection is dropped immediately.
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	client, err := Dial(context.Background(), listener.Addr().String(), 2, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	if _, err := client.Convert(context.Background(), SessionConfig{Job: testJob()}, []byte("payload")); err == nil {
		t.Fatal("expected failure after exhausting attempts")
	}
}
