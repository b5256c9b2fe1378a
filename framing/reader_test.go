// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package framing

import (
	"bytes"
	"io"
	"testing"
)

func buildStream(t *testing.T, payloads ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, p := range payloads {
		if err := WriteFrame(&buf, p); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestReadFramesRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello"),
		[]byte(""),
		bytes.Repeat([]byte{0xab}, 1000),
		[]byte("last"),
	}
	stream := buildStream(t, payloads...)
	r := NewReader(bytes.NewReader(stream), WithChunkSize(7)) // deliberately small, forces many fills
	defer r.Close()

	for i, want := range payloads {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d: got %v, want %v", i, got, want)
		}
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReadFrameTruncatedStream(t *testing.T) {
	stream := buildStream(t, []byte("hello world"))
	truncated := stream[:len(stream)-3]
	r := NewReader(bytes.NewReader(truncated))
	defer r.Close()

	if _, err := r.ReadFrame(); err != io.ErrUnexpectedEOF {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadFrameTooLarge(t *testing.T) {
	stream := buildStream(t, []byte("ok"))
	r := NewReader(bytes.NewReader(stream), WithMaxFrameSize(1))
	defer r.Close()

	if _, err := r.ReadFrame(); err != ErrFrameTooLarge {
		t.Fatalf("got %v, want ErrFrameTooLarge", err)
	}
}

func TestReadFrameEmptyStream(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	defer r.Close()
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestWriteFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, nil); err != nil {
		t.Fatalf("unexpected error for empty payload: %v", err)
	}
	if got, want := buf.Len(), headerLen; got != want {
		t.Fatalf("wrote %d bytes, want %d (header only)", got, want)
	}
}
