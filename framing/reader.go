// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package framing decodes a stream of 4-byte-length-prefixed frames out
// of an io.Reader, using a cloudeng.io/shiftbuffer.Buffer of
// shiftbuffer.Plain[byte] as the
// staging area between the underlying reader and the caller. It exists
// as a worked example of the "network framing, stream parsers, codec
// byte pipelines" use case that motivates shiftbuffer, not as a
// general-purpose wire protocol.
package framing

import (
	"encoding/binary"
	"fmt"
	"io"

	"cloudeng.io/shiftbuffer"
)

const (
	headerLen = 4

	// defaultChunk is how much is read from the underlying io.Reader at
	// a time; it has no relationship to frame size.
	defaultChunk = 4096

	// defaultMaxFrame bounds how large a single frame's declared length
	// may be, so that a corrupt or hostile length prefix cannot make
	// Reader try to buffer an unbounded amount of data.
	defaultMaxFrame = 1 << 24
)

// ErrFrameTooLarge is returned by ReadFrame when a frame's declared
// length exceeds the configured maximum.
var ErrFrameTooLarge = fmt.Errorf("framing: frame length exceeds configured maximum")

// Reader decodes successive frames from an underlying byte stream. Each
// frame on the wire is a 4-byte big-endian length, N, followed by N
// bytes of payload. Reader is not safe for concurrent use.
type Reader struct {
	src      io.Reader
	buf      *shiftbuffer.Buffer[shiftbuffer.Plain[byte]]
	chunk    []byte
	maxFrame int
	eof      bool
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithChunkSize sets how many bytes are requested from the underlying
// io.Reader per fill. The default is 4096.
func WithChunkSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.chunk = make([]byte, n)
		}
	}
}

// WithMaxFrameSize bounds the largest frame ReadFrame will accept
// before returning ErrFrameTooLarge. The default is 16MiB.
func WithMaxFrameSize(n int) Option {
	return func(r *Reader) {
		r.maxFrame = n
	}
}

// NewReader returns a Reader that decodes frames read from src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:      src,
		buf:      shiftbuffer.New[shiftbuffer.Plain[byte]](),
		chunk:    make([]byte, defaultChunk),
		maxFrame: defaultMaxFrame,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fill reads one chunk from the underlying reader and moves it into the
// staging buffer. The call that sees the underlying reader's io.EOF
// records it and returns nil; any later call returns io.EOF without
// reading.
func (r *Reader) fill() error {
	if r.eof {
		return io.EOF
	}
	n, err := r.src.Read(r.chunk)
	if n > 0 {
		plain := make([]shiftbuffer.Plain[byte], n)
		for i := 0; i < n; i++ {
			plain[i] = shiftbuffer.Plain[byte]{V: r.chunk[i]}
		}
		if shoveErr := r.buf.Shove(plain); shoveErr != nil {
			return fmt.Errorf("framing: staging %d bytes: %w", n, shoveErr)
		}
	}
	if err != nil {
		if err == io.EOF {
			r.eof = true
			return nil
		}
		return err
	}
	return nil
}

// need blocks, filling the staging buffer from src, until at least n
// bytes are available or the stream ends. If the stream ends first, it
// returns io.EOF when no bytes are staged and io.ErrUnexpectedEOF when
// some, but fewer than n, are.
func (r *Reader) need(n int) error {
	for r.buf.Count() < n {
		if r.eof {
			if r.buf.Count() == 0 {
				return io.EOF
			}
			return io.ErrUnexpectedEOF
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrame returns the next frame's payload, or io.EOF once the
// underlying stream is exhausted with no partial frame pending.
func (r *Reader) ReadFrame() ([]byte, error) {
	if err := r.need(headerLen); err != nil {
		return nil, err
	}
	header := make([]shiftbuffer.Plain[byte], headerLen)
	if err := r.buf.Read(header); err != nil {
		return nil, fmt.Errorf("framing: reading length header: %w", err)
	}
	var raw [headerLen]byte
	for i, b := range header {
		raw[i] = b.V
	}
	length := int(binary.BigEndian.Uint32(raw[:]))
	if length > r.maxFrame {
		return nil, ErrFrameTooLarge
	}
	if err := r.need(length); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	payload := make([]shiftbuffer.Plain[byte], length)
	if err := r.buf.Read(payload); err != nil {
		return nil, fmt.Errorf("framing: reading %d-byte payload: %w", length, err)
	}
	out := make([]byte, length)
	for i, b := range payload {
		out[i] = b.V
	}
	return out, nil
}

// Close releases the staging buffer's resources. It is safe to call
// more than once.
func (r *Reader) Close() {
	r.buf.Close()
}
