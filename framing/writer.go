// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package framing

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteFrame writes a single 4-byte-length-prefixed frame to dst.
// It does not use a shiftbuffer.Buffer: encoding a frame is a one-shot
// operation with no staging requirement, unlike decoding an arbitrarily
// chunked incoming stream.
func WriteFrame(dst io.Writer, payload []byte) error {
	if len(payload) > defaultMaxFrame {
		return ErrFrameTooLarge
	}
	var header [headerLen]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := dst.Write(header[:]); err != nil {
		return fmt.Errorf("framing: writing length header: %w", err)
	}
	if _, err := dst.Write(payload); err != nil {
		return fmt.Errorf("framing: writing %d-byte payload: %w", len(payload), err)
	}
	return nil
}
