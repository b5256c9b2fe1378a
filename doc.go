// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package shiftbuffer provides a contiguous, FIFO-ordered staging buffer
// for use between a producer that appends elements at the tail and a
// consumer that removes elements from the head: network framing, stream
// parsers, and codec byte pipelines are the typical callers.
//
// Buffer[T] amortises the shift-on-every-read cost of a naive
// array-backed FIFO by letting head drift forward as elements are read,
// and only paying for compaction or reallocation when an append would
// otherwise run off the end of the storage slice.
//
// Element types opt in to the capabilities they need by implementing
// Mover[T] (required unconditionally) and, if Write or Clone are used,
// Copier[T]. See the package-level Mover and Copier docs for the
// construct/assign/destroy contract that replaces the copy/move
// constructors, move-assignment operator, and destructor of the
// original systems-language design this package is modelled on.
package shiftbuffer
