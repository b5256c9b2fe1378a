// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package shiftbuffer

import (
	"errors"
	"fmt"

	cdengerrors "cloudeng.io/errors"
)

// ErrAllocation is returned when growing the buffer would exceed its
// configured MaxCapacity. The buffer is left completely unchanged:
// allocation is always the first step of growth, before any element is
// moved, so there is nothing to roll back.
var ErrAllocation = errors.New("shiftbuffer: growth would exceed the configured maximum capacity")

// ErrPrecondition is returned by Read when asked for more elements than
// Count reports. The buffer is left completely unchanged.
var ErrPrecondition = errors.New("shiftbuffer: read requested more elements than are present")

// ErrNotCopyable is returned by Write and Clone when the element type
// does not implement Copier[T].
var ErrNotCopyable = errors.New("shiftbuffer: element type does not implement Copier")

// OpError records which operation and element index a user-supplied
// CopyConstruct, MoveConstruct or MoveAssign failed at. Growth refused
// with ErrAllocation is also reported as an OpError, with Index -1.
// Unwrap returns the underlying error so errors.Is and errors.As see
// through it.
type OpError struct {
	Op    string
	Index int
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("shiftbuffer: %s: element %d: %v", e.Op, e.Index, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// opError annotates err with the failing operation, element index and
// call site, in the style of cloudeng.io/errors.Caller.
func opError(op string, index int, err error) error {
	return cdengerrors.Caller(&OpError{Op: op, Index: index, Err: err})
}
