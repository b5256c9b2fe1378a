// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package shiftbuftest provides an instrumented element type for
// exercising cloudeng.io/shiftbuffer's exception-safety paths: every
// copy-construct, move-construct, move-assign and destroy is counted,
// and any one of the first three can be armed to fail (destroy never
// fails) until the element is disarmed again, so that tests can
// assert the exact invariants cloudeng.io/shiftbuffer promises to
// restore after a failure partway through an operation.
package shiftbuftest

import "errors"

// ErrFault is returned by an Element operation that has been armed to
// fail, via Element.FailOn.
var ErrFault = errors.New("shiftbuftest: armed fault")

// Counters records how many times each lifecycle operation has been
// invoked for one logical element. An Element and every copy or move
// derived from it share the same *Counters, so the count reflects the
// element's full history regardless of how many times it was relocated
// within or between buffers.
type Counters struct {
	Copies   int
	Moves    int
	Assigns  int
	Destroys int
}

// Element is a cloudeng.io/shiftbuffer element that implements both
// shiftbuffer.Mover[Element] and shiftbuffer.Copier[Element].
type Element struct {
	ID     int
	Counts *Counters
	// FailOn, if set to "copy", "move" or "assign", makes the matching
	// operation return ErrFault instead of succeeding. It is read at
	// call time and is not cleared automatically.
	FailOn string
}

// NewSlice returns n distinct elements, IDs 0..n-1, each with its own
// fresh Counters, alongside the slice of *Counters in the same order
// for convenient assertions.
func NewSlice(n int) ([]Element, []*Counters) {
	elems := make([]Element, n)
	counts := make([]*Counters, n)
	for i := range elems {
		c := &Counters{}
		counts[i] = c
		elems[i] = Element{ID: i, Counts: c}
	}
	return elems, counts
}

func (e Element) CopyConstruct(dst *Element) error {
	if e.FailOn == "copy" {
		return ErrFault
	}
	e.Counts.Copies++
	*dst = Element{ID: e.ID, Counts: e.Counts, FailOn: e.FailOn}
	return nil
}

func (e Element) MoveConstruct(dst *Element) error {
	if e.FailOn == "move" {
		return ErrFault
	}
	e.Counts.Moves++
	*dst = Element{ID: e.ID, Counts: e.Counts, FailOn: e.FailOn}
	return nil
}

func (e Element) MoveAssign(dst *Element) error {
	if e.FailOn == "assign" {
		return ErrFault
	}
	e.Counts.Assigns++
	*dst = Element{ID: e.ID, Counts: e.Counts, FailOn: e.FailOn}
	return nil
}

func (e Element) Destroy() {
	e.Counts.Destroys++
}
