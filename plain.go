// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package shiftbuffer

// Plain wraps a value that needs nothing more than straightforward
// copy/move semantics -- raw bytes, integers, other trivial payloads --
// so that it can be stored in a Buffer without writing Mover/Copier
// boilerplate by hand. Its operations never fail.
type Plain[V any] struct {
	V V
}

func (p Plain[V]) CopyConstruct(dst *Plain[V]) error { *dst = p; return nil }
func (p Plain[V]) MoveConstruct(dst *Plain[V]) error { *dst = p; return nil }
func (p Plain[V]) MoveAssign(dst *Plain[V]) error    { *dst = p; return nil }
func (p Plain[V]) Destroy()                          {}
