// Copyright 2023 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package shiftbuffer

// defaultCapacity is used when New or NewSize(0) is called; a power of
// two keeps early growth steps aligned with common allocator size
// classes.
const defaultCapacity = 256

// Buffer is a contiguous, FIFO-ordered staging buffer for elements of
// type T. The live window is the slice storage[head:head+count]; every
// other slot holds T's zero value. Buffer is single-owner and not
// internally synchronised: concurrent use requires external locking.
//
// The zero Buffer is not usable; construct one with New or NewSize.
type Buffer[T Mover[T]] struct {
	storage     []T
	head        int
	count       int
	maxCapacity int // 0 means unbounded
}

// Option configures a Buffer at construction time.
type Option[T Mover[T]] func(*Buffer[T])

// WithMaxCapacity bounds how large the buffer's storage is allowed to
// grow. An append that would need to exceed it returns ErrAllocation
// and leaves the buffer unchanged. The default, 0, is unbounded.
func WithMaxCapacity[T Mover[T]](n int) Option[T] {
	return func(b *Buffer[T]) {
		b.maxCapacity = n
	}
}

// New returns an empty Buffer with a default initial capacity.
func New[T Mover[T]](opts ...Option[T]) *Buffer[T] {
	return NewSize[T](defaultCapacity, opts...)
}

// NewSize returns an empty Buffer with capacity at least
// initialCapacity. A non-positive initialCapacity is treated as the
// default. If WithMaxCapacity sets a ceiling below that capacity, the
// capacity is reduced to the ceiling.
func NewSize[T Mover[T]](initialCapacity int, opts ...Option[T]) *Buffer[T] {
	if initialCapacity <= 0 {
		initialCapacity = defaultCapacity
	}
	b := &Buffer[T]{storage: make([]T, initialCapacity)}
	for _, opt := range opts {
		opt(b)
	}
	if b.maxCapacity > 0 && len(b.storage) > b.maxCapacity {
		b.storage = b.storage[:b.maxCapacity:b.maxCapacity]
	}
	return b
}

// Count returns the number of live elements.
func (b *Buffer[T]) Count() int { return b.count }

// Capacity returns the number of slots currently reserved. It never
// decreases on its own; when an append grows the storage, the new
// capacity is the larger of double the old one and what the append
// needs, capped at MaxCapacity.
func (b *Buffer[T]) Capacity() int { return len(b.storage) }

// MaxCapacity returns the configured growth ceiling, or 0 if unbounded.
func (b *Buffer[T]) MaxCapacity() int { return b.maxCapacity }

func (b *Buffer[T]) destroySlot(i int) {
	b.storage[i].Destroy()
	var zero T
	b.storage[i] = zero
}

// Close destroys exactly the live window and leaves the buffer empty.
// It never fails; Mover.Destroy must not fail.
func (b *Buffer[T]) Close() {
	for i := 0; i < b.count; i++ {
		b.destroySlot(b.head + i)
	}
	b.head, b.count = 0, 0
}

// Take transfers ownership of the receiver's storage to a new Buffer
// and leaves the receiver empty and valid for further use, the Go
// equivalent of move-constructing a new buffer from this one. It never
// fails.
func (b *Buffer[T]) Take() *Buffer[T] {
	nb := &Buffer[T]{storage: b.storage, head: b.head, count: b.count, maxCapacity: b.maxCapacity}
	b.storage = make([]T, 1)
	b.head, b.count = 0, 0
	return nb
}

// Clone returns an independent Buffer holding copies of the receiver's
// live window; the source buffer is never modified. It requires T to
// implement Copier[T]; if it does not, Clone returns ErrNotCopyable.
// A failing CopyConstruct leaves both the receiver and the partially
// built clone's elements cleaned up: the receiver is strong-guarantee
// untouched, and Clone returns a nil buffer.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	size := b.count
	if size == 0 {
		size = 1
	}
	nb := &Buffer[T]{storage: make([]T, size), maxCapacity: b.maxCapacity}
	for i := 0; i < b.count; i++ {
		c, ok := copierOf(b.storage[b.head+i])
		if !ok {
			return nil, ErrNotCopyable
		}
		if err := c.CopyConstruct(&nb.storage[i]); err != nil {
			for j := 0; j < i; j++ {
				nb.destroySlot(j)
			}
			return nil, opError("Clone", i, err)
		}
	}
	nb.count = b.count
	return nb, nil
}

// Write copy-appends the elements of src to the tail of the buffer. It
// requires T to implement Copier[T]; if it does not, Write returns
// ErrNotCopyable without touching the buffer. A zero-length src is a
// no-op that invokes no element operation.
func (b *Buffer[T]) Write(src []T) error {
	n := len(src)
	if n == 0 {
		return nil
	}
	for i := range src {
		if _, ok := copierOf(src[i]); !ok {
			return ErrNotCopyable
		}
	}
	return b.appendN(n, "Write", func(i int, dst *T) error {
		c, _ := copierOf(src[i])
		return c.CopyConstruct(dst)
	})
}

// Shove move-appends the elements of src to the tail of the buffer.
// Destroying src's elements afterwards remains the caller's
// responsibility; the buffer only constructs its own copies of their
// moved-from state. A zero-length src is a no-op that invokes no
// element operation.
func (b *Buffer[T]) Shove(src []T) error {
	n := len(src)
	if n == 0 {
		return nil
	}
	return b.appendN(n, "Shove", func(i int, dst *T) error {
		return src[i].MoveConstruct(dst)
	})
}

// Read move-assigns the n := len(dst) oldest elements into dst and
// destroys the buffer's copies, advancing head by n and decreasing
// Count by n. n must not exceed Count; if it does, Read returns
// ErrPrecondition and leaves the buffer unchanged. A zero-length dst is
// a no-op that invokes no element operation.
//
// On a failing MoveAssign at index i, Read has already extracted and
// destroyed the first i elements (dst[0:i] hold their moved state) and
// leaves the remaining buffer elements untouched; head and count
// reflect exactly the i elements that were extracted before the error
// propagates.
func (b *Buffer[T]) Read(dst []T) error {
	n := len(dst)
	if n == 0 {
		return nil
	}
	if n > b.count {
		return ErrPrecondition
	}
	for i := 0; i < n; i++ {
		src := b.head + i
		if err := b.storage[src].MoveAssign(&dst[i]); err != nil {
			b.head += i
			b.count -= i
			return opError("Read", i, err)
		}
		b.destroySlot(src)
	}
	b.head += n
	b.count -= n
	return nil
}

// appendN implements the append algorithm shared by Write and Shove:
// construct directly if the tail has room, compact in
// place if that alone avoids a reallocation and the freed head space
// clears the compaction threshold, otherwise grow.
func (b *Buffer[T]) appendN(n int, op string, construct func(i int, dst *T) error) error {
	freeTail := len(b.storage) - b.head - b.count
	if n <= freeTail {
		return b.appendDirect(n, op, construct)
	}
	freeHead := b.head
	if n <= freeTail+freeHead && freeHead*2 >= len(b.storage) {
		if err := b.compact(op); err != nil {
			return err
		}
		return b.appendDirect(n, op, construct)
	}
	if err := b.grow(b.count+n, op); err != nil {
		return err
	}
	return b.appendDirect(n, op, construct)
}

// appendDirect constructs n new elements into the free tail slots.
// Strong guarantee: on a failing construct at index i, the i elements
// already appended are destroyed in reverse order and head/count are
// left exactly as they were.
func (b *Buffer[T]) appendDirect(n int, op string, construct func(i int, dst *T) error) error {
	start := b.head + b.count
	for i := 0; i < n; i++ {
		if err := construct(i, &b.storage[start+i]); err != nil {
			for j := i - 1; j >= 0; j-- {
				b.destroySlot(start + j)
			}
			return opError(op, i, err)
		}
	}
	b.count += n
	return nil
}

// compact shifts the live window down to offset 0 in place. Basic
// guarantee: on a failing MoveConstruct at slot i, every element of the
// old live window -- whether already relocated or not -- is destroyed,
// head and count are reset to 0, and the error propagates. Forward
// iteration order is safe here because head > 0 whenever compact is
// called, so a destination index is never a source index that has not
// yet been read.
func (b *Buffer[T]) compact(op string) error {
	head, count := b.head, b.count
	for i := 0; i < count; i++ {
		src := head + i
		if err := b.storage[src].MoveConstruct(&b.storage[i]); err != nil {
			var zero T
			b.storage[i] = zero // never constructed; nothing to destroy here
			for j := 0; j < i; j++ {
				b.destroySlot(j)
			}
			for j := i; j < count; j++ {
				b.destroySlot(head + j)
			}
			b.head, b.count = 0, 0
			return opError(op+":compact", i, err)
		}
		b.destroySlot(src)
	}
	b.head = 0
	return nil
}

// grow reallocates storage to at least minCapacity, doubling capacity
// as a baseline, and relocates the live window into it. Basic
// guarantee: on a failing MoveConstruct at slot i, the i elements
// already relocated into the new storage are destroyed, the new
// storage is discarded, the entire old live window is destroyed too
// (its elements are in a moved-from-but-still-live state that cannot be
// un-moved), head and count are reset to 0, and the error propagates.
// Allocation failure (exceeding MaxCapacity) is checked before any
// element is touched, so the buffer is left completely unchanged in
// that case.
func (b *Buffer[T]) grow(minCapacity int, op string) error {
	newCap := len(b.storage) * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	if b.maxCapacity > 0 {
		if minCapacity > b.maxCapacity {
			return opError(op, -1, ErrAllocation)
		}
		if newCap > b.maxCapacity {
			newCap = b.maxCapacity
		}
	}
	newStorage := make([]T, newCap)
	head, count := b.head, b.count
	for i := 0; i < count; i++ {
		src := head + i
		if err := b.storage[src].MoveConstruct(&newStorage[i]); err != nil {
			for j := 0; j < i; j++ {
				newStorage[j].Destroy()
			}
			for j := 0; j < count; j++ {
				b.destroySlot(head + j)
			}
			b.head, b.count = 0, 0
			return opError(op+":grow", i, err)
		}
	}
	for i := 0; i < count; i++ {
		b.storage[head+i].Destroy()
	}
	b.storage = newStorage
	b.head = 0
	return nil
}
