// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package iterators implements the traversal engine used by elementwise operations over
// broadcast operands.
//
// An Iterator walks one operand's flat buffer with strides already adjusted to the common
// (broadcast) shape: broadcast axes have stride 0. A Multi drives several of them in lockstep,
// like an odometer: each step increments the fastest-varying axis and carries into slower
// axes on wrap, translating every index change into an Advance or Rewind of each operand.
//
// Typical use, for operands a and b with flat data and strides already adjusted to common:
//
//	itA := iterators.New(aFlat, 0, aStrides, common)
//	itB := iterators.New(bFlat, 0, bStrides, common)
//	m := iterators.NewMulti(common, itA, itB)
//	defer m.Release()
//	for range m.All() {
//		use(itA.Value(), itB.Value())
//	}
package iterators

import (
	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/gomlx/exceptions"
)

// Stepper is the capability a Multi needs from each of its operands.
type Stepper interface {
	// Advance moves the cursor one step forward along axis.
	Advance(axis int)

	// Rewind moves the cursor back to the start of axis, undoing a full sweep of it.
	Rewind(axis int)
}

// Iterator over one operand of a broadcast traversal.
//
// It holds a cursor (an offset into the flat buffer), the strides adjusted to the common shape
// and the back-strides derived from them.
type Iterator[T any] struct {
	flat        []T
	offset      int
	strides     shapes.Strides
	backStrides shapes.Strides
}

// Assert *Iterator implements Stepper.
var _ Stepper = (*Iterator[float32])(nil)

// New creates an Iterator over flat, starting at offset, that moves with the given strides
// over the common shape.
//
// The strides must already be adjusted to shape (see broadcast.Strides): one per axis of the
// common shape, 0 for broadcast axes. It panics if len(strides) != len(shape).
func New[T any](flat []T, offset int, strides shapes.Strides, shape shapes.Shape) *Iterator[T] {
	if len(strides) != len(shape) {
		exceptions.Panicf("iterators.New: strides %s and shape %s have different ranks", strides, shape)
	}
	return &Iterator[T]{
		flat:        flat,
		offset:      offset,
		strides:     strides.Clone(),
		backStrides: strides.BackStrides(shape),
	}
}

// Value returns the element at the current cursor.
func (it *Iterator[T]) Value() T {
	return it.flat[it.offset]
}

// Set the element at the current cursor.
func (it *Iterator[T]) Set(value T) {
	it.flat[it.offset] = value
}

// Offset returns the current cursor position in the flat buffer.
func (it *Iterator[T]) Offset() int {
	return it.offset
}

// Advance implements Stepper.
func (it *Iterator[T]) Advance(axis int) {
	it.offset += it.strides[axis]
}

// Rewind implements Stepper.
func (it *Iterator[T]) Rewind(axis int) {
	it.offset -= it.backStrides[axis]
}

// Strides returns the (broadcast-adjusted) strides. Owned by the iterator, don't change it.
func (it *Iterator[T]) Strides() shapes.Strides {
	return it.strides
}

// BackStrides returns the back-strides. Owned by the iterator, don't change it.
func (it *Iterator[T]) BackStrides() shapes.Strides {
	return it.backStrides
}
