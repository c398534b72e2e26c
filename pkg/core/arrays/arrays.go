// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package arrays implements Array, an N-dimensional view over a flat Go slice addressed by
// per-axis strides, and the Expression capability the traversal engine consumes from it.
//
// Views (Transpose, BroadcastTo) share the storage of the array they came from; nothing is
// copied until Values is called.
package arrays

import (
	"fmt"

	"github.com/StavrosMast/xtensor/pkg/core/broadcast"
	"github.com/StavrosMast/xtensor/pkg/core/iterators"
	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Expression is anything with a shape laid out in storage with strides.
type Expression interface {
	Shape() shapes.Shape
	Strides() shapes.Strides
}

// Storage is an Expression backed by a flat buffer of T. Element at indices is at
// Flat()[Offset() + Strides().Offset(indices)].
type Storage[T any] interface {
	Expression
	Flat() []T
	Offset() int
}

// Cast returns e as its concrete type E, and whether it is one.
func Cast[E Expression](e Expression) (E, bool) {
	concrete, ok := e.(E)
	return concrete, ok
}

// Array is a strided N-dimensional view over a flat slice of T.
type Array[T dtypes.Supported] struct {
	flat    []T
	offset  int
	shape   shapes.Shape
	strides shapes.Strides
}

var (
	_ Expression       = (*Array[float32])(nil)
	_ Storage[float32] = (*Array[float32])(nil)
)

// FromFlat creates a contiguous row-major Array using flat as storage (not copied).
// len(flat) must match the size of the shape.
func FromFlat[T dtypes.Supported](flat []T, dims ...int) (*Array[T], error) {
	shape := shapes.Make(dims...)
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(flat) != shape.Size() {
		return nil, errors.Errorf("arrays.FromFlat: shape %s requires %d elements, got %d", shape, shape.Size(), len(flat))
	}
	return &Array[T]{flat: flat, shape: shape, strides: shapes.RowMajorStrides(shape)}, nil
}

// FromStrided creates an Array over flat starting at offset, with arbitrary strides.
// It checks that every element addressed by shape and strides is within flat.
//
// A zero-sized array addresses no element, and its offset is set to 0.
func FromStrided[T dtypes.Supported](flat []T, offset int, shape shapes.Shape, strides shapes.Strides) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(shape) != len(strides) {
		return nil, errors.Errorf("arrays.FromStrided: shape %s and strides %s have different ranks", shape, strides)
	}
	if shape.IsZeroSize() {
		offset = 0
	} else {
		lowest, highest := offset, offset
		for axis, stride := range strides {
			span := stride * (shape[axis] - 1)
			if span < 0 {
				lowest += span
			} else {
				highest += span
			}
		}
		if lowest < 0 || highest >= len(flat) {
			return nil, errors.Errorf("arrays.FromStrided: shape %s with strides %s from offset %d addresses [%d, %d], out of the storage with %d elements",
				shape, strides, offset, lowest, highest, len(flat))
		}
	}
	return &Array[T]{flat: flat, offset: offset, shape: shape.Clone(), strides: strides.Clone()}, nil
}

// Zeros returns a new contiguous Array of the given dimensions, filled with the zero value.
// It panics on negative dimensions.
func Zeros[T dtypes.Supported](dims ...int) *Array[T] {
	shape := shapes.Make(dims...)
	if err := shape.Validate(); err != nil {
		exceptions.Panicf("arrays.Zeros: %v", err)
	}
	return &Array[T]{flat: make([]T, shape.Size()), shape: shape, strides: shapes.RowMajorStrides(shape)}
}

// Full returns a new contiguous Array of the given dimensions, filled with value.
func Full[T dtypes.Supported](value T, dims ...int) *Array[T] {
	a := Zeros[T](dims...)
	for i := range a.flat {
		a.flat[i] = value
	}
	return a
}

// Shape implements Expression.
func (a *Array[T]) Shape() shapes.Shape { return a.shape }

// Strides implements Expression.
func (a *Array[T]) Strides() shapes.Strides { return a.strides }

// Flat implements Storage. It is the whole underlying buffer, shared with views.
func (a *Array[T]) Flat() []T { return a.flat }

// Offset implements Storage.
func (a *Array[T]) Offset() int { return a.offset }

// Rank of the array.
func (a *Array[T]) Rank() int { return a.shape.Rank() }

// Size is the number of elements of the array.
func (a *Array[T]) Size() int { return a.shape.Size() }

// DType of the elements.
func (a *Array[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// String implements fmt.Stringer.
func (a *Array[T]) String() string {
	return fmt.Sprintf("(%s)%s", a.DType(), a.shape)
}

// IsContiguous returns whether the elements are laid out in row-major order with no gaps,
// starting at Offset().
func (a *Array[T]) IsContiguous() bool {
	rowMajor := shapes.RowMajorStrides(a.shape)
	for axis, stride := range a.strides {
		if a.shape[axis] > 1 && stride != rowMajor[axis] {
			return false
		}
	}
	return true
}

// At returns the element at the given indices. It panics if the number of indices doesn't
// match the rank or if any index is out of range.
func (a *Array[T]) At(indices ...int) T {
	if len(indices) != a.Rank() {
		exceptions.Panicf("Array.At: got %d indices for array %s", len(indices), a)
	}
	for axis, idx := range indices {
		if idx < 0 || idx >= a.shape[axis] {
			exceptions.Panicf("Array.At(%v): index out of range for axis #%d of array %s", indices, axis, a)
		}
	}
	return a.flat[a.offset+a.strides.Offset(indices)]
}

// Transpose returns a view with the axes permuted: axis i of the view is axis permutation[i]
// of a. With no permutation given, the axes are reversed.
func (a *Array[T]) Transpose(permutation ...int) (*Array[T], error) {
	rank := a.Rank()
	if len(permutation) == 0 {
		permutation = make([]int, rank)
		for i := range permutation {
			permutation[i] = rank - 1 - i
		}
	}
	if len(permutation) != rank {
		return nil, errors.Errorf("Array.Transpose: permutation %v must have one axis per axis of %s", permutation, a)
	}
	used := make([]bool, rank)
	view := &Array[T]{flat: a.flat, offset: a.offset, shape: make(shapes.Shape, rank), strides: make(shapes.Strides, rank)}
	for i, axis := range permutation {
		if axis < 0 || axis >= rank || used[axis] {
			return nil, errors.Errorf("Array.Transpose: invalid permutation %v for %s", permutation, a)
		}
		used[axis] = true
		view.shape[i] = a.shape[axis]
		view.strides[i] = a.strides[axis]
	}
	return view, nil
}

// BroadcastTo returns a view of a with the given dimensions, where stretched axes have stride 0.
// It returns an error wrapping broadcast.ErrIncompatibleShapes if a cannot be broadcast to dims,
// or an error if any of dims is negative.
func (a *Array[T]) BroadcastTo(dims ...int) (*Array[T], error) {
	shape := shapes.Make(dims...)
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "Array.BroadcastTo(%v)", dims)
	}
	strides, err := broadcast.Strides(a.shape, a.strides, shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "Array.BroadcastTo(%v)", dims)
	}
	return &Array[T]{flat: a.flat, offset: a.offset, shape: shape, strides: strides}, nil
}

// Iterator returns an iterator over a with strides adjusted to the common shape.
func (a *Array[T]) Iterator(common shapes.Shape) (*iterators.Iterator[T], error) {
	strides, err := broadcast.Strides(a.shape, a.strides, common)
	if err != nil {
		return nil, err
	}
	return iterators.New(a.flat, a.offset, strides, common), nil
}

// Values returns a copy of the elements in row-major order.
func (a *Array[T]) Values() []T {
	values := make([]T, 0, a.Size())
	if a.IsContiguous() {
		return append(values, a.flat[a.offset:a.offset+a.Size()]...)
	}
	it := iterators.New(a.flat, a.offset, a.strides, a.shape)
	m := iterators.NewMulti(a.shape, it)
	defer m.Release()
	for range m.All() {
		values = append(values, it.Value())
	}
	return values
}

// Clone returns a contiguous copy of a.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{flat: a.Values(), shape: a.shape.Clone(), strides: shapes.RowMajorStrides(a.shape)}
}
