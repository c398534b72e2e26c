// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"slices"

	"github.com/pkg/errors"
)

// Strides holds, for each axis, the number of flat-buffer elements to move when the index
// along that axis increases by 1. It always has the same length as its associated Shape.
//
// Notice the strides are **not in bytes**, but in elements.
type Strides []int

// RowMajorStrides returns the strides of a contiguous array with the given shape,
// stored in "row-major" order (the last axis varies fastest).
//
// Axes of dimension 0 or 1 still get a well-defined stride, so the strides of a zero-sized
// shape are the same as if the empty axis had dimension 1.
func RowMajorStrides(s Shape) Strides {
	rank := s.Rank()
	strides := make(Strides, rank)
	currentStride := 1
	for axis := rank - 1; axis >= 0; axis-- {
		strides[axis] = currentStride
		currentStride *= max(s[axis], 1)
	}
	return strides
}

// Equal returns whether both strides have the same length and values.
func (st Strides) Equal(st2 Strides) bool {
	return slices.Equal(st, st2)
}

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	st2 := make(Strides, len(st))
	copy(st2, st)
	return st2
}

// String implements fmt.Stringer.
func (st Strides) String() string {
	return formatInts(st)
}

// BackStrides returns, for each axis, the displacement accumulated while the index along
// that axis sweeps from 0 to shape[axis]-1: `strides[axis]*(shape[axis]-1)`, or 0 if the
// axis is broadcast (stride 0).
//
// Subtracting backStrides[axis] from a cursor undoes a full sweep of the axis.
//
// It panics if len(shape) != len(strides).
func (st Strides) BackStrides(shape Shape) Strides {
	if len(shape) != len(st) {
		panic(errors.Errorf("Strides.BackStrides: strides %s and shape %s have different ranks", st, shape))
	}
	backStrides := make(Strides, len(st))
	for axis, stride := range st {
		if stride != 0 && shape[axis] > 0 {
			backStrides[axis] = stride * (shape[axis] - 1)
		}
	}
	return backStrides
}

// Offset returns the flat offset of the element at the given indices: the dot product
// of indices and strides.
//
// It panics if len(indices) != len(strides).
func (st Strides) Offset(indices []int) (offset int) {
	if len(indices) != len(st) {
		panic(errors.Errorf("Strides.Offset: got %d indices for strides %s", len(indices), st))
	}
	for axis, stride := range st {
		offset += indices[axis] * stride
	}
	return
}
