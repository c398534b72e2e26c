// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape and Strides, the dimension and step-size sequences
// that address an N-dimensional array stored in a flat buffer.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of an array.
//   - Axis: the index of a dimension. Axis 0 is the outermost (slowest-varying) one,
//     axis Rank()-1 the innermost (fastest-varying).
//   - Dimension: the size of an array along one of its axes.
//   - Stride: how many flat-buffer elements one moves when the index along an axis
//     increases by one. A stride of 0 means the axis is broadcast: moving along it
//     revisits the same element.
//   - Back-stride: the displacement accumulated by sweeping an axis from 0 to its
//     last index, undone in one step when the index wraps back to 0.
//
// Example: the multi-dimensional array `[][]int32{{0, 1, 2}, {3, 4, 5}}` has shape `[2 3]`,
// and stored contiguously in row-major order its strides are `[3 1]`.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Shape holds the dimensions of an array, one per axis.
//
// A dimension of 0 anywhere denotes an empty array. A Shape with no axes is a scalar.
type Shape []int

// Make returns a Shape with a copy of the given dimensions. It is never nil, even for a scalar.
func Make(dimensions ...int) Shape {
	s := make(Shape, len(dimensions))
	copy(s, dimensions)
	return s
}

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s) }

// IsScalar returns whether the shape has no axes.
func (s Shape) IsScalar() bool { return len(s) == 0 }

// Size returns the number of elements of an array with this shape: the product of all dimensions.
// A scalar has size 1.
func (s Shape) Size() (size int) {
	size = 1
	for _, d := range s {
		size *= d
	}
	return
}

// IsZeroSize returns whether any of the dimensions is 0.
func (s Shape) IsZeroSize() bool {
	return slices.Contains(s, 0)
}

// Validate returns an error if any of the dimensions is negative.
func (s Shape) Validate() error {
	for axis, dim := range s {
		if dim < 0 {
			return errors.Errorf("invalid shape %s: axis #%d has negative dimension %d", s, axis, dim)
		}
	}
	return nil
}

// Equal compares two shapes for equality of rank and dimensions.
func (s Shape) Equal(s2 Shape) bool {
	return slices.Equal(s, s2)
}

// Clone returns a copy of the shape. The clone of a nil shape is an empty non-nil shape.
func (s Shape) Clone() Shape {
	s2 := make(Shape, len(s))
	copy(s2, s)
	return s2
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	return formatInts(s)
}

// Ones returns a shape of the given rank with all dimensions set to 1.
func Ones(rank int) Shape {
	s := make(Shape, rank)
	for i := range s {
		s[i] = 1
	}
	return s
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
