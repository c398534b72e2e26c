// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package elementwise

import (
	"github.com/StavrosMast/xtensor/pkg/core/arrays"
	"github.com/gomlx/gopjrt/dtypes"
	"golang.org/x/exp/constraints"
)

// Numeric element types: those supported by arrays that also have arithmetic operators.
type Numeric interface {
	dtypes.Supported
	constraints.Integer | constraints.Float | constraints.Complex
}

// Ordered element types: those supported by arrays that can be compared with < and >.
type Ordered interface {
	dtypes.Supported
	constraints.Ordered
}

// Add returns lhs + rhs, with broadcasting.
func Add[T Numeric](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return a + b })
}

// Sub returns lhs - rhs, with broadcasting.
func Sub[T Numeric](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return a - b })
}

// Mul returns lhs * rhs, with broadcasting.
func Mul[T Numeric](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return a * b })
}

// Div returns lhs / rhs, with broadcasting. Integer division by zero panics, as in Go.
func Div[T Numeric](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return a / b })
}

// Max returns the elementwise maximum of lhs and rhs, with broadcasting.
func Max[T Ordered](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return max(a, b) })
}

// Min returns the elementwise minimum of lhs and rhs, with broadcasting.
func Min[T Ordered](lhs, rhs *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map2(lhs, rhs, func(a, b T) T { return min(a, b) })
}

// Equal returns lhs == rhs, with broadcasting.
func Equal[T dtypes.Supported](lhs, rhs *arrays.Array[T]) (*arrays.Array[bool], error) {
	return Map2(lhs, rhs, func(a, b T) bool { return a == b })
}

// Less returns lhs < rhs, with broadcasting.
func Less[T Ordered](lhs, rhs *arrays.Array[T]) (*arrays.Array[bool], error) {
	return Map2(lhs, rhs, func(a, b T) bool { return a < b })
}

// Greater returns lhs > rhs, with broadcasting.
func Greater[T Ordered](lhs, rhs *arrays.Array[T]) (*arrays.Array[bool], error) {
	return Map2(lhs, rhs, func(a, b T) bool { return a > b })
}

// Where returns onTrue where condition is true and onFalse elsewhere, with all three
// operands broadcast to their common shape.
func Where[T dtypes.Supported](condition *arrays.Array[bool], onTrue, onFalse *arrays.Array[T]) (*arrays.Array[T], error) {
	return Map3(condition, onTrue, onFalse, func(c bool, t, f T) T {
		if c {
			return t
		}
		return f
	})
}

// Neg returns -x.
func Neg[T Numeric](x *arrays.Array[T]) *arrays.Array[T] {
	return Map(x, func(v T) T { return -v })
}
