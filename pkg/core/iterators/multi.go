// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package iterators

import (
	"iter"

	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/gomlx/exceptions"
)

// Multi drives a set of operands over one shared (broadcast) shape, keeping all of them
// aligned to the same logical index.
//
// After any number of calls to Next starting from the zero index, every operand's cursor
// is at its starting offset plus the dot product of Indices() and its strides.
type Multi struct {
	operands []Stepper
	shape    shapes.Shape
	indices  []int
}

// NewMulti creates a Multi over the given common shape. All operands must have been created
// for that same shape.
//
// The logical index starts at zero, where every operand is at its starting cursor.
func NewMulti(shape shapes.Shape, operands ...Stepper) *Multi {
	return &Multi{
		operands: operands,
		shape:    shape.Clone(),
		indices:  getIndices(shape.Rank()),
	}
}

// Next moves the logical index one step in row-major order, advancing or rewinding every
// operand accordingly.
//
// It scans axes from the last (fastest-varying) to the first: the first axis that doesn't
// wrap is advanced, and every axis that wraps is reset to 0 and rewound, carrying into the
// previous axis.
//
// There is no bounds check: calling Next more than Size()-1 times is undefined. See All for
// a bounded traversal.
func (m *Multi) Next() {
	for axis := len(m.indices) - 1; axis >= 0; axis-- {
		m.indices[axis]++
		if m.indices[axis] != m.shape[axis] {
			for _, op := range m.operands {
				op.Advance(axis)
			}
			return
		}
		m.indices[axis] = 0
		for _, op := range m.operands {
			op.Rewind(axis)
		}
	}
}

// All yields the flat counter of each of the Size() positions of the shape, calling Next
// between yields. Next is never called after the last position.
//
// A scalar shape yields once, a zero-sized shape doesn't yield. All should be used on a freshly
// created Multi.
func (m *Multi) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		size := m.shape.Size()
		for flatIdx := range size {
			if flatIdx > 0 {
				m.Next()
			}
			if !yield(flatIdx) {
				return
			}
		}
	}
}

// Indices returns the current logical index. It is owned by Multi, don't change it.
func (m *Multi) Indices() []int {
	return m.indices
}

// Shape returns the common shape being traversed.
func (m *Multi) Shape() shapes.Shape {
	return m.shape
}

// Size returns the number of positions of a full traversal.
func (m *Multi) Size() int {
	return m.shape.Size()
}

// NumOperands returns the number of operands driven by this Multi.
func (m *Multi) NumOperands() int {
	return len(m.operands)
}

// Operand returns the k-th operand.
func (m *Multi) Operand(k int) Stepper {
	return m.operands[k]
}

// OperandAs returns the k-th operand of m as an *Iterator[T].
// It panics if the operand is of a different type.
func OperandAs[T any](m *Multi, k int) *Iterator[T] {
	it, ok := m.operands[k].(*Iterator[T])
	if !ok {
		exceptions.Panicf("iterators.OperandAs: operand #%d is a %T, not an *Iterator of the requested type", k, m.operands[k])
	}
	return it
}

// Release returns internal buffers for reuse. The Multi must not be used afterwards.
func (m *Multi) Release() {
	if m.indices == nil {
		return
	}
	putIndices(m.indices)
	m.indices = nil
	m.operands = nil
}
