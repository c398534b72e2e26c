// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package elementwise implements elementwise operations over arrays.Array with implicit
// broadcasting.
//
// Operand shapes are broadcast to a common shape (see package broadcast), and each operand
// is walked with an iterator whose strides are adjusted to that shape, so broadcast operands
// are never expanded in memory. When no broadcasting is needed and all operands are
// contiguous with the same layout, a plain linear loop over the flat buffers is used instead.
//
// The result is always a new contiguous array with the common shape.
package elementwise

import (
	"github.com/StavrosMast/xtensor/pkg/core/arrays"
	"github.com/StavrosMast/xtensor/pkg/core/broadcast"
	"github.com/StavrosMast/xtensor/pkg/core/iterators"
	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Map returns a new array with fn applied to each element of x.
func Map[T, U dtypes.Supported](x *arrays.Array[T], fn func(T) U) *arrays.Array[U] {
	output := arrays.Zeros[U](x.Shape()...)
	outFlat := output.Flat()
	if x.IsContiguous() {
		logPath("Map", output.Shape(), true)
		xFlat := x.Flat()[x.Offset():]
		for i := range outFlat {
			outFlat[i] = fn(xFlat[i])
		}
		return output
	}
	logPath("Map", output.Shape(), false)
	xIt := iterators.New(x.Flat(), x.Offset(), x.Strides(), x.Shape())
	m := iterators.NewMulti(x.Shape(), xIt)
	defer m.Release()
	for flatIdx := range m.All() {
		outFlat[flatIdx] = fn(xIt.Value())
	}
	return output
}

// Map2 returns a new array with fn applied to each pair of elements of a and b, broadcast
// to their common shape.
//
// It returns an error wrapping broadcast.ErrIncompatibleShapes if a and b can't be broadcast together.
func Map2[A, B, C dtypes.Supported](a *arrays.Array[A], b *arrays.Array[B], fn func(A, B) C) (*arrays.Array[C], error) {
	common, trivial, err := broadcast.Shapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, errors.WithMessagef(err, "elementwise.Map2(%s, %s)", a, b)
	}
	output := arrays.Zeros[C](common...)
	outFlat := output.Flat()
	if trivial && linearLayout(a, b) {
		logPath("Map2", common, true)
		aFlat, bFlat := a.Flat()[a.Offset():], b.Flat()[b.Offset():]
		for i := range outFlat {
			outFlat[i] = fn(aFlat[i], bFlat[i])
		}
		return output, nil
	}

	logPath("Map2", common, false)
	aIt, err := a.Iterator(common)
	if err != nil {
		return nil, err
	}
	bIt, err := b.Iterator(common)
	if err != nil {
		return nil, err
	}
	m := iterators.NewMulti(common, aIt, bIt)
	defer m.Release()
	for flatIdx := range m.All() {
		outFlat[flatIdx] = fn(aIt.Value(), bIt.Value())
	}
	return output, nil
}

// Map3 returns a new array with fn applied to each triple of elements of a, b and c, broadcast
// to their common shape.
//
// It returns an error wrapping broadcast.ErrIncompatibleShapes if the operands can't be broadcast together.
func Map3[A, B, C, D dtypes.Supported](a *arrays.Array[A], b *arrays.Array[B], c *arrays.Array[C], fn func(A, B, C) D) (*arrays.Array[D], error) {
	common, trivial, err := broadcast.Shapes(a.Shape(), b.Shape(), c.Shape())
	if err != nil {
		return nil, errors.WithMessagef(err, "elementwise.Map3(%s, %s, %s)", a, b, c)
	}
	output := arrays.Zeros[D](common...)
	outFlat := output.Flat()
	if trivial && linearLayout(a, b, c) {
		logPath("Map3", common, true)
		aFlat, bFlat, cFlat := a.Flat()[a.Offset():], b.Flat()[b.Offset():], c.Flat()[c.Offset():]
		for i := range outFlat {
			outFlat[i] = fn(aFlat[i], bFlat[i], cFlat[i])
		}
		return output, nil
	}

	logPath("Map3", common, false)
	aIt, err := a.Iterator(common)
	if err != nil {
		return nil, err
	}
	bIt, err := b.Iterator(common)
	if err != nil {
		return nil, err
	}
	cIt, err := c.Iterator(common)
	if err != nil {
		return nil, err
	}
	m := iterators.NewMulti(common, aIt, bIt, cIt)
	defer m.Release()
	for flatIdx := range m.All() {
		outFlat[flatIdx] = fn(aIt.Value(), bIt.Value(), cIt.Value())
	}
	return output, nil
}

// contiguous is implemented by arrays.Array of any element type.
type contiguous interface {
	IsContiguous() bool
}

// linearLayout returns whether all operands (already known to share one shape) can be walked
// with a plain linear loop over their flat buffers: they are all contiguous. Strides of axes
// with dimension 1 are never used, so they don't need to match.
func linearLayout(operands ...contiguous) bool {
	for _, op := range operands {
		if !op.IsContiguous() {
			return false
		}
	}
	return true
}

func logPath(opName string, common shapes.Shape, linear bool) {
	if klog.V(1).Enabled() {
		if linear {
			klog.Infof("elementwise.%s: shape %s, linear path", opName, common)
		} else {
			klog.Infof("elementwise.%s: shape %s, strided path", opName, common)
		}
	}
}
