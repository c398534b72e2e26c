// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arrays

import (
	"testing"

	"github.com/StavrosMast/xtensor/pkg/core/broadcast"
	"github.com/StavrosMast/xtensor/pkg/core/iterators"
	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestFromFlat(t *testing.T) {
	a, err := FromFlat([]int32{0, 1, 2, 3, 4, 5}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, shapes.Make(2, 3), a.Shape())
	assert.Equal(t, shapes.Strides{3, 1}, a.Strides())
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 6, a.Size())
	assert.Equal(t, dtypes.Int32, a.DType())
	assert.Contains(t, a.String(), "[2 3]")
	assert.True(t, a.IsContiguous())
	assert.Equal(t, int32(5), a.At(1, 2))
	assert.Equal(t, int32(3), a.At(1, 0))
	require.Panics(t, func() { _ = a.At(2, 0) })
	require.Panics(t, func() { _ = a.At(0) })

	_, err = FromFlat([]float32{1, 2, 3}, 2, 2)
	require.Error(t, err)
	_, err = FromFlat([]float32{}, -1)
	require.Error(t, err)

	empty := must.M1(FromFlat([]float64{}, 3, 0))
	assert.Equal(t, 0, empty.Size())
	assert.Empty(t, empty.Values())

	scalar := must.M1(FromFlat([]float64{3.5}))
	assert.Equal(t, 3.5, scalar.At())
	assert.Equal(t, []float64{3.5}, scalar.Values())
}

func TestZerosFull(t *testing.T) {
	z := Zeros[float32](2, 2)
	assert.Equal(t, []float32{0, 0, 0, 0}, z.Values())
	f := Full(true, 3)
	assert.Equal(t, []bool{true, true, true}, f.Values())
	assert.Equal(t, dtypes.Bool, f.DType())
	h := Full(float16.Fromfloat32(1.5), 2)
	assert.Equal(t, dtypes.Float16, h.DType())
	assert.Equal(t, float32(1.5), h.At(1).Float32())
	require.Panics(t, func() { _ = Zeros[int64](2, -2) })
}

func TestFromStrided(t *testing.T) {
	flat := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}

	// Column 1 of a 3x3 matrix.
	col := must.M1(FromStrided(flat, 1, shapes.Make(3), shapes.Strides{3}))
	assert.Equal(t, []int{1, 4, 7}, col.Values())
	assert.False(t, col.IsContiguous())

	// Reversed.
	rev := must.M1(FromStrided(flat, 8, shapes.Make(9), shapes.Strides{-1}))
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2, 1, 0}, rev.Values())

	_, err := FromStrided(flat, 3, shapes.Make(3), shapes.Strides{3})
	require.Error(t, err, "last element at 3+6 is out of range")
	_, err = FromStrided(flat, 0, shapes.Make(3), shapes.Strides{-1})
	require.Error(t, err)
	_, err = FromStrided(flat, 0, shapes.Make(3, 3), shapes.Strides{3})
	require.Error(t, err)

	// Zero-sized arrays address nothing.
	empty, err := FromStrided(flat, 100, shapes.Make(0, 3), shapes.Strides{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Offset())
	assert.Empty(t, empty.Values())
}

func TestTranspose(t *testing.T) {
	a := must.M1(FromFlat([]int{0, 1, 2, 3, 4, 5}, 2, 3))
	at := must.M1(a.Transpose())
	assert.Equal(t, shapes.Make(3, 2), at.Shape())
	assert.Equal(t, shapes.Strides{1, 3}, at.Strides())
	assert.False(t, at.IsContiguous())
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, at.Values())
	assert.Equal(t, a.At(1, 2), at.At(2, 1))

	// Shares storage.
	a.Flat()[4] = 40
	assert.Equal(t, 40, at.At(1, 1))

	b := must.M1(FromFlat(make([]float32, 24), 2, 3, 4))
	bt := must.M1(b.Transpose(1, 2, 0))
	assert.Equal(t, shapes.Make(3, 4, 2), bt.Shape())
	assert.Equal(t, shapes.Strides{4, 1, 12}, bt.Strides())

	_, err := b.Transpose(0, 1)
	require.Error(t, err)
	_, err = b.Transpose(0, 1, 1)
	require.Error(t, err)
	_, err = b.Transpose(0, 1, 3)
	require.Error(t, err)

	c := at.Clone()
	assert.True(t, c.IsContiguous())
	assert.Equal(t, at.Values(), c.Values())
}

func TestBroadcastTo(t *testing.T) {
	row := must.M1(FromFlat([]int{1, 2, 3}, 1, 3))
	view := must.M1(row.BroadcastTo(2, 3))
	assert.Equal(t, shapes.Strides{0, 1}, view.Strides())
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, view.Values())
	assert.False(t, view.IsContiguous())

	vec := must.M1(FromFlat([]int{7, 8}, 2))
	view = must.M1(vec.BroadcastTo(3, 2))
	assert.Equal(t, []int{7, 8, 7, 8, 7, 8}, view.Values())

	_, err := vec.BroadcastTo(3, 4)
	require.ErrorIs(t, err, broadcast.ErrIncompatibleShapes)

	// Negative dimensions are rejected, even where a size-1 axis could otherwise stretch.
	_, err = row.BroadcastTo(-2, 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative dimension")
	scalar := must.M1(FromFlat([]int64{5}, 1))
	_, err = scalar.BroadcastTo(-2)
	require.Error(t, err)
}

func TestIterator(t *testing.T) {
	col := must.M1(FromFlat([]float64{1, 2, 3}, 3, 1))
	common := shapes.Make(3, 4)
	it := must.M1(col.Iterator(common))
	assert.Equal(t, shapes.Strides{1, 0}, it.Strides())
	m := iterators.NewMulti(common, it)
	defer m.Release()
	var values []float64
	for range m.All() {
		values = append(values, it.Value())
	}
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, values)

	_, err := col.Iterator(shapes.Make(2, 4))
	require.ErrorIs(t, err, broadcast.ErrIncompatibleShapes)
}

func TestCast(t *testing.T) {
	var e Expression = must.M1(FromFlat([]int8{1, 2}, 2))
	a, ok := Cast[*Array[int8]](e)
	require.True(t, ok)
	assert.Equal(t, int8(2), a.At(1))
	_, ok = Cast[*Array[float32]](e)
	require.False(t, ok)
}
