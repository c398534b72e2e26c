// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	shape := Make(2, 3, 4)
	assert.Equal(t, 3, shape.Rank())
	assert.Equal(t, 24, shape.Size())
	assert.False(t, shape.IsScalar())
	assert.False(t, shape.IsZeroSize())
	assert.Equal(t, "[2 3 4]", shape.String())
	require.NoError(t, shape.Validate())

	scalar := Make()
	assert.True(t, scalar.IsScalar())
	assert.NotNil(t, scalar)
	assert.Equal(t, Shape{}, scalar)
	assert.Equal(t, scalar, scalar.Clone())
	assert.Equal(t, 1, scalar.Size())
	assert.Equal(t, "[]", scalar.String())

	empty := Make(3, 0, 2)
	assert.True(t, empty.IsZeroSize())
	assert.Equal(t, 0, empty.Size())
	require.NoError(t, empty.Validate())

	require.Error(t, Make(2, -1).Validate())

	// Make and Clone don't alias the input.
	dims := []int{5, 6}
	shape = Make(dims...)
	dims[0] = 7
	assert.Equal(t, Shape{5, 6}, shape)
	clone := shape.Clone()
	clone[1] = 1
	assert.Equal(t, Shape{5, 6}, shape)
	assert.True(t, shape.Equal(Shape{5, 6}))
	assert.False(t, shape.Equal(Shape{5, 6, 1}))

	assert.Equal(t, Shape{1, 1, 1}, Ones(3))
}

func TestRowMajorStrides(t *testing.T) {
	require.Equal(t, Strides{12, 4, 1}, RowMajorStrides(Make(2, 3, 4)))
	require.Equal(t, Strides{1}, RowMajorStrides(Make(5)))
	require.Equal(t, Strides{2, 2, 1}, RowMajorStrides(Make(3, 1, 2)))
	require.Equal(t, Strides{}, RowMajorStrides(Make()))
	require.Equal(t, Strides{3, 3, 1}, RowMajorStrides(Make(2, 0, 3)))
}

func TestBackStrides(t *testing.T) {
	// Row-major [2, 3].
	require.Equal(t, Strides{3, 2}, Strides{3, 1}.BackStrides(Make(2, 3)))

	// Broadcast axis has back-stride 0, whatever its dimension.
	require.Equal(t, Strides{0, 3}, Strides{0, 1}.BackStrides(Make(5, 4)))

	// Axis of dimension 1 never moves.
	require.Equal(t, Strides{0, 0}, Strides{4, 1}.BackStrides(Make(1, 1)))

	// Non-contiguous (transposed) strides.
	require.Equal(t, Strides{2, 6}, Strides{1, 3}.BackStrides(Make(3, 3)))

	require.Panics(t, func() { _ = Strides{1}.BackStrides(Make(2, 3)) })
}

func TestStridesOffset(t *testing.T) {
	strides := Strides{12, 4, 1}
	assert.Equal(t, 0, strides.Offset([]int{0, 0, 0}))
	assert.Equal(t, 23, strides.Offset([]int{1, 2, 3}))
	assert.Equal(t, 4, Strides{0, 4}.Offset([]int{7, 1}))
	assert.Equal(t, 0, Strides{}.Offset(nil))
	require.Panics(t, func() { _ = strides.Offset([]int{1}) })

	assert.True(t, strides.Equal(Strides{12, 4, 1}))
	assert.False(t, strides.Equal(Strides{12, 4}))
	assert.Equal(t, "[12 4 1]", strides.String())
}
