// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package broadcast implements NumPy-style broadcasting rules over shapes.Shape.
//
// Shapes are aligned at their trailing axes. Two aligned dimensions are compatible if they
// are equal or if one of them is 1, in which case the operand with dimension 1 is "stretched"
// (its stride on that axis becomes 0). Missing leading axes of the shorter shape are
// treated as dimensions of size 1.
//
// Examples:
//
//	[3 1 5] and [4 5] -> [3 4 5], trivial=false
//	[4 5]   and [4 5] -> [4 5],   trivial=true
//	[2 3]   and [2 4] -> ErrIncompatibleShapes
package broadcast

import (
	"github.com/StavrosMast/xtensor/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrIncompatibleShapes is returned (wrapped) when two shapes cannot be broadcast together:
// some pair of aligned dimensions are both different from 1 and different from each other.
var ErrIncompatibleShapes = errors.New("incompatible shapes for broadcasting")

// Shape broadcasts input against output and returns the resulting shape.
//
// Both shapes are aligned at their trailing axes, and for each aligned pair of dimensions:
//
//   - if the output dimension is 1, it takes the input dimension;
//   - else if the input dimension is neither 1 nor equal to the output dimension, it fails with
//     ErrIncompatibleShapes;
//   - else the dimension is kept.
//
// Leading axes of the longer shape are copied unchanged, so the result has rank
// max(input.Rank(), output.Rank()).
//
// trivial is true if both shapes have the same rank and all dimensions were already equal,
// that is, no broadcasting happened between them.
//
// Neither input nor output are modified.
func Shape(input, output shapes.Shape) (result shapes.Shape, trivial bool, err error) {
	rank := max(input.Rank(), output.Rank())
	result = make(shapes.Shape, rank)
	trivial = input.Rank() == output.Rank()
	for axis := rank - 1; axis >= 0; axis-- {
		inAxis := axis - (rank - input.Rank())
		outAxis := axis - (rank - output.Rank())
		switch {
		case inAxis < 0:
			result[axis] = output[outAxis]
		case outAxis < 0:
			result[axis] = input[inAxis]
		default:
			inDim, outDim := input[inAxis], output[outAxis]
			switch {
			case outDim == 1:
				result[axis] = inDim
			case inDim != 1 && inDim != outDim:
				return nil, false, errors.Wrapf(ErrIncompatibleShapes,
					"dimension of axis #%d doesn't match and cannot be broadcast (%d vs %d), got shapes %s and %s",
					axis, inDim, outDim, input, output)
			default:
				result[axis] = outDim
			}
			trivial = trivial && inDim == outDim
		}
	}
	return result, trivial, nil
}

// Shapes folds Shape over all the given shapes, left to right, and returns the common shape
// they all broadcast to.
//
// trivial is true if no broadcasting happened for any of the operands: all shapes are
// exactly equal. Callers can use it to select a simpler equal-shape code path.
//
// With no shapes it returns a scalar shape. In case of error no partial shape is returned.
func Shapes(operandShapes ...shapes.Shape) (common shapes.Shape, trivial bool, err error) {
	if len(operandShapes) == 0 {
		return shapes.Shape{}, true, nil
	}
	common = make(shapes.Shape, 0, Rank(operandShapes...))
	common = append(common, operandShapes[0]...)
	trivial = true
	for ii, operandShape := range operandShapes[1:] {
		var operandTrivial bool
		common, operandTrivial, err = Shape(operandShape, common)
		if err != nil {
			return nil, false, errors.WithMessagef(err, "broadcasting operand #%d", ii+1)
		}
		trivial = trivial && operandTrivial
	}
	if klog.V(2).Enabled() {
		klog.Infof("broadcast.Shapes(%v) -> %s (trivial=%v)", operandShapes, common, trivial)
	}
	return common, trivial, nil
}

// Rank returns the rank of the broadcast of the given shapes: the maximum rank among them.
// It returns 0 if no shapes are given.
func Rank(operandShapes ...shapes.Shape) int {
	rank := 0
	for _, s := range operandShapes {
		rank = max(rank, s.Rank())
	}
	return rank
}

// CheckTrivial reports whether two strides are element-wise equal.
//
// Once two operands are known to share the same shape, equal strides means their elements
// are laid out the same way, and a linear walk over both flat buffers is safe.
func CheckTrivial(strides1, strides2 shapes.Strides) bool {
	return strides1.Equal(strides2)
}

// Strides returns the strides an operand with the given shape and strides must use to be
// traversed with the common (broadcast) shape.
//
// Leading axes missing from the operand get stride 0, and so do axes where the operand has
// dimension 1 and the common shape doesn't. All other axes keep their stride.
//
// It returns an error if len(shape) != len(strides), if either shape has a negative dimension,
// if the operand has a larger rank than the common shape, or if the operand cannot be broadcast
// to the common shape (ErrIncompatibleShapes).
func Strides(shape shapes.Shape, strides shapes.Strides, common shapes.Shape) (shapes.Strides, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "broadcast.Strides")
	}
	if err := common.Validate(); err != nil {
		return nil, errors.WithMessage(err, "broadcast.Strides")
	}
	if len(shape) != len(strides) {
		return nil, errors.Errorf("broadcast.Strides: shape %s and strides %s have different ranks", shape, strides)
	}
	if shape.Rank() > common.Rank() {
		return nil, errors.Errorf("broadcast.Strides: operand shape %s has larger rank than the common shape %s", shape, common)
	}
	adjusted := make(shapes.Strides, common.Rank())
	offset := common.Rank() - shape.Rank()
	for axis, dim := range shape {
		commonDim := common[offset+axis]
		switch {
		case dim == commonDim:
			adjusted[offset+axis] = strides[axis]
		case dim == 1:
			// Stretched axis: adjusted stride stays 0.
		default:
			return nil, errors.Wrapf(ErrIncompatibleShapes,
				"operand shape %s cannot be broadcast to %s (axis #%d: %d vs %d)",
				shape, common, offset+axis, dim, commonDim)
		}
	}
	return adjusted, nil
}
