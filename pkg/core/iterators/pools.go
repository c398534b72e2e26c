// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package iterators

import "sync"

// Pools of logical index vectors, indexed by rank (0-maxPooledRank).
// Ranks beyond maxPooledRank fall back to regular allocation.

const maxPooledRank = 8

var indicesPools [maxPooledRank + 1]sync.Pool

// getIndices returns a zeroed index vector of the given rank, from the pool if available.
// The caller should call putIndices when done.
func getIndices(rank int) []int {
	if rank > maxPooledRank {
		return make([]int, rank)
	}
	if v := indicesPools[rank].Get(); v != nil {
		indices := *(v.(*[]int))
		clear(indices)
		return indices
	}
	return make([]int, rank)
}

// putIndices returns an index vector to the pool.
func putIndices(indices []int) {
	rank := len(indices)
	if rank <= maxPooledRank {
		indicesPools[rank].Put(&indices)
	}
}
