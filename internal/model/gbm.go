package model

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a regression tree over the standardized salary
// feature. Leaf nodes have nil children and carry the leaf value. Fields
// are exported for gob persistence.
type TreeNode struct {
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
}

func (n *TreeNode) predict(x float64) float64 {
	for n.Left != nil {
		if x <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// fitTree grows a least-squares regression tree of at most maxDepth levels
// on (xs[i], targets[i]) for i in idx. With a single feature the best split
// is found by a sorted sweep minimizing the summed squared error of the two
// halves.
func fitTree(xs, targets []float64, idx []int, maxDepth int) *TreeNode {
	if maxDepth == 0 || len(idx) < 2 {
		return &TreeNode{Value: meanAt(targets, idx)}
	}

	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.Slice(sorted, func(a, b int) bool { return xs[sorted[a]] < xs[sorted[b]] })

	// Prefix sums over the sorted order let each candidate split be
	// scored in O(1).
	n := len(sorted)
	var total, totalSq float64
	for _, i := range sorted {
		total += targets[i]
		totalSq += targets[i] * targets[i]
	}

	bestGain := 0.0
	bestSplit := -1
	baseSSE := totalSq - total*total/float64(n)

	var runSum, runSq float64
	for pos := 0; pos < n-1; pos++ {
		t := targets[sorted[pos]]
		runSum += t
		runSq += t * t

		// Splits are only valid between distinct feature values.
		if xs[sorted[pos]] == xs[sorted[pos+1]] {
			continue
		}

		nl := float64(pos + 1)
		nr := float64(n - pos - 1)
		sseLeft := runSq - runSum*runSum/nl
		sseRight := (totalSq - runSq) - (total-runSum)*(total-runSum)/nr
		gain := baseSSE - sseLeft - sseRight

		if gain > bestGain {
			bestGain = gain
			bestSplit = pos
		}
	}

	if bestSplit < 0 {
		return &TreeNode{Value: total / float64(n)}
	}

	threshold := (xs[sorted[bestSplit]] + xs[sorted[bestSplit+1]]) / 2
	return &TreeNode{
		Threshold: threshold,
		Left:      fitTree(xs, targets, sorted[:bestSplit+1], maxDepth-1),
		Right:     fitTree(xs, targets, sorted[bestSplit+1:], maxDepth-1),
	}
}

func meanAt(values []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += values[i]
	}
	return sum / float64(len(idx))
}

// sampleIndices draws a deterministic subsample of [0, n) without
// replacement. fraction 1 returns all indices in order so that an
// unsubsampled fit never depends on the RNG.
func sampleIndices(rng *rand.Rand, n int, fraction float64) []int {
	if fraction >= 1 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	k := int(fraction * float64(n))
	if k < 1 {
		k = 1
	}
	perm := rng.Perm(n)
	idx := perm[:k]
	sort.Ints(idx)
	return idx
}
