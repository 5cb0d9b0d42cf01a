package pointset

import (
	"container/heap"
	"math"
	"sort"

	"github.com/jblindsay/pointidx/geometry"
)

// candidate is one member of a bounded nearest-neighbor working set: a point
// together with its distance to the query. This is the same (value,
// priority) shape as the teacher's structures/priorityqueue.go item, keyed
// on distance instead of an explicit int priority.
type candidate struct {
	point geometry.Point
	dist  float64
}

// candidateHeap is a max-heap on distance (ties broken by lexicographically
// larger point sorting first), so that the root is always the current worst
// candidate in the working set and can be evicted in O(log k). The teacher's
// PQueue hand-rolls sink/swim over a 1-indexed slice; this uses the stdlib
// container/heap instead, which is the idiomatic replacement for that
// hand-rolled shape.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist > h[j].dist
	}
	return h[j].point.Less(h[i].point)
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// nearestSet is the bounded top-k working set W described in the spec's
// NearestK pseudocode: at most k candidates, orderable by worst-distance for
// pruning, and extractable in ascending-distance order (lex tie-broken) for
// the final result.
type nearestSet struct {
	k int
	h candidateHeap
}

func newNearestSet(k int) *nearestSet {
	return &nearestSet{k: k, h: make(candidateHeap, 0, k)}
}

func (s *nearestSet) Len() int { return len(s.h) }

func (s *nearestSet) Full() bool { return len(s.h) >= s.k }

// WorstDistance returns the distance of the current worst candidate, or
// +Inf if the set is not yet full (matching the spec's requirement that the
// far-side pruning check treat an unfilled working set as +Inf).
func (s *nearestSet) WorstDistance() float64 {
	if len(s.h) < s.k {
		return math.Inf(1)
	}
	return s.h[0].dist
}

// Insert adds p at the given distance to the working set, evicting the
// current worst candidate if the set is now over capacity.
func (s *nearestSet) Insert(p geometry.Point, dist float64) {
	heap.Push(&s.h, candidate{point: p, dist: dist})
	if len(s.h) > s.k {
		heap.Pop(&s.h)
	}
}

// Sorted drains the working set into a slice ordered by ascending distance,
// ties broken lexicographically.
func (s *nearestSet) Sorted() []geometry.Point {
	cands := make([]candidate, len(s.h))
	copy(cands, s.h)
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].point.Less(cands[j].point)
	})
	out := make([]geometry.Point, len(cands))
	for i, c := range cands {
		out[i] = c.point
	}
	return out
}
