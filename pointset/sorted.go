package pointset

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/btree"

	"github.com/jblindsay/pointidx/geometry"
)

// btreeDegree mirrors the degree used by the pack's other B-tree-backed
// ordered containers; it is not performance critical for this workload.
const btreeDegree = 32

// pointItem adapts geometry.Point to btree.Item using the lexicographic
// total order.
type pointItem geometry.Point

func (a pointItem) Less(than btree.Item) bool {
	return geometry.Point(a).Less(geometry.Point(than.(pointItem)))
}

// SortedPointSet is the reference PointSet backend: a balanced ordered
// container of points, queried by linear scan. It is the ground truth that
// KdPointSet's answers are checked against.
type SortedPointSet struct {
	tree *btree.BTree
}

// NewSortedPointSet returns an empty SortedPointSet.
func NewSortedPointSet() *SortedPointSet {
	return &SortedPointSet{tree: btree.New(btreeDegree)}
}

func (s *SortedPointSet) Empty() bool { return s.tree.Len() == 0 }

func (s *SortedPointSet) Size() int { return s.tree.Len() }

// Put inserts p, ignoring the call if p is already present.
func (s *SortedPointSet) Put(p geometry.Point) {
	item := pointItem(p)
	if s.tree.Has(item) {
		return
	}
	s.tree.ReplaceOrInsert(item)
}

func (s *SortedPointSet) Contains(p geometry.Point) bool {
	return s.tree.Has(pointItem(p))
}

// Points returns every member in lexicographic order.
func (s *SortedPointSet) Points() []geometry.Point {
	pts := make([]geometry.Point, 0, s.tree.Len())
	s.tree.Ascend(func(i btree.Item) bool {
		pts = append(pts, geometry.Point(i.(pointItem)))
		return true
	})
	return pts
}

// Range returns the lexicographically ordered subset of members contained
// in r, found by a linear scan of the ordered container.
func (s *SortedPointSet) Range(r geometry.Rect) []geometry.Point {
	var found []geometry.Point
	s.tree.Ascend(func(i btree.Item) bool {
		p := geometry.Point(i.(pointItem))
		if r.Contains(p) {
			found = append(found, p)
		}
		return true
	})
	return found
}

// Nearest returns the member minimizing Euclidean distance to p, breaking
// ties by lexicographic order (the first such point the ascending scan
// encounters).
func (s *SortedPointSet) Nearest(p geometry.Point) (geometry.Point, bool) {
	k := s.NearestK(p, 1)
	if len(k) == 0 {
		return geometry.Point{}, false
	}
	return k[0], true
}

// NearestK returns the min(k, Size()) members nearest to p, in ascending
// distance order, ties broken lexicographically.
func (s *SortedPointSet) NearestK(p geometry.Point, k int) []geometry.Point {
	if k <= 0 || s.Empty() {
		return nil
	}
	all := s.Points()
	sort.SliceStable(all, func(i, j int) bool {
		di, dj := p.Distance(all[i]), p.Distance(all[j])
		if di != dj {
			return di < dj
		}
		return all[i].Less(all[j])
	})
	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}

func (s *SortedPointSet) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s.Points() {
		if i > 0 {
			buf.WriteString("; ")
		}
		fmt.Fprintf(&buf, "%v", p)
	}
	buf.WriteByte('}')
	return buf.String()
}
