// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Adapted from structures/kdtree.go's T/insert/inRange shape: fixed-size
// [2]float64 points become geometry.Point, radius search becomes
// Rect-pruned range search, and each node now carries a bounding rectangle
// (absent from the teacher's tree) needed for that pruning and for kNN.
package pointset

import (
	"bytes"
	"fmt"

	"github.com/jblindsay/pointidx/geometry"
)

// kdNode is one node of a 2-d tree: a splitting point, the bounding
// rectangle of its subtree, its depth (whose parity selects the split
// axis), and its two children. Nodes are created once by Put and never
// mutated afterward except for child attachment; each is owned exclusively
// by its parent.
type kdNode struct {
	point       geometry.Point
	rect        geometry.Rect
	depth       int
	left, right *kdNode
}

func (n *kdNode) axis() int { return n.depth % 2 }

// KdPointSet is the 2-d tree PointSet backend: a recursive binary space
// partition alternating x- and y-axis splits, answering range and
// nearest-neighbor queries by pruned recursive search.
type KdPointSet struct {
	root *kdNode
	size int
}

// NewKdPointSet returns an empty KdPointSet rooted at the unit square.
func NewKdPointSet() *KdPointSet {
	return &KdPointSet{}
}

func (t *KdPointSet) Empty() bool { return t.size == 0 }

func (t *KdPointSet) Size() int { return t.size }

// Put inserts p, silently ignoring the call if p is already a member. The
// root's bounding rectangle is always the unit square, per the spec's
// contract that all inserted points lie in [0,1]x[0,1]; points outside that
// square are undefined behavior (§4.5, §9 of the spec) and are not rejected
// here.
func (t *KdPointSet) Put(p geometry.Point) {
	var inserted bool
	t.root, inserted = insertNode(t.root, p, geometry.UnitSquare, 0)
	if inserted {
		t.size++
	}
}

func insertNode(n *kdNode, p geometry.Point, rect geometry.Rect, depth int) (*kdNode, bool) {
	if n == nil {
		return &kdNode{point: p, rect: rect, depth: depth}, true
	}
	if n.point.Equal(p) {
		return n, false
	}
	axis := n.axis()
	var inserted bool
	if n.point.LessAxis(p, axis) {
		n.right, inserted = insertNode(n.right, p, rect.ShrinkRight(n.point, axis), depth+1)
	} else {
		n.left, inserted = insertNode(n.left, p, rect.ShrinkLeft(n.point, axis), depth+1)
	}
	return n, inserted
}

// Contains reports whether p is a member, using the same axial comparison
// as Put to descend toward it.
func (t *KdPointSet) Contains(p geometry.Point) bool {
	for n := t.root; n != nil; {
		if n.point.Equal(p) {
			return true
		}
		axis := n.axis()
		if n.point.LessAxis(p, axis) {
			n = n.right
		} else {
			n = n.left
		}
	}
	return false
}

// Points returns every member in pre-order DFS order: the node, then its
// left subtree, then its right subtree.
func (t *KdPointSet) Points() []geometry.Point {
	out := make([]geometry.Point, 0, t.size)
	t.root.collect(&out)
	return out
}

func (n *kdNode) collect(out *[]geometry.Point) {
	if n == nil {
		return
	}
	*out = append(*out, n.point)
	n.left.collect(out)
	n.right.collect(out)
}

// Range returns every member contained in r. The bounding rectangle stored
// at each node prunes whole subtrees that cannot intersect r; surviving
// nodes are visited left-before-right, so the result order is the pre-order
// DFS encounter order of the scan.
func (t *KdPointSet) Range(r geometry.Rect) []geometry.Point {
	var out []geometry.Point
	t.root.rangeSearch(r, &out)
	return out
}

func (n *kdNode) rangeSearch(r geometry.Rect, out *[]geometry.Point) {
	if n == nil || !n.rect.Intersects(r) {
		return
	}
	if r.Contains(n.point) {
		*out = append(*out, n.point)
	}
	n.left.rangeSearch(r, out)
	n.right.rangeSearch(r, out)
}

// Nearest returns the member closest to p, or ok == false if the set is
// empty.
func (t *KdPointSet) Nearest(p geometry.Point) (geometry.Point, bool) {
	if t.Empty() {
		return geometry.Point{}, false
	}
	res := t.NearestK(p, 1)
	if len(res) == 0 {
		return geometry.Point{}, false
	}
	return res[0], true
}

// NearestK returns the min(k, Size()) members closest to p, in ascending
// distance order, via a best-first pruned search bounded by a top-k working
// set (see nearest.go).
func (t *KdPointSet) NearestK(p geometry.Point, k int) []geometry.Point {
	if k <= 0 || t.Empty() {
		return nil
	}
	w := newNearestSet(k)
	t.root.searchNearest(p, w)
	return w.Sorted()
}

func (n *kdNode) searchNearest(p geometry.Point, w *nearestSet) {
	if n == nil {
		return
	}
	if w.Full() && n.rect.Distance(p) > w.WorstDistance() {
		return
	}
	d := p.Distance(n.point)
	if !w.Full() || d < w.WorstDistance() {
		w.Insert(n.point, d)
	}

	near, far := n.left, n.right
	if !p.LessAxis(n.point, n.axis()) {
		near, far = n.right, n.left
	}
	near.searchNearest(p, w)
	if far != nil && far.rect.Distance(p) < w.WorstDistance() {
		far.searchNearest(p, w)
	}
}

func (t *KdPointSet) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range t.Points() {
		if i > 0 {
			buf.WriteString("; ")
		}
		fmt.Fprintf(&buf, "%v", p)
	}
	buf.WriteByte('}')
	return buf.String()
}
