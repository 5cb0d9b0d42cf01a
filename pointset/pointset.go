// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package pointset provides two interchangeable implementations of a 2-D
// point index: SortedPointSet, a reference backend over a balanced ordered
// container, and KdPointSet, a 2-d tree backend that answers the same
// queries with pruned recursive search.
package pointset

import "github.com/jblindsay/pointidx/geometry"

// PointSet is the shared contract implemented by SortedPointSet and
// KdPointSet. Put requires exclusive access to the set; every other method
// is read-only and may be called concurrently by multiple goroutines
// provided no Put is in flight (the package does no locking of its own).
type PointSet interface {
	// Empty reports whether the set has no members.
	Empty() bool
	// Size returns the number of distinct points in the set.
	Size() int
	// Put inserts p, silently ignoring the call if p is already a member.
	Put(p geometry.Point)
	// Contains reports whether p is a member of the set.
	Contains(p geometry.Point) bool
	// Points returns every member, in the set's natural order (lexicographic
	// for SortedPointSet, pre-order DFS for KdPointSet). The returned slice
	// is a fresh copy, independent of the set.
	Points() []geometry.Point
	// Range returns every member contained in r, independent of the set.
	Range(r geometry.Rect) []geometry.Point
	// Nearest returns the member closest to p, or ok == false if the set is
	// empty. Ties are broken by lexicographic order.
	Nearest(p geometry.Point) (nearest geometry.Point, ok bool)
	// NearestK returns the min(k, Size()) members closest to p, in ascending
	// distance order, ties broken lexicographically.
	NearestK(p geometry.Point, k int) []geometry.Point
	// String renders the set as "{p1; p2; ...; pn}".
	String() string
}
