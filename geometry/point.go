// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package geometry provides the minimal 2-D primitives, Point and Rect,
// shared by the sorted and kd-tree point-set backends.
package geometry

import (
	"fmt"
	"math"
)

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Less reports whether p sorts strictly before other under the lexicographic
// total order: by X, then by Y.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// LessAxis reports whether p sorts strictly before other when comparing on
// the given split axis first and the other axis as tiebreaker. axis 0 means
// x-then-y (the even-depth comparator); axis 1 means y-then-x (the odd-depth
// comparator), per the spec's axial comparison rule.
func (p Point) LessAxis(other Point, axis int) bool {
	if axis == 0 {
		return p.Less(other)
	}
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// Equal reports exact, bitwise component equality.
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Euclidean distance between p and other, computed with
// math.Hypot to avoid under/overflow on well-scaled inputs.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}
