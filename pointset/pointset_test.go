// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Oracle-agreement and end-to-end scenario tests, run against both
// backends. Mirrors the teacher's structures_test.go habit of driving the
// same exercise across randomized input with math/rand, but deterministic
// (seeded) rather than gated behind a manual boolean toggle, since these
// assertions are cheap and always worth running.
package pointset

import (
	"math/rand"
	"os"
	"sort"
	"testing"

	"github.com/jblindsay/pointidx/geometry"
	"github.com/jblindsay/pointidx/pointio"
)

func newBackends() map[string]PointSet {
	return map[string]PointSet{
		"sorted": NewSortedPointSet(),
		"kd":     NewKdPointSet(),
	}
}

// Scenario A (basic): insert three points and check membership, nearest,
// and range against both backends.
func TestScenarioABasic(t *testing.T) {
	for name, set := range newBackends() {
		set.Put(geometry.Point{X: 0, Y: 0})
		set.Put(geometry.Point{X: 1, Y: 1})
		set.Put(geometry.Point{X: 0.5, Y: 0.5})

		if set.Size() != 3 {
			t.Errorf("[%s] Size() = %d, want 3", name, set.Size())
		}
		if !set.Contains(geometry.Point{X: 0, Y: 0}) {
			t.Errorf("[%s] expected Contains((0,0)) = true", name)
		}
		if set.Contains(geometry.Point{X: 0.5, Y: 0}) {
			t.Errorf("[%s] expected Contains((0.5,0)) = false", name)
		}

		n, ok := set.Nearest(geometry.Point{X: 0.4, Y: 0.4})
		if !ok || n != (geometry.Point{X: 0.5, Y: 0.5}) {
			t.Errorf("[%s] Nearest((0.4,0.4)) = %v, %v, want (0.5,0.5), true", name, n, ok)
		}

		r := geometry.NewRect(geometry.Point{X: 0.3, Y: 0.3}, geometry.Point{X: 0.7, Y: 0.7})
		got := set.Range(r)
		if len(got) != 1 || got[0] != (geometry.Point{X: 0.5, Y: 0.5}) {
			t.Errorf("[%s] Range(%v) = %v, want [(0.5,0.5)]", name, r, got)
		}
	}
}

// Scenario E: duplicate inserts are absorbed.
func TestScenarioEDuplicateInserts(t *testing.T) {
	for name, set := range newBackends() {
		set.Put(geometry.Point{X: 0, Y: 0})
		set.Put(geometry.Point{X: 0, Y: 0})
		set.Put(geometry.Point{X: 0, Y: 0})

		if set.Size() != 1 {
			t.Errorf("[%s] Size() after triple insert = %d, want 1", name, set.Size())
		}
		if !set.Contains(geometry.Point{X: 0, Y: 0}) {
			t.Errorf("[%s] expected Contains((0,0)) = true", name)
		}
	}
}

// Scenario F: queries against an empty set return empty/absent.
func TestScenarioFEmptyQueries(t *testing.T) {
	for name, set := range newBackends() {
		if !set.Empty() {
			t.Fatalf("[%s] expected fresh set to be empty", name)
		}
		if _, ok := set.Nearest(geometry.Point{X: 0.5, Y: 0.5}); ok {
			t.Errorf("[%s] expected Nearest on empty set to be absent", name)
		}
		if got := set.Range(geometry.UnitSquare); len(got) != 0 {
			t.Errorf("[%s] expected Range on empty set to be empty, got %v", name, got)
		}
		if got := set.NearestK(geometry.Point{X: 0.5, Y: 0.5}, 5); len(got) != 0 {
			t.Errorf("[%s] expected NearestK on empty set to be empty, got %v", name, got)
		}
	}
}

func loadTestData(t *testing.T, path string, set PointSet) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	pts, err := pointio.ReadPoints(f, false)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	for _, p := range pts {
		set.Put(p)
	}
}

// Scenario B (data-driven nearest).
func TestScenarioBDataDrivenNearest(t *testing.T) {
	for name, set := range newBackends() {
		loadTestData(t, "testdata/test0.dat", set)
		n, ok := set.Nearest(geometry.Point{X: 0.74, Y: 0.29})
		want := geometry.Point{X: 0.725, Y: 0.338}
		if !ok || n != want {
			t.Errorf("[%s] Nearest((0.74,0.29)) = %v, want %v", name, n, want)
		}
	}
}

// Scenario C (range).
func TestScenarioCRange(t *testing.T) {
	want := map[geometry.Point]bool{
		{X: 0.655, Y: 0.382}: true,
		{X: 0.725, Y: 0.311}: true,
		{X: 0.794, Y: 0.299}: true,
	}
	for name, set := range newBackends() {
		loadTestData(t, "testdata/test1.dat", set)
		r := geometry.NewRect(geometry.Point{X: 0.634, Y: 0.276}, geometry.Point{X: 0.818, Y: 0.42})
		got := set.Range(r)
		if len(got) != len(want) {
			t.Fatalf("[%s] Range(%v) returned %d points, want %d: %v", name, r, len(got), len(want), got)
		}
		for _, p := range got {
			if !want[p] {
				t.Errorf("[%s] Range(%v) returned unexpected point %v", name, r, p)
			}
		}
	}
}

// Scenario D (data-driven nearest 2).
func TestScenarioDDataDrivenNearest2(t *testing.T) {
	for name, set := range newBackends() {
		loadTestData(t, "testdata/test2.dat", set)
		n, ok := set.Nearest(geometry.Point{X: 0.712, Y: 0.567})
		want := geometry.Point{X: 0.718, Y: 0.555}
		if !ok || n != want {
			t.Errorf("[%s] Nearest((0.712,0.567)) = %v, want %v", name, n, want)
		}
	}
}

func TestInsertionIdempotence(t *testing.T) {
	for name, set := range newBackends() {
		p := geometry.Point{X: 0.3, Y: 0.7}
		set.Put(p)
		sizeAfterFirst := set.Size()
		set.Put(p)
		if set.Size() != sizeAfterFirst {
			t.Errorf("[%s] Size changed after re-inserting %v: %d -> %d", name, p, sizeAfterFirst, set.Size())
		}
	}
}

// TestOracleAgreement is the core property test (§8.7): for randomized
// insertion and query sequences, KdPointSet must agree with
// SortedPointSet on size, membership, range multiset, nearest distance, and
// kNN distance multiset.
func TestOracleAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sorted := NewSortedPointSet()
	kd := NewKdPointSet()

	const n = 500
	points := make([]geometry.Point, 0, n)
	for i := 0; i < n; i++ {
		p := geometry.Point{X: rng.Float64(), Y: rng.Float64()}
		points = append(points, p)
		sorted.Put(p)
		kd.Put(p)

		if sorted.Size() != kd.Size() {
			t.Fatalf("size mismatch after %d inserts: sorted=%d kd=%d", i+1, sorted.Size(), kd.Size())
		}
	}

	// Re-insert a handful of duplicates; oracle agreement on size must
	// survive idempotent re-insertion (§8.1).
	for i := 0; i < 20; i++ {
		p := points[rng.Intn(len(points))]
		sorted.Put(p)
		kd.Put(p)
	}
	if sorted.Size() != kd.Size() {
		t.Fatalf("size mismatch after duplicate re-inserts: sorted=%d kd=%d", sorted.Size(), kd.Size())
	}

	for i := 0; i < n; i++ {
		p := points[i]
		if !kd.Contains(p) || !sorted.Contains(p) {
			t.Fatalf("point %v not found in both backends", p)
		}
	}

	for q := 0; q < 200; q++ {
		query := geometry.Point{X: rng.Float64(), Y: rng.Float64()}

		lo := geometry.Point{X: rng.Float64() * 0.8, Y: rng.Float64() * 0.8}
		hi := geometry.Point{X: lo.X + rng.Float64()*0.2, Y: lo.Y + rng.Float64()*0.2}
		r := geometry.NewRect(lo, hi)

		assertSameMultiset(t, "range", sorted.Range(r), kd.Range(r))

		sn, sOK := sorted.Nearest(query)
		kn, kOK := kd.Nearest(query)
		if sOK != kOK {
			t.Fatalf("nearest presence mismatch for %v: sorted=%v kd=%v", query, sOK, kOK)
		}
		if sOK && query.Distance(sn) != query.Distance(kn) {
			t.Fatalf("nearest distance mismatch for %v: sorted %v (%v) vs kd %v (%v)",
				query, sn, query.Distance(sn), kn, query.Distance(kn))
		}

		k := 1 + rng.Intn(10)
		sk := sorted.NearestK(query, k)
		kk := kd.NearestK(query, k)
		if len(sk) != len(kk) {
			t.Fatalf("nearestK(%v,%d) length mismatch: sorted=%d kd=%d", query, k, len(sk), len(kk))
		}
		for i := range sk {
			if query.Distance(sk[i]) != query.Distance(kk[i]) {
				t.Fatalf("nearestK(%v,%d)[%d] distance mismatch: sorted %v (%v) vs kd %v (%v)",
					query, k, i, sk[i], query.Distance(sk[i]), kk[i], query.Distance(kk[i]))
			}
		}
	}
}

func assertSameMultiset(t *testing.T, label string, a, b []geometry.Point) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s: length mismatch: %d vs %d", label, len(a), len(b))
	}
	sa := append([]geometry.Point(nil), a...)
	sb := append([]geometry.Point(nil), b...)
	less := func(s []geometry.Point) func(i, j int) bool {
		return func(i, j int) bool { return s[i].Less(s[j]) }
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("%s: multiset mismatch at %d: %v vs %v", label, i, sa, sb)
		}
	}
}

// TestKdBoundingRectInvariant checks §8.9: every descendant's point lies
// within its ancestor's bounding rectangle.
func TestKdBoundingRectInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kd := NewKdPointSet()
	for i := 0; i < 300; i++ {
		kd.Put(geometry.Point{X: rng.Float64(), Y: rng.Float64()})
	}
	checkBoundingRect(t, kd.root)
}

func checkBoundingRect(t *testing.T, n *kdNode) {
	if n == nil {
		return
	}
	if !n.rect.Contains(n.point) {
		t.Fatalf("node %v not contained in its own rect %v", n.point, n.rect)
	}
	checkDescendants(t, n.left, n.rect)
	checkDescendants(t, n.right, n.rect)
	checkBoundingRect(t, n.left)
	checkBoundingRect(t, n.right)
}

func checkDescendants(t *testing.T, n *kdNode, ancestorRect geometry.Rect) {
	if n == nil {
		return
	}
	if !ancestorRect.Contains(n.point) {
		t.Fatalf("descendant %v not contained in ancestor rect %v", n.point, ancestorRect)
	}
	checkDescendants(t, n.left, ancestorRect)
	checkDescendants(t, n.right, ancestorRect)
}

// TestNearestKBoundaryK covers the k==0, k>=size, and k==0-on-empty edge
// cases named explicitly in the spec.
func TestNearestKBoundaryK(t *testing.T) {
	for name, set := range newBackends() {
		set.Put(geometry.Point{X: 0.1, Y: 0.1})
		set.Put(geometry.Point{X: 0.5, Y: 0.5})
		set.Put(geometry.Point{X: 0.9, Y: 0.9})

		if got := set.NearestK(geometry.Point{X: 0, Y: 0}, 0); len(got) != 0 {
			t.Errorf("[%s] NearestK(_, 0) = %v, want empty", name, got)
		}
		if got := set.NearestK(geometry.Point{X: 0, Y: 0}, 100); len(got) != 3 {
			t.Errorf("[%s] NearestK(_, k>=size) returned %d points, want 3", name, len(got))
		}
	}
}

// TestIteratorStability checks §8.8: a result slice is unaffected by
// further mutation of the set it was derived from.
func TestIteratorStability(t *testing.T) {
	for name, set := range newBackends() {
		set.Put(geometry.Point{X: 0.2, Y: 0.2})
		set.Put(geometry.Point{X: 0.4, Y: 0.4})
		set.Put(geometry.Point{X: 0.6, Y: 0.6})

		r := geometry.NewRect(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 1})
		snapshot := set.Range(r)
		snapshotCopy := append([]geometry.Point(nil), snapshot...)

		set.Put(geometry.Point{X: 0.9, Y: 0.9})
		set.Put(geometry.Point{X: 0.99, Y: 0.01})

		for i, p := range snapshot {
			if p != snapshotCopy[i] {
				t.Errorf("[%s] snapshot mutated after further Put calls: %v vs %v", name, snapshot, snapshotCopy)
			}
		}
	}
}

func TestString(t *testing.T) {
	for name, set := range newBackends() {
		if got, want := set.String(), "{}"; got != want {
			t.Errorf("[%s] String() on empty set = %q, want %q", name, got, want)
		}
	}

	set := NewSortedPointSet()
	set.Put(geometry.Point{X: 0, Y: 0})
	set.Put(geometry.Point{X: 1, Y: 1})
	if got, want := set.String(), "{(0, 0); (1, 1)}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
