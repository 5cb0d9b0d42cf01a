package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jblindsay/pointidx/geometry"
	"github.com/jblindsay/pointidx/pointset"
)

var (
	benchWorkers    int
	benchIterations int
	benchSeed       int64
)

// benchCmd is the executable demonstration of §5's concurrency contract:
// many goroutines issue read-only queries (Range, Nearest, NearestK) against
// one already-built, never-again-mutated PointSet, each one checked against
// a serially-computed SortedPointSet oracle answer. It fires its workers
// with golang.org/x/sync/errgroup, the same fan-out-and-collect shape
// niklasfasching/x's ops.Flush uses for its own worker pool.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Fire concurrent read-only queries at a shared point set and check them against the oracle",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSet()
		if err != nil {
			return err
		}
		oracle := pointset.NewSortedPointSet()
		for _, p := range set.Points() {
			oracle.Put(p)
		}

		start := time.Now()
		g := new(errgroup.Group)
		for w := 0; w < benchWorkers; w++ {
			w := w
			g.Go(func() error {
				return runBenchWorker(w, set, oracle)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"workers":    benchWorkers,
			"iterations": benchIterations,
			"duration":   time.Since(start),
		}).Info("bench complete, no disagreement with oracle")
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 8, "number of concurrent reader goroutines")
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 200, "queries issued per worker")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "seed for the query-point generator")
}

func runBenchWorker(id int, set, oracle pointset.PointSet) error {
	rng := rand.New(rand.NewSource(benchSeed + int64(id)))
	for i := 0; i < benchIterations; i++ {
		q := geometry.Point{X: rng.Float64(), Y: rng.Float64()}
		switch i % 3 {
		case 0:
			got, gotOK := set.Nearest(q)
			want, wantOK := oracle.Nearest(q)
			if gotOK != wantOK {
				return fmt.Errorf("worker %d: nearest(%v) presence mismatch: got %v want %v", id, q, gotOK, wantOK)
			}
			if gotOK && q.Distance(got) != q.Distance(want) {
				return fmt.Errorf("worker %d: nearest(%v) distance mismatch: got %v (%v) want %v (%v)",
					id, q, got, q.Distance(got), want, q.Distance(want))
			}
		case 1:
			k := 1 + i%5
			got := set.NearestK(q, k)
			want := oracle.NearestK(q, k)
			if len(got) != len(want) {
				return fmt.Errorf("worker %d: nearestK(%v,%d) count mismatch: got %d want %d", id, q, k, len(got), len(want))
			}
			for j := range got {
				if q.Distance(got[j]) != q.Distance(want[j]) {
					return fmt.Errorf("worker %d: nearestK(%v,%d)[%d] distance mismatch", id, q, k, j)
				}
			}
		default:
			r := geometry.NewRect(q, geometry.Point{X: q.X + 0.1, Y: q.Y + 0.1})
			got := set.Range(r)
			want := oracle.Range(r)
			if len(got) != len(want) {
				return fmt.Errorf("worker %d: range(%v) count mismatch: got %d want %d", id, r, len(got), len(want))
			}
		}
	}
	return nil
}
