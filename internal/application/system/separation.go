package system

import (
	"context"
	"math"

	"github.com/younwookim/horde/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

// ResolvePair pushes a and b apart along the line between their centers when
// their collision circles overlap. Coincident centers are left untouched.
// Returns true if a push was applied.
func ResolvePair(a, b *entity.Enemy, push float64) bool {
	n, ok := pairPush(a, b, push)
	if !ok {
		return false
	}
	a.MoveBy(n)
	b.MoveBy(n.Neg())
	return true
}

// pairPush returns the displacement applied to a (b gets the negation)
func pairPush(a, b *entity.Enemy, push float64) (entity.Vec2, bool) {
	d := a.Center().Sub(b.Center())
	distSq := d.LenSq()
	r := a.CollisionRadius + b.CollisionRadius
	if distSq == 0 || distSq >= r*r {
		return entity.Vec2{}, false
	}
	return d.Scale(push / math.Sqrt(distSq)), true
}

// SeparationSolver computes enemy-enemy pushes on worker goroutines. Acting
// enemies are sharded by grid cell; workers only read positions and the grid
// and accumulate displacements privately. Nothing is moved until the caller
// applies the returned displacements.
type SeparationSolver struct {
	workers   int
	push      float64
	maxRadius float64
}

// NewSeparationSolver creates a solver using up to workers goroutines.
// maxRadius is the largest collision radius any enemy can have.
func NewSeparationSolver(workers int, push, maxRadius float64) *SeparationSolver {
	if workers < 1 {
		workers = 1
	}
	return &SeparationSolver{workers: workers, push: push, maxRadius: maxRadius}
}

// Workers returns the goroutine limit
func (s *SeparationSolver) Workers() int {
	return s.workers
}

// Solve returns the summed displacement of every enemy touched by a push
// from an acting enemy. Each acting enemy resolves against its neighbors the
// same way the inline pass does, so a pair of acting enemies is pushed twice.
func (s *SeparationSolver) Solve(ctx context.Context, grid *SpatialGrid, acting []*entity.Enemy) (map[*entity.Enemy]entity.Vec2, error) {
	shards := s.shard(grid, acting)
	partial := make([]map[*entity.Enemy]entity.Vec2, len(shards))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, shard := range shards {
		g.Go(func() error {
			out := make(map[*entity.Enemy]entity.Vec2)
			var buf []*entity.Enemy
			for _, e := range shard {
				if err := ctx.Err(); err != nil {
					return err
				}
				buf = grid.QueryNearbyInto(buf[:0], e.Center(), e.CollisionRadius+s.maxRadius)
				for _, o := range buf {
					if o == e {
						continue
					}
					if n, ok := pairPush(e, o, s.push); ok {
						out[e] = out[e].Add(n)
						out[o] = out[o].Sub(n)
					}
				}
			}
			partial[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sum per enemy in shard order so results do not depend on scheduling
	total := make(map[*entity.Enemy]entity.Vec2)
	for _, out := range partial {
		for e, d := range out {
			total[e] = total[e].Add(d)
		}
	}
	return total, nil
}

// shard groups acting enemies by cell and deals the cells round-robin
func (s *SeparationSolver) shard(grid *SpatialGrid, acting []*entity.Enemy) [][]*entity.Enemy {
	byCell := make(map[Cell][]*entity.Enemy)
	var order []Cell
	for _, e := range acting {
		c := grid.CellOf(e.Center())
		if _, seen := byCell[c]; !seen {
			order = append(order, c)
		}
		byCell[c] = append(byCell[c], e)
	}

	n := min(s.workers, len(order))
	shards := make([][]*entity.Enemy, n)
	for i, c := range order {
		shards[i%n] = append(shards[i%n], byCell[c]...)
	}
	return shards
}
