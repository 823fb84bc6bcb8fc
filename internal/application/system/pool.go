package system

import "github.com/younwookim/horde/internal/domain/entity"

// ProjectilePool recycles projectiles between an active and an inactive set.
// The two sets are always disjoint; at most capacity projectiles are retained
// while inactive and the rest are dropped on release.
type ProjectilePool struct {
	capacity  int
	active    []*entity.Projectile
	inactive  []*entity.Projectile
	slot      map[*entity.Projectile]int // index into active
	allocated int
}

// NewProjectilePool creates a pool retaining up to capacity idle projectiles
func NewProjectilePool(capacity int) *ProjectilePool {
	if capacity < 0 {
		capacity = 0
	}
	return &ProjectilePool{
		capacity: capacity,
		active:   make([]*entity.Projectile, 0, capacity),
		inactive: make([]*entity.Projectile, 0, capacity),
		slot:     make(map[*entity.Projectile]int, capacity),
	}
}

// Acquire returns a projectile initialized from spec and marks it active.
// Idle projectiles are reused before new ones are allocated.
func (p *ProjectilePool) Acquire(spec entity.ProjectileSpec) *entity.Projectile {
	var proj *entity.Projectile
	if n := len(p.inactive); n > 0 {
		proj = p.inactive[n-1]
		p.inactive[n-1] = nil
		p.inactive = p.inactive[:n-1]
		proj.Reset(spec)
	} else {
		proj = entity.NewProjectile(spec)
		p.allocated++
	}

	p.slot[proj] = len(p.active)
	p.active = append(p.active, proj)
	return proj
}

// Release moves proj from active to inactive. Releasing a projectile that is
// not active is a no-op. Returns true if proj was active.
func (p *ProjectilePool) Release(proj *entity.Projectile) bool {
	i, ok := p.slot[proj]
	if !ok {
		return false
	}

	last := len(p.active) - 1
	if i != last {
		moved := p.active[last]
		p.active[i] = moved
		p.slot[moved] = i
	}
	p.active[last] = nil
	p.active = p.active[:last]
	delete(p.slot, proj)

	if len(p.inactive) < p.capacity {
		p.inactive = append(p.inactive, proj)
	}
	return true
}

// Active returns the active projectiles. The slice is owned by the pool and
// is reordered by Release.
func (p *ProjectilePool) Active() []*entity.Projectile {
	return p.active
}

// IsActive reports whether proj is currently active
func (p *ProjectilePool) IsActive(proj *entity.Projectile) bool {
	_, ok := p.slot[proj]
	return ok
}

// ActiveCount returns the number of active projectiles
func (p *ProjectilePool) ActiveCount() int {
	return len(p.active)
}

// InactiveCount returns the number of idle projectiles retained for reuse
func (p *ProjectilePool) InactiveCount() int {
	return len(p.inactive)
}

// Allocated returns how many projectiles the pool has ever constructed
func (p *ProjectilePool) Allocated() int {
	return p.allocated
}

// Capacity returns the idle retention limit
func (p *ProjectilePool) Capacity() int {
	return p.capacity
}

// Reset releases every active projectile
func (p *ProjectilePool) Reset() {
	for len(p.active) > 0 {
		p.Release(p.active[len(p.active)-1])
	}
}
