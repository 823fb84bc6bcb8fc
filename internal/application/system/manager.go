package system

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/younwookim/horde/internal/domain/entity"
)

// ErrFrameFault wraps a panic recovered from inside the enemy pipeline
var ErrFrameFault = errors.New("frame fault")

// spawnAttempts bounds how many angles are tried to find a free spawn spot
const spawnAttempts = 8

// DropWeight is one row of the item drop table
type DropWeight struct {
	Kind   entity.ItemKind
	Weight float64
}

// ManagerConfig holds everything the enemy pipeline needs besides the world
type ManagerConfig struct {
	MapWidth, MapHeight float64 // pixels

	MaxDeltaTime    float64
	CullingDistance float64

	Difficulty  DifficultyModel
	ManualBoost float64

	MaxEnemies    int
	SpawnDistance float64
	CellSize      float64

	Steering     SteeringConfig
	PushStrength float64
	ContactPush  float64
	Workers      int

	PoolCapacity        int
	MaxProjectiles      int
	ProjectileMaxRange  float64
	PlayerProjectile    float64 // size of enemy-seeking projectiles
	EnemyProjectile     float64 // size of player-seeking projectiles
	EnemyProjectileAnim string

	ItemSize float64
	Drops    []DropWeight
}

// Stats is a snapshot of manager bookkeeping for overlays and logs
type Stats struct {
	Frame                int
	TimeElapsed          float64
	Enemies              int
	Items                int
	ActiveProjectiles    int
	IdleProjectiles      int
	AllocatedProjectiles int
	GridCells            int
	Spawned              int
	Killed               int
	ManualMultiplier     float64
}

// EnemyManager owns the horde: it spawns, moves, separates and removes
// enemies, drops items, and runs every active projectile.
type EnemyManager struct {
	cfg        ManagerConfig
	collider   entity.StaticCollider
	player     *entity.Player
	variants   *VariantTable
	rng        *rand.Rand
	logger     *log.Logger
	grid       *SpatialGrid
	steering   *SteeringController
	pool       *ProjectilePool
	separation *SeparationSolver

	enemies []*entity.Enemy
	items   []*entity.Item

	timeElapsed float64
	spawnTimer  float64
	manual      float64
	state       DifficultyState
	nextID      entity.EntityID
	frame       int
	spawned     int
	killed      int

	// scratch buffers reused across frames
	neighbors []*entity.Enemy
	acting    []*entity.Enemy
	expired   []*entity.Projectile
	dropRates []float64

	// OnEnemyRemoved is called once per removed enemy with the item it dropped
	OnEnemyRemoved func(e *entity.Enemy, drop *entity.Item)
}

// NewEnemyManager creates a manager for player inside a world bounded by
// cfg.MapWidth x cfg.MapHeight whose static geometry is collider
func NewEnemyManager(cfg ManagerConfig, collider entity.StaticCollider, player *entity.Player, variants *VariantTable, rng *rand.Rand) *EnemyManager {
	m := &EnemyManager{
		cfg:      cfg,
		collider: collider,
		player:   player,
		variants: variants,
		rng:      rng,
		logger:   log.Default(),
		grid:     NewSpatialGrid(cfg.CellSize),
		steering: NewSteeringController(cfg.Steering, collider),
		pool:     NewProjectilePool(cfg.PoolCapacity),
		manual:   1,
	}
	if cfg.Workers > 1 {
		m.separation = NewSeparationSolver(cfg.Workers, cfg.PushStrength, variants.MaxCollisionRadius())
	}
	m.dropRates = make([]float64, len(cfg.Drops))
	for i, d := range cfg.Drops {
		m.dropRates[i] = d.Weight
	}
	m.state = cfg.Difficulty.At(0, m.manual)
	return m
}

// SetLogger replaces the logger used for debug traces
func (m *EnemyManager) SetLogger(l *log.Logger) {
	m.logger = l
}

// Update runs one frame of the pipeline: difficulty, spawn, grid rebuild,
// enemy pass, removal, projectiles, removal. Per-frame faults are joined into
// the returned error; a panic is recovered and reported as ErrFrameFault.
func (m *EnemyManager) Update(frame Frame) (err error) {
	if frame.Paused {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, fmt.Errorf("%w: frame %d: %v", ErrFrameFault, m.frame, r))
		}
	}()

	m.frame++
	dt := clampDT(frame.DT, m.cfg.MaxDeltaTime)
	m.timeElapsed += dt
	m.spawnTimer += dt
	m.state = m.cfg.Difficulty.At(m.timeElapsed, m.manual)

	var faults []error
	if e, err := m.trySpawn(); err != nil {
		faults = append(faults, err)
	} else if e != nil && frame.Debug {
		m.logger.Printf("spawn %s #%d at (%.0f, %.0f) hp=%.1f", e.Variant, e.ID, e.Pos.X, e.Pos.Y, e.Health)
	}

	m.grid.Rebuild(m.enemies)
	if err := m.updateEnemies(dt); err != nil {
		faults = append(faults, err)
	}
	m.removeDead(frame.Debug)

	m.updateProjectiles(dt)
	m.removeDead(frame.Debug)

	return errors.Join(faults...)
}

// trySpawn spawns one enemy when the spawn interval has elapsed
func (m *EnemyManager) trySpawn() (*entity.Enemy, error) {
	interval, err := m.state.SpawnInterval()
	if err != nil {
		return nil, err
	}
	if m.spawnTimer < interval {
		return nil, nil
	}
	m.spawnTimer = 0
	if len(m.enemies) >= m.cfg.MaxEnemies {
		return nil, nil
	}
	return m.spawn(), nil
}

// spawn places a weighted variant at SpawnDistance from the player center,
// clamped into the map. A few angles are tried to avoid spawning inside walls.
func (m *EnemyManager) spawn() *entity.Enemy {
	v := m.variants.Pick(m.rng)
	w, h := v.Template.Width, v.Template.Height
	center := m.player.Center()

	var pos entity.Vec2
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		angle := m.rng.Float64() * 2 * math.Pi
		pos = entity.Vec2{
			X: clamp(center.X+math.Cos(angle)*m.cfg.SpawnDistance-w/2, 0, m.cfg.MapWidth-w),
			Y: clamp(center.Y+math.Sin(angle)*m.cfg.SpawnDistance-h/2, 0, m.cfg.MapHeight-h),
		}
		hitbox := v.Template.Hitbox.Translate(pos)
		if v.Template.Hitbox.W <= 0 || v.Template.Hitbox.H <= 0 {
			hitbox = entity.Rect{X: pos.X, Y: pos.Y, W: w, H: h}
		}
		if !m.collider.Collides(hitbox) {
			break
		}
	}

	e := v.Spawn(m.newID(), pos, m.state.HealthScale, m.state.DamageScale)
	m.enemies = append(m.enemies, e)
	m.spawned++
	return e
}

// updateEnemies runs behavior, separation and player contact for every
// enemy within the culling distance of the player
func (m *EnemyManager) updateEnemies(dt float64) error {
	ctx := &BehaviorContext{
		Steering: m.steering,
		Player:   m.player,
		DT:       dt,
		Fire:     m.fireAtPlayer,
	}
	playerCenter := m.player.Center()
	cullSq := m.cfg.CullingDistance * m.cfg.CullingDistance
	queryPad := m.variants.MaxCollisionRadius()

	m.acting = m.acting[:0]
	for _, e := range m.enemies {
		if e.Center().DistSq(playerCenter) > cullSq {
			continue
		}

		if behave := BehaviorFor(e.Behavior); behave != nil {
			behave(ctx, e)
		}

		if m.separation != nil {
			m.acting = append(m.acting, e)
		} else {
			m.neighbors = m.grid.QueryNearbyInto(m.neighbors[:0], e.Center(), e.CollisionRadius+queryPad)
			for _, o := range m.neighbors {
				if o != e {
					ResolvePair(e, o, m.cfg.PushStrength)
				}
			}
		}

		m.touchPlayer(e, dt)
	}

	if m.separation == nil || len(m.acting) == 0 {
		return nil
	}
	disp, err := m.separation.Solve(context.Background(), m.grid, m.acting)
	if err != nil {
		return fmt.Errorf("separation: %w", err)
	}
	for _, e := range m.enemies {
		if d, ok := disp[e]; ok {
			e.MoveBy(d)
		}
	}
	return nil
}

// touchPlayer applies contact damage scaled by dt and pushes the enemy off
func (m *EnemyManager) touchPlayer(e *entity.Enemy, dt float64) {
	if !e.Hitbox().Overlaps(m.player.Hitbox()) {
		return
	}
	m.player.TakeDamage(e.Damage * dt)

	away := e.Center().Sub(m.player.Center())
	if !away.IsZero() {
		e.MoveBy(away.Normalize().Scale(m.cfg.ContactPush))
	}
}

// removeDead excises every enemy with health <= 0 and drops one item at its
// center. Order of the survivors is preserved.
func (m *EnemyManager) removeDead(debug bool) {
	alive := m.enemies[:0]
	for _, e := range m.enemies {
		if e.IsAlive() {
			alive = append(alive, e)
			continue
		}
		drop := m.drop(e.Center())
		m.killed++
		if debug {
			m.logger.Printf("removed %s #%d, dropped %s", e.Variant, e.ID, drop.Kind)
		}
		if m.OnEnemyRemoved != nil {
			m.OnEnemyRemoved(e, drop)
		}
	}
	clear(m.enemies[len(alive):])
	m.enemies = alive
}

// drop spawns one weighted item at pos
func (m *EnemyManager) drop(pos entity.Vec2) *entity.Item {
	kind := entity.ItemGem
	if i := WeightedIndex(m.rng, m.dropRates); i >= 0 {
		kind = m.cfg.Drops[i].Kind
	}
	item := entity.NewItem(m.newID(), pos, kind, m.cfg.ItemSize)
	m.items = append(m.items, item)
	return item
}

// updateProjectiles advances every active projectile and releases the ones
// that hit their target, ran out of range, or left the map
func (m *EnemyManager) updateProjectiles(dt float64) {
	m.expired = m.expired[:0]
	for _, p := range m.pool.Active() {
		if m.stepProjectile(p, dt) {
			m.expired = append(m.expired, p)
		}
	}
	for _, p := range m.expired {
		m.pool.Release(p)
	}
	clear(m.expired)
}

// stepProjectile moves p and reports whether it should be destroyed
func (m *EnemyManager) stepProjectile(p *entity.Projectile, dt float64) bool {
	p.Advance(dt)
	rect := p.Rect()

	switch p.TargetType {
	case entity.TargetPlayer:
		if rect.Overlaps(m.player.Hitbox()) {
			m.player.TakeDamage(p.Damage)
			return true
		}
	case entity.TargetEnemy:
		// Enemies moved since the grid was built; the extra ring covers it
		m.neighbors = m.grid.QueryNearbyInto(m.neighbors[:0], p.Pos, p.Size)
		for _, e := range m.neighbors {
			if e.IsAlive() && rect.Overlaps(e.Hitbox()) {
				e.TakeDamage(p.Damage)
				return true
			}
		}
	}

	if p.OutOfRange() {
		return true
	}
	return p.Pos.X < 0 || p.Pos.Y < 0 || p.Pos.X > m.cfg.MapWidth || p.Pos.Y > m.cfg.MapHeight
}

// fireAtPlayer launches an enemy projectile, filling size, range and look
func (m *EnemyManager) fireAtPlayer(spec entity.ProjectileSpec) bool {
	_, ok := m.Fire(spec)
	return ok
}

// Fire launches a projectile through the pool. Size, range and animation
// default from the config by target type. Returns false when the active
// projectile cap is reached.
func (m *EnemyManager) Fire(spec entity.ProjectileSpec) (*entity.Projectile, bool) {
	if m.cfg.MaxProjectiles > 0 && m.pool.ActiveCount() >= m.cfg.MaxProjectiles {
		return nil, false
	}
	if spec.MaxRange == 0 {
		spec.MaxRange = m.cfg.ProjectileMaxRange
	}
	if spec.Size == 0 {
		if spec.TargetType == entity.TargetPlayer {
			spec.Size = m.cfg.EnemyProjectile
		} else {
			spec.Size = m.cfg.PlayerProjectile
		}
	}
	if spec.Animation == "" && spec.TargetType == entity.TargetPlayer {
		spec.Animation = m.cfg.EnemyProjectileAnim
	}
	return m.pool.Acquire(spec), true
}

// NearestEnemy returns the live enemy whose center is closest to pos and
// strictly within radius, or nil
func (m *EnemyManager) NearestEnemy(pos entity.Vec2, radius float64) *entity.Enemy {
	var best *entity.Enemy
	bestSq := radius * radius
	for _, e := range m.enemies {
		if !e.IsAlive() {
			continue
		}
		if d := e.Center().DistSq(pos); d < bestSq {
			best, bestSq = e, d
		}
	}
	return best
}

// CollectItems removes and returns every item whose rect overlaps hitbox
func (m *EnemyManager) CollectItems(hitbox entity.Rect) []*entity.Item {
	var taken []*entity.Item
	kept := m.items[:0]
	for _, it := range m.items {
		if it.Rect().Overlaps(hitbox) {
			taken = append(taken, it)
			continue
		}
		kept = append(kept, it)
	}
	clear(m.items[len(kept):])
	m.items = kept
	return taken
}

// DamageEnemy applies damage to e. Removal happens in the next sweep.
func (m *EnemyManager) DamageEnemy(e *entity.Enemy, amount float64) bool {
	return e.TakeDamage(amount)
}

// BoostSpawnRate adds delta to the manual spawn multiplier. A zero delta
// uses the configured boost.
func (m *EnemyManager) BoostSpawnRate(delta float64) {
	if delta == 0 {
		delta = m.cfg.ManualBoost
	}
	m.manual += delta
	m.state = m.cfg.Difficulty.At(m.timeElapsed, m.manual)
}

// AddEnemy inserts e into the live collection, assigning an id if it has none
func (m *EnemyManager) AddEnemy(e *entity.Enemy) {
	if e.ID == 0 {
		e.ID = m.newID()
	}
	m.enemies = append(m.enemies, e)
}

// Reset drops every enemy, item and projectile and restarts the clock
func (m *EnemyManager) Reset() {
	clear(m.enemies)
	m.enemies = m.enemies[:0]
	clear(m.items)
	m.items = m.items[:0]
	m.pool.Reset()
	m.grid.Rebuild(nil)
	m.timeElapsed = 0
	m.spawnTimer = 0
	m.manual = 1
	m.frame = 0
	m.nextID = 0
	m.spawned = 0
	m.killed = 0
	m.state = m.cfg.Difficulty.At(0, m.manual)
}

// Enemies returns the live enemies in spawn order
func (m *EnemyManager) Enemies() []*entity.Enemy {
	return m.enemies
}

// Items returns the items waiting to be collected
func (m *EnemyManager) Items() []*entity.Item {
	return m.items
}

// Projectiles returns the active projectiles
func (m *EnemyManager) Projectiles() []*entity.Projectile {
	return m.pool.Active()
}

// Pool returns the projectile pool
func (m *EnemyManager) Pool() *ProjectilePool {
	return m.pool
}

// Grid returns the spatial grid as built during the last update
func (m *EnemyManager) Grid() *SpatialGrid {
	return m.grid
}

// State returns the difficulty state of the last update
func (m *EnemyManager) State() DifficultyState {
	return m.state
}

// Diagnostics returns the current difficulty record
func (m *EnemyManager) Diagnostics() Diagnostics {
	return m.state.Diagnostics()
}

// ClampDT bounds dt the same way Update does
func (m *EnemyManager) ClampDT(dt float64) float64 {
	return clampDT(dt, m.cfg.MaxDeltaTime)
}

// Stats returns bookkeeping counters
func (m *EnemyManager) Stats() Stats {
	return Stats{
		Frame:                m.frame,
		TimeElapsed:          m.timeElapsed,
		Enemies:              len(m.enemies),
		Items:                len(m.items),
		ActiveProjectiles:    m.pool.ActiveCount(),
		IdleProjectiles:      m.pool.InactiveCount(),
		AllocatedProjectiles: m.pool.Allocated(),
		GridCells:            m.grid.CellCount(),
		Spawned:              m.spawned,
		Killed:               m.killed,
		ManualMultiplier:     m.manual,
	}
}

func (m *EnemyManager) newID() entity.EntityID {
	m.nextID++
	return m.nextID
}

// clamp bounds v to [lo, hi]; an empty range collapses to lo
func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
