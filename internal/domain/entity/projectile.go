package entity

// TargetType selects what a projectile can hit
type TargetType int

const (
	// TargetEnemy projectiles are fired by the player and hit enemies
	TargetEnemy TargetType = iota
	// TargetPlayer projectiles are fired by enemies and hit the player
	TargetPlayer
)

// String returns a readable name for the target type
func (t TargetType) String() string {
	switch t {
	case TargetEnemy:
		return "enemy"
	case TargetPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ProjectileSpec is everything needed to (re)initialize a projectile
type ProjectileSpec struct {
	Origin     Vec2 // spawn center
	Target     Vec2 // aim point
	Speed      float64
	Damage     float64
	TargetType TargetType
	Size       float64
	MaxRange   float64
	Animation  string
}

// Projectile is a short-lived, pooled projectile
type Projectile struct {
	Pos        Vec2 // center
	Vel        Vec2
	Origin     Vec2
	Damage     float64
	TargetType TargetType
	Size       float64
	MaxRange   float64

	// Visual state (owned by the renderer, reset on reuse)
	Animation string
	Frame     int
	AnimTime  float64
}

// NewProjectile creates a projectile from spec
func NewProjectile(spec ProjectileSpec) *Projectile {
	p := &Projectile{}
	p.Reset(spec)
	return p
}

// Reset overwrites the full projectile state with spec
func (p *Projectile) Reset(spec ProjectileSpec) {
	dir := spec.Target.Sub(spec.Origin)
	if dir.LenSq() > 0 {
		dir = dir.Normalize()
	} else {
		// No aim: fire to the right
		dir = Vec2{X: 1}
	}

	p.Pos = spec.Origin
	p.Vel = dir.Scale(spec.Speed)
	p.Origin = spec.Origin
	p.Damage = spec.Damage
	p.TargetType = spec.TargetType
	p.Size = spec.Size
	p.MaxRange = spec.MaxRange
	p.Animation = spec.Animation
	p.Frame = 0
	p.AnimTime = 0
}

// Advance integrates position by dt
func (p *Projectile) Advance(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.AnimTime += dt
}

// Rect returns the projectile's bounding rect
func (p *Projectile) Rect() Rect {
	return RectAround(p.Pos, p.Size, p.Size)
}

// DistanceFromOrigin returns the Euclidean distance travelled from the origin
func (p *Projectile) DistanceFromOrigin() float64 {
	return p.Pos.Dist(p.Origin)
}

// OutOfRange reports whether the projectile has exceeded its max range
func (p *Projectile) OutOfRange() bool {
	return p.MaxRange > 0 && p.DistanceFromOrigin() > p.MaxRange
}
