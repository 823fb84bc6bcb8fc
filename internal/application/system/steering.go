package system

import (
	"math"

	"github.com/younwookim/horde/internal/domain/entity"
)

// SteeringConfig tunes obstacle avoidance
type SteeringConfig struct {
	AvoidForce  float64 // magnitude of the avoidance vector before blending
	RayStep     float64 // distance between ray samples
	ProbeSize   float64 // edge of the box sampled at each step
	StuckFactor float64 // fraction of speed tried by the stuck probe
}

// DefaultSteeringConfig returns the stock avoidance tuning
func DefaultSteeringConfig() SteeringConfig {
	return SteeringConfig{
		AvoidForce:  0.5,
		RayStep:     8,
		ProbeSize:   8,
		StuckFactor: 0.1,
	}
}

var diag = 1 / math.Sqrt2

// rayDirections are the eight compass directions, unit length
var rayDirections = [8]entity.Vec2{
	{X: 0, Y: -1},
	{X: diag, Y: -diag},
	{X: 1, Y: 0},
	{X: diag, Y: diag},
	{X: 0, Y: 1},
	{X: -diag, Y: diag},
	{X: -1, Y: 0},
	{X: -diag, Y: -diag},
}

var cardinals = [4]entity.Vec2{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// SteeringController blends a target direction with ray-cast obstacle
// avoidance and integrates enemy movement against static geometry.
type SteeringController struct {
	cfg      SteeringConfig
	collider entity.StaticCollider
}

// NewSteeringController creates a controller over collider
func NewSteeringController(cfg SteeringConfig, collider entity.StaticCollider) *SteeringController {
	def := DefaultSteeringConfig()
	if cfg.RayStep <= 0 {
		cfg.RayStep = def.RayStep
	}
	if cfg.ProbeSize <= 0 {
		cfg.ProbeSize = def.ProbeSize
	}
	if cfg.StuckFactor <= 0 {
		cfg.StuckFactor = def.StuckFactor
	}
	return &SteeringController{cfg: cfg, collider: collider}
}

// Avoidance casts the eight rays from center out to radius and returns the
// normalized avoidance vector scaled by AvoidForce, or zero if no ray hits.
// Closer hits weigh more: a hit at distance d contributes (radius-d)/radius.
func (s *SteeringController) Avoidance(center entity.Vec2, radius float64) entity.Vec2 {
	var avoid entity.Vec2
	if radius <= 0 {
		return avoid
	}

	for _, dir := range rayDirections {
		for d := 0.0; d < radius; d += s.cfg.RayStep {
			probe := entity.RectAround(center.Add(dir.Scale(d)), s.cfg.ProbeSize, s.cfg.ProbeSize)
			if s.collider.Collides(probe) {
				avoid = avoid.Sub(dir.Scale((radius - d) / radius))
				break
			}
		}
	}

	if avoid.IsZero() {
		return avoid
	}
	return avoid.Normalize().Scale(s.cfg.AvoidForce)
}

// Steer moves e along target blended with obstacle avoidance for dt seconds.
// target is a unit vector or zero. A move whose hitbox hits static geometry is
// reverted; stuck-probe enemies then try a short cardinal nudge. Returns true
// if the enemy's position changed.
func (s *SteeringController) Steer(e *entity.Enemy, target entity.Vec2, dt float64) bool {
	avoid := s.Avoidance(e.Center(), e.DetectionRadius)
	steer := target.Add(avoid).Normalize()
	if steer.IsZero() || e.Speed <= 0 || dt <= 0 {
		return false
	}

	old := e.Pos
	e.MoveTo(old.Add(steer.Scale(e.Speed * dt)))
	if !s.collider.Collides(e.Hitbox()) {
		return true
	}

	e.MoveTo(old)
	if e.StuckProbe {
		return s.unstick(e)
	}
	return false
}

// unstick tries the four cardinals and keeps the first free position
func (s *SteeringController) unstick(e *entity.Enemy) bool {
	step := e.Speed * s.cfg.StuckFactor
	for _, dir := range cardinals {
		candidate := e.Pos.Add(dir.Scale(step))
		if !s.collider.Collides(e.HitboxAt(candidate)) {
			e.MoveTo(candidate)
			return true
		}
	}
	return false
}
