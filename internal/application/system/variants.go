package system

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/younwookim/horde/internal/domain/entity"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

// BehaviorContext is what a behavior may see and do during one enemy's turn
type BehaviorContext struct {
	Steering *SteeringController
	Player   *entity.Player
	DT       float64
	// Fire launches a projectile; false when the active cap is reached
	Fire func(spec entity.ProjectileSpec) bool
}

// BehaviorFunc moves an enemy and performs its attack for one frame
type BehaviorFunc func(ctx *BehaviorContext, e *entity.Enemy)

var behaviors = map[entity.Behavior]BehaviorFunc{
	entity.BehaviorChase:  chase,
	entity.BehaviorRanged: kite,
}

// BehaviorFor returns the behavior bound to tag, or nil
func BehaviorFor(tag entity.Behavior) BehaviorFunc {
	return behaviors[tag]
}

// chase seeks the player
func chase(ctx *BehaviorContext, e *entity.Enemy) {
	target := ctx.Player.Center().Sub(e.Center()).Normalize()
	ctx.Steering.Steer(e, target, ctx.DT)
}

// kite flees inside the escape radius and shoots when the player is in range
func kite(ctx *BehaviorContext, e *entity.Enemy) {
	toPlayer := ctx.Player.Center().Sub(e.Center())
	dist := toPlayer.Len()

	var target entity.Vec2
	if dist < e.EscapeRadius {
		target = toPlayer.Normalize().Neg()
	}
	ctx.Steering.Steer(e, target, ctx.DT)

	e.AttackTimer -= ctx.DT
	if e.AttackTimer > 0 || dist >= e.DetectionRadius || ctx.Fire == nil {
		return
	}
	ctx.Fire(entity.ProjectileSpec{
		Origin:     e.Center(),
		Target:     ctx.Player.Center(),
		Speed:      e.ProjectileSpeed,
		Damage:     e.Damage,
		TargetType: entity.TargetPlayer,
	})
	e.AttackTimer = e.AttackCooldown
}

// Template holds the unscaled stats an enemy variant spawns with
type Template struct {
	Width, Height   float64
	Hitbox          entity.Rect // relative to the top-left corner
	Speed           float64
	Health          float64
	Damage          float64
	CollisionRadius float64
	DetectionRadius float64
	EscapeRadius    float64
	AttackCooldown  float64
	ProjectileSpeed float64
	StuckProbe      bool
}

// Variant binds a stat template and a behavior to a variant id
type Variant struct {
	ID       entity.VariantID
	Weight   float64
	Behavior entity.Behavior
	Template Template
}

// VariantTable is the set of spawnable enemy variants, ordered by id
type VariantTable struct {
	variants  []Variant
	weights   []float64
	byID      map[entity.VariantID]int
	maxRadius float64
}

// NewVariantTable builds a table from variants. Order is by id so weighted
// draws are reproducible from a seed.
func NewVariantTable(variants ...Variant) (*VariantTable, error) {
	if len(variants) == 0 {
		return nil, errors.New("no enemy variants")
	}
	sorted := append([]Variant(nil), variants...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	t := &VariantTable{
		variants: sorted,
		weights:  make([]float64, len(sorted)),
		byID:     make(map[entity.VariantID]int, len(sorted)),
	}
	total := 0.0
	for i, v := range sorted {
		if _, dup := t.byID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate variant %s", v.ID)
		}
		if BehaviorFor(v.Behavior) == nil {
			return nil, fmt.Errorf("variant %s: no behavior for %s", v.ID, v.Behavior)
		}
		t.byID[v.ID] = i
		t.weights[i] = v.Weight
		total += math.Max(v.Weight, 0)
		t.maxRadius = math.Max(t.maxRadius, v.Template.CollisionRadius)
	}
	if total <= 0 {
		return nil, errors.New("variant weights sum to zero")
	}
	return t, nil
}

// VariantsFromConfig converts the variants section of sim.json
func VariantsFromConfig(cfgs map[string]config.VariantConfig) (*VariantTable, error) {
	variants := make([]Variant, 0, len(cfgs))
	for name, vc := range cfgs {
		behavior, ok := entity.ParseBehavior(vc.Behavior)
		if !ok {
			return nil, fmt.Errorf("variant %s: unknown behavior %q", name, vc.Behavior)
		}
		variants = append(variants, Variant{
			ID:       entity.VariantID(name),
			Weight:   vc.Weight,
			Behavior: behavior,
			Template: Template{
				Width:  vc.Width,
				Height: vc.Height,
				Hitbox: entity.Rect{
					X: vc.Hitbox.OffsetX,
					Y: vc.Hitbox.OffsetY,
					W: vc.Hitbox.Width,
					H: vc.Hitbox.Height,
				},
				Speed:           vc.Speed,
				Health:          vc.Health,
				Damage:          vc.Damage,
				CollisionRadius: CollisionRadiusFor(vc.Width, vc.Height),
				DetectionRadius: vc.DetectionRadius,
				EscapeRadius:    vc.EscapeRadius,
				AttackCooldown:  vc.AttackCooldown,
				ProjectileSpeed: vc.ProjectileSpeed,
				StuckProbe:      vc.StuckProbe,
			},
		})
	}
	return NewVariantTable(variants...)
}

// CollisionRadiusFor returns the separation radius of a sprite of the given size
func CollisionRadiusFor(width, height float64) float64 {
	return math.Max(width, height) * 0.4
}

// Pick draws a variant by weight
func (t *VariantTable) Pick(rng *rand.Rand) Variant {
	i := WeightedIndex(rng, t.weights)
	if i < 0 {
		i = 0
	}
	return t.variants[i]
}

// Get looks up a variant by id
func (t *VariantTable) Get(id entity.VariantID) (Variant, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Variant{}, false
	}
	return t.variants[i], true
}

// Variants returns the variants ordered by id
func (t *VariantTable) Variants() []Variant {
	return t.variants
}

// MaxCollisionRadius returns the largest collision radius of any variant
func (t *VariantTable) MaxCollisionRadius() float64 {
	return t.maxRadius
}

// Spawn creates an enemy of v at top-left pos with health and damage scaled
func (v Variant) Spawn(id entity.EntityID, pos entity.Vec2, healthScale, damageScale float64) *entity.Enemy {
	tpl := v.Template
	health := tpl.Health * healthScale
	return &entity.Enemy{
		ID:              id,
		Pos:             pos,
		Width:           tpl.Width,
		Height:          tpl.Height,
		Variant:         v.ID,
		Behavior:        v.Behavior,
		HitboxOffsetX:   tpl.Hitbox.X,
		HitboxOffsetY:   tpl.Hitbox.Y,
		HitboxWidth:     tpl.Hitbox.W,
		HitboxHeight:    tpl.Hitbox.H,
		Health:          health,
		MaxHealth:       health,
		Damage:          tpl.Damage * damageScale,
		Speed:           tpl.Speed,
		CollisionRadius: tpl.CollisionRadius,
		DetectionRadius: tpl.DetectionRadius,
		AttackCooldown:  tpl.AttackCooldown,
		EscapeRadius:    tpl.EscapeRadius,
		ProjectileSpeed: tpl.ProjectileSpeed,
		StuckProbe:      tpl.StuckProbe,
	}
}
