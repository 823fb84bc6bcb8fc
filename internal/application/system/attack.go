package system

import "github.com/younwookim/horde/internal/domain/entity"

// AutoAttack fires an enemy-seeking projectile at the nearest enemy in range
// every Cooldown seconds
type AutoAttack struct {
	Cooldown        float64
	Damage          float64
	Speed           float64
	DetectionRadius float64
	Animation       string

	timer float64
}

// Update ticks the cooldown and fires when ready. Returns the projectile
// fired this frame, if any.
func (a *AutoAttack) Update(dt float64, player *entity.Player, m *EnemyManager) *entity.Projectile {
	if a.timer > 0 {
		a.timer -= dt
		if a.timer > 0 {
			return nil
		}
	}

	origin := player.Center()
	target := m.NearestEnemy(origin, a.DetectionRadius)
	if target == nil {
		return nil
	}

	p, ok := m.Fire(entity.ProjectileSpec{
		Origin:     origin,
		Target:     target.Center(),
		Speed:      a.Speed,
		Damage:     a.Damage,
		TargetType: entity.TargetEnemy,
		Animation:  a.Animation,
	})
	if !ok {
		return nil
	}
	a.timer = a.Cooldown
	return p
}

// Ready reports whether the next Update may fire
func (a *AutoAttack) Ready() bool {
	return a.timer <= 0
}

// Reset clears the cooldown
func (a *AutoAttack) Reset() {
	a.timer = 0
}
