package system

import "github.com/younwookim/horde/internal/domain/entity"

// Collector applies the effect of items the player walks over
type Collector struct {
	HealFraction float64 // share of max health restored by a healing item
}

// Update collects every item touching the player. Returns the number of
// items collected and whether the player levelled up.
func (c Collector) Update(player *entity.Player, m *EnemyManager) (collected int, levelled bool) {
	for _, item := range m.CollectItems(player.Hitbox()) {
		collected++
		switch item.Kind {
		case entity.ItemGem:
			player.Score++
			if player.GainExp(1) {
				levelled = true
			}
		case entity.ItemTuna:
			player.Heal(player.MaxHealth * c.HealFraction)
		}
	}
	return collected, levelled
}
