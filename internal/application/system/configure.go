package system

import (
	"fmt"

	"github.com/younwookim/horde/internal/domain/entity"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

// ManagerConfigFromSim builds the enemy pipeline config for a world of
// width x height pixels
func ManagerConfigFromSim(cfg *config.SimConfig, width, height float64) (ManagerConfig, error) {
	drops := make([]DropWeight, 0, len(cfg.Drops.Table))
	for _, d := range cfg.Drops.Table {
		kind, ok := entity.ParseItemKind(d.Kind)
		if !ok {
			return ManagerConfig{}, fmt.Errorf("%w: unknown drop kind %q", config.ErrInvalidConfig, d.Kind)
		}
		drops = append(drops, DropWeight{Kind: kind, Weight: d.Weight})
	}

	return ManagerConfig{
		MapWidth:        width,
		MapHeight:       height,
		MaxDeltaTime:    cfg.Simulation.MaxDeltaTime,
		CullingDistance: cfg.Simulation.CullingDistance,
		Difficulty: DifficultyModel{
			BaseSpawnRate: cfg.Difficulty.BaseSpawnRate,
			SpawnGrowth:   cfg.Difficulty.SpawnGrowth,
			HealthGrowth:  cfg.Difficulty.HealthGrowth,
			DamageGrowth:  cfg.Difficulty.DamageGrowth,
		},
		ManualBoost:   cfg.Difficulty.ManualBoost,
		MaxEnemies:    cfg.Spawn.MaxEnemies,
		SpawnDistance: cfg.Spawn.Distance,
		CellSize:      cfg.Grid.CellSize,
		Steering: SteeringConfig{
			AvoidForce:  cfg.Steering.AvoidForce,
			RayStep:     cfg.Steering.RayStep,
			ProbeSize:   cfg.Steering.ProbeSize,
			StuckFactor: cfg.Steering.StuckFactor,
		},
		PushStrength:        cfg.Collision.PushStrength,
		ContactPush:         cfg.Collision.ContactPush,
		Workers:             cfg.Collision.Workers,
		PoolCapacity:        cfg.Projectiles.PoolCapacity,
		MaxProjectiles:      cfg.Projectiles.MaxActive,
		ProjectileMaxRange:  cfg.Projectiles.MaxRange,
		PlayerProjectile:    cfg.Projectiles.PlayerSize,
		EnemyProjectile:     cfg.Projectiles.EnemySize,
		EnemyProjectileAnim: cfg.Projectiles.EnemyAnim,
		ItemSize:            cfg.Drops.ItemSize,
		Drops:               drops,
	}, nil
}

// AutoAttackFromSim builds the player's auto attack
func AutoAttackFromSim(cfg *config.SimConfig) *AutoAttack {
	return &AutoAttack{
		Cooldown:        cfg.Attack.Cooldown,
		Damage:          cfg.Attack.Damage,
		Speed:           cfg.Attack.Speed,
		DetectionRadius: cfg.Attack.DetectionRadius,
		Animation:       cfg.Attack.Animation,
	}
}
