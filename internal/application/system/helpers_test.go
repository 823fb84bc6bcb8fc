package system

import (
	"math/rand"

	"github.com/younwookim/horde/internal/domain/entity"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

// openWorld is a collider with no static geometry
var openWorld = entity.CollideFunc(func(entity.Rect) bool { return false })

func createTestVariants() *VariantTable {
	t, err := NewVariantTable(
		Variant{
			ID:       "slime",
			Weight:   0.9,
			Behavior: entity.BehaviorChase,
			Template: Template{
				Width: 32, Height: 32,
				Hitbox:          entity.Rect{X: 4, Y: 8, W: 24, H: 20},
				Speed:           55,
				Health:          10,
				Damage:          40,
				CollisionRadius: CollisionRadiusFor(32, 32),
				DetectionRadius: 100,
			},
		},
		Variant{
			ID:       "ranged",
			Weight:   0.1,
			Behavior: entity.BehaviorRanged,
			Template: Template{
				Width: 32, Height: 32,
				Hitbox:          entity.Rect{X: 6, Y: 6, W: 20, H: 22},
				Speed:           50,
				Health:          30,
				Damage:          10,
				CollisionRadius: CollisionRadiusFor(32, 32),
				DetectionRadius: 300,
				EscapeRadius:    80,
				AttackCooldown:  2,
				ProjectileSpeed: 150,
				StuckProbe:      true,
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

func createTestManagerConfig() ManagerConfig {
	return ManagerConfig{
		MapWidth:        2000,
		MapHeight:       2000,
		MaxDeltaTime:    0.1,
		CullingDistance: 600,
		Difficulty: DifficultyModel{
			BaseSpawnRate: 1,
			SpawnGrowth:   0.01,
			HealthGrowth:  0.05,
			DamageGrowth:  0.02,
		},
		ManualBoost:         3,
		MaxEnemies:          1000,
		SpawnDistance:       300,
		CellSize:            64,
		Steering:            DefaultSteeringConfig(),
		PushStrength:        1,
		ContactPush:         5,
		PoolCapacity:        200,
		MaxProjectiles:      200,
		ProjectileMaxRange:  1000,
		PlayerProjectile:    32,
		EnemyProjectile:     16,
		EnemyProjectileAnim: "enemy_projectile",
		ItemSize:            10,
		Drops: []DropWeight{
			{Kind: entity.ItemGem, Weight: 0.99},
			{Kind: entity.ItemTuna, Weight: 0.01},
		},
	}
}

// createTestPlayer returns a 16x16 player centered at (1000, 1000)
func createTestPlayer() *entity.Player {
	return entity.NewPlayer(992, 992, 16, 16, 150, 100)
}

func createTestManager(cfg ManagerConfig) (*EnemyManager, *entity.Player) {
	player := createTestPlayer()
	return NewEnemyManager(cfg, openWorld, player, createTestVariants(), testRNG()), player
}

// createTestEnemy returns a slime-like enemy whose center is c
func createTestEnemy(c entity.Vec2) *entity.Enemy {
	return &entity.Enemy{
		Pos:             entity.Vec2{X: c.X - 16, Y: c.Y - 16},
		Width:           32,
		Height:          32,
		Variant:         "slime",
		Behavior:        entity.BehaviorChase,
		HitboxOffsetX:   4,
		HitboxOffsetY:   8,
		HitboxWidth:     24,
		HitboxHeight:    20,
		Health:          10,
		MaxHealth:       10,
		Damage:          40,
		Speed:           55,
		CollisionRadius: 12.8,
		DetectionRadius: 100,
	}
}

// createWallMap returns a 20x20 map of 16px tiles with a solid column at tx
func createWallMap(tx int) *entity.TileMap {
	m := entity.NewTileMap(20, 20, 16)
	for y := 0; y < m.Height; y++ {
		m.SetSolid(tx, y)
	}
	return m
}
