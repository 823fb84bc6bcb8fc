package config

// SimConfig is the root config for sim.json
type SimConfig struct {
	Display     DisplayConfig            `json:"display"`
	Simulation  SimulationConfig         `json:"simulation"`
	Difficulty  DifficultyConfig         `json:"difficulty"`
	Spawn       SpawnConfig              `json:"spawn"`
	Grid        GridConfig               `json:"grid"`
	Steering    SteeringConfig           `json:"steering"`
	Collision   CollisionConfig          `json:"collision"`
	Projectiles ProjectilesConfig        `json:"projectiles"`
	Player      PlayerConfig             `json:"player"`
	Attack      AttackConfig             `json:"attack"`
	Drops       DropsConfig              `json:"drops"`
	Variants    map[string]VariantConfig `json:"variants"`
}

type DisplayConfig struct {
	ScreenWidth  int     `json:"screenWidth"`
	ScreenHeight int     `json:"screenHeight"`
	Scale        int     `json:"scale"`
	Framerate    int     `json:"framerate"`
	Zoom         float64 `json:"zoom"`
}

type SimulationConfig struct {
	MaxDeltaTime    float64 `json:"maxDeltaTime"`    // seconds; larger steps are clamped
	CullingDistance float64 `json:"cullingDistance"` // pixels from the player center
}

// DifficultyConfig holds the linear growth rates of the difficulty curve.
// difficulty = 1 + t*SpawnGrowth, healthScale = 1 + t*HealthGrowth, damageScale = 1 + t*DamageGrowth
type DifficultyConfig struct {
	BaseSpawnRate float64 `json:"baseSpawnRate"` // spawns per second at t=0
	SpawnGrowth   float64 `json:"spawnGrowth"`
	HealthGrowth  float64 `json:"healthGrowth"`
	DamageGrowth  float64 `json:"damageGrowth"`
	ManualBoost   float64 `json:"manualBoost"` // added to the manual multiplier per debug boost
}

type SpawnConfig struct {
	MaxEnemies int     `json:"maxEnemies"`
	Distance   float64 `json:"distance"` // pixels from the player
}

type GridConfig struct {
	CellSize float64 `json:"cellSize"`
}

type SteeringConfig struct {
	AvoidForce  float64 `json:"avoidForce"`
	RayStep     float64 `json:"rayStep"`     // pixels between ray samples
	ProbeSize   float64 `json:"probeSize"`   // sample box edge
	StuckFactor float64 `json:"stuckFactor"` // fraction of speed used by the stuck probe
}

type CollisionConfig struct {
	PushStrength float64 `json:"pushStrength"` // enemy-enemy push per resolution
	ContactPush  float64 `json:"contactPush"`  // enemy push away from the player on contact
	Workers      int     `json:"workers"`      // >1 enables sharded separation
}

type ProjectilesConfig struct {
	PoolCapacity int     `json:"poolCapacity"` // max retained inactive projectiles
	MaxActive    int     `json:"maxActive"`
	MaxRange     float64 `json:"maxRange"`
	PlayerSize   float64 `json:"playerSize"` // enemy-seeking projectile size
	EnemySize    float64 `json:"enemySize"`  // player-seeking projectile size
	EnemyAnim    string  `json:"enemyAnimation"`
}

type PlayerConfig struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Speed     float64 `json:"speed"`
	MaxHealth float64 `json:"maxHealth"`
	ExpToNext int     `json:"expToNext"`
	ExpGrowth float64 `json:"expGrowth"`
}

type AttackConfig struct {
	Cooldown        float64 `json:"cooldown"`
	Damage          float64 `json:"damage"`
	Speed           float64 `json:"speed"`
	DetectionRadius float64 `json:"detectionRadius"`
	Animation       string  `json:"animation"`
}

type DropsConfig struct {
	ItemSize     float64     `json:"itemSize"`
	HealFraction float64     `json:"healFraction"`
	Table        []DropEntry `json:"table"`
}

type DropEntry struct {
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

type VariantConfig struct {
	Behavior        string  `json:"behavior"`
	Weight          float64 `json:"weight"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Hitbox          Rect    `json:"hitbox"`
	Speed           float64 `json:"speed"`
	Health          float64 `json:"health"`
	Damage          float64 `json:"damage"`
	DetectionRadius float64 `json:"detectionRadius"`
	EscapeRadius    float64 `json:"escapeRadius,omitempty"`
	AttackCooldown  float64 `json:"attackCooldown,omitempty"`
	ProjectileSpeed float64 `json:"projectileSpeed,omitempty"`
	StuckProbe      bool    `json:"stuckProbe,omitempty"`
}

type Rect struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}
