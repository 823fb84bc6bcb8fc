package system

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpawnRate is reported when the difficulty curve yields a
// spawn rate that cannot be turned into a spawn interval
var ErrInvalidSpawnRate = errors.New("invalid spawn rate")

// DifficultyModel is a pure function of elapsed time and the manual multiplier
type DifficultyModel struct {
	BaseSpawnRate float64 // spawns per second at t=0
	SpawnGrowth   float64 // k1
	HealthGrowth  float64 // k2
	DamageGrowth  float64 // k3
}

// DifficultyState is the difficulty curve evaluated at one instant
type DifficultyState struct {
	TimeElapsed float64
	Difficulty  float64
	SpawnRate   float64
	HealthScale float64
	DamageScale float64
}

// At evaluates the curve at t seconds with the given manual spawn multiplier
func (m DifficultyModel) At(t, manual float64) DifficultyState {
	difficulty := 1 + t*m.SpawnGrowth
	return DifficultyState{
		TimeElapsed: t,
		Difficulty:  difficulty,
		SpawnRate:   m.BaseSpawnRate * difficulty * manual,
		HealthScale: 1 + t*m.HealthGrowth,
		DamageScale: 1 + t*m.DamageGrowth,
	}
}

// SpawnInterval returns the seconds between spawns at this state
func (s DifficultyState) SpawnInterval() (float64, error) {
	if s.SpawnRate <= 0 || math.IsNaN(s.SpawnRate) || math.IsInf(s.SpawnRate, 0) {
		return 0, fmt.Errorf("%w: %g at t=%.2fs", ErrInvalidSpawnRate, s.SpawnRate, s.TimeElapsed)
	}
	return 1 / s.SpawnRate, nil
}

// Diagnostics is the read-only difficulty record exposed to overlays and logs
type Diagnostics struct {
	Difficulty       float64 `json:"difficulty"`
	SpawnRate        float64 `json:"spawn_rate"`
	HealthMultiplier float64 `json:"health_multiplier"`
	DamageMultiplier float64 `json:"damage_multiplier"`
}

// Diagnostics returns the exposed view of s
func (s DifficultyState) Diagnostics() Diagnostics {
	return Diagnostics{
		Difficulty:       s.Difficulty,
		SpawnRate:        s.SpawnRate,
		HealthMultiplier: s.HealthScale,
		DamageMultiplier: s.DamageScale,
	}
}
