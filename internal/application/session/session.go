package session

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/younwookim/horde/internal/application/system"
	"github.com/younwookim/horde/internal/domain/entity"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

// Session is one run of the simulation: a player on a tile map, the horde
// around it, and the systems that connect them
type Session struct {
	cfg  *config.SimConfig
	seed int64
	rng  *rand.Rand

	Map        *entity.TileMap
	Player     *entity.Player
	Enemies    *system.EnemyManager
	Attack     *system.AutoAttack
	Collector  system.Collector
	Controller *system.PlayerController

	frame    int
	gameOver bool
	logger   *log.Logger
}

// New creates a session on tiles seeded with seed
func New(cfg *config.SimConfig, tiles *entity.TileMap, seed int64) (*Session, error) {
	variants, err := system.VariantsFromConfig(cfg.Variants)
	if err != nil {
		return nil, fmt.Errorf("failed to build variants: %w", err)
	}
	managerCfg, err := system.ManagerConfigFromSim(cfg, tiles.WidthPx(), tiles.HeightPx())
	if err != nil {
		return nil, fmt.Errorf("failed to build enemy manager: %w", err)
	}

	s := &Session{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		Map:        tiles,
		Attack:     system.AutoAttackFromSim(cfg),
		Collector:  system.Collector{HealFraction: cfg.Drops.HealFraction},
		Controller: system.NewPlayerController(tiles, tiles.WidthPx(), tiles.HeightPx()),
		logger:     log.Default(),
	}
	s.Player = s.newPlayer()
	s.Enemies = system.NewEnemyManager(managerCfg, tiles, s.Player, variants, s.rng)
	return s, nil
}

func (s *Session) newPlayer() *entity.Player {
	pc := s.cfg.Player
	p := entity.NewPlayer(float64(s.Map.SpawnX), float64(s.Map.SpawnY), pc.Width, pc.Height, pc.Speed, pc.MaxHealth)
	if pc.ExpToNext > 0 {
		p.ExpToNext = pc.ExpToNext
	}
	if pc.ExpGrowth > 0 {
		p.ExpGrowth = pc.ExpGrowth
	}
	return p
}

// SetLogger replaces the logger for the session and its enemy manager
func (s *Session) SetLogger(l *log.Logger) {
	s.logger = l
	s.Enemies.SetLogger(l)
}

// Step advances the session by one frame. Paused frames and frames after
// game over change nothing. The returned error carries the enemy pipeline's
// per-frame faults; the session stays usable.
func (s *Session) Step(in system.InputState, frame system.Frame) error {
	if in.Restart {
		s.Reset()
		return nil
	}
	if frame.Paused || s.gameOver {
		return nil
	}

	if in.GodMode {
		s.Player.Invincible = !s.Player.Invincible
		s.logger.Printf("god mode: %v", s.Player.Invincible)
	}
	if in.Boost {
		s.Enemies.BoostSpawnRate(0)
		s.logger.Printf("spawn multiplier: %.0f", s.Enemies.Stats().ManualMultiplier)
	}

	s.frame++
	dt := s.Enemies.ClampDT(frame.DT)
	s.Controller.Move(s.Player, in, dt)
	s.Attack.Update(dt, s.Player, s.Enemies)
	err := s.Enemies.Update(frame)
	if _, levelled := s.Collector.Update(s.Player, s.Enemies); levelled {
		s.logger.Printf("level up: %d", s.Player.Level)
	}

	if s.Player.IsDead() {
		s.gameOver = true
		s.logger.Printf("game over at %.1fs, score %d", s.Enemies.Stats().TimeElapsed, s.Player.Score)
	}
	return err
}

// Reset restarts the run from the same seed
func (s *Session) Reset() {
	s.rng.Seed(s.seed)
	*s.Player = *s.newPlayer()
	s.Enemies.Reset()
	s.Attack.Reset()
	s.frame = 0
	s.gameOver = false
}

// GameOver reports whether the player has died
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Frame returns the number of simulated frames since the last reset
func (s *Session) Frame() int {
	return s.frame
}

// Seed returns the seed the session was created with
func (s *Session) Seed() int64 {
	return s.seed
}

// Diagnostics returns the current difficulty record
func (s *Session) Diagnostics() system.Diagnostics {
	return s.Enemies.Diagnostics()
}

// Config returns the simulation config
func (s *Session) Config() *config.SimConfig {
	return s.cfg
}
