package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrInvalidConfig is returned when a loaded config cannot drive a simulation
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Sim *SimConfig
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSim loads sim.json
func (l *Loader) LoadSim() (*SimConfig, error) {
	data, err := fs.ReadFile(l.fsys, "sim.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read sim.json: %w", err)
	}

	var cfg SimConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sim.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim.json: %w", err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	if cfg.Size.TileSize <= 0 || len(cfg.Layers.Collision) == 0 {
		return nil, fmt.Errorf("stage %s: %w: empty collision layer or tile size", name, ErrInvalidConfig)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations
func (l *Loader) LoadAll() (*GameConfig, error) {
	sim, err := l.LoadSim()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Sim: sim,
	}, nil
}

// Validate rejects configs that cannot run: missing variants, non-positive cell size, etc.
func (c *SimConfig) Validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("%w: grid.cellSize must be positive", ErrInvalidConfig)
	}
	if c.Spawn.MaxEnemies <= 0 {
		return fmt.Errorf("%w: spawn.maxEnemies must be positive", ErrInvalidConfig)
	}
	if c.Simulation.MaxDeltaTime <= 0 {
		return fmt.Errorf("%w: simulation.maxDeltaTime must be positive", ErrInvalidConfig)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no enemy variants", ErrInvalidConfig)
	}

	total := 0.0
	for name, v := range c.Variants {
		if v.Weight < 0 {
			return fmt.Errorf("%w: variant %s has negative weight", ErrInvalidConfig, name)
		}
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%w: variant %s has no size", ErrInvalidConfig, name)
		}
		total += v.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: variant weights sum to zero", ErrInvalidConfig)
	}

	if len(c.Drops.Table) == 0 {
		return fmt.Errorf("%w: empty drop table", ErrInvalidConfig)
	}

	return nil
}
