package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// LoadBombMaze loads the bombmaze configuration.
// Search order: customPath -> ~/.bombmaze/configs/bombmaze.yaml -> ./configs/bombmaze.yaml -> embedded default
//
// Files are applied on top of the defaults, so a custom file only needs the
// keys it changes.
func LoadBombMaze(customPath string) (BombMazeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BombMazeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BombMazeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bombmaze.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/bombmaze.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBombMazeYAML)
	if err != nil {
		return DefaultBombMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (BombMazeConfig, error) {
	cfg := DefaultBombMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BombMazeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BombMazeConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every parameter is usable by the simulation.
func (c BombMazeConfig) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"grid.cell_size", c.Grid.CellSize},
		{"player.size", c.Player.Size},
		{"player.speed", c.Player.Speed},
		{"player.hold_threshold_ms", c.Player.HoldThresholdMS},
		{"monsters.hunter.size", c.Monsters.Hunter.Size},
		{"monsters.hunter.speed", c.Monsters.Hunter.Speed},
		{"monsters.patrol.size", c.Monsters.Patrol.Size},
		{"monsters.patrol.speed", c.Monsters.Patrol.Speed},
		{"bombs.size", c.Bombs.Size},
		{"bombs.regular_ms", c.Bombs.RegularMS},
		{"bombs.freeze_ms", c.Bombs.FreezeMS},
		{"explosions.regular_ms", c.Explosions.RegularMS},
		{"explosions.regular_radius", c.Explosions.RegularRadius},
		{"explosions.freeze_ms", c.Explosions.FreezeMS},
		{"explosions.freeze_radius", c.Explosions.FreezeRadius},
		{"explosions.freeze_effect_ms", c.Explosions.FreezeEffect},
		{"coins.size", c.Coins.Size},
		{"coins.pickup_radius", c.Coins.PickupRadius},
		{"effects.crush_ms", c.Effects.CrushMS},
		{"rules.max_frame_ms", c.Rules.MaxFrameMS},
		{"rules.exit_size", c.Rules.ExitSize},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.Effects.CrushRadius < 0 {
		return fmt.Errorf("%w: effects.crush_radius must not be negative, got %v", ErrInvalidConfig, c.Effects.CrushRadius)
	}
	if c.Player.Lives < 1 {
		return fmt.Errorf("%w: player.lives must be at least 1, got %d", ErrInvalidConfig, c.Player.Lives)
	}
	if c.Coins.UnlockThreshold <= 0 || c.Coins.UnlockThreshold > 100 {
		return fmt.Errorf("%w: coins.unlock_threshold must be in (0, 100], got %v", ErrInvalidConfig, c.Coins.UnlockThreshold)
	}
	for _, chance := range []float64{c.Monsters.Hunter.WanderChance, c.Monsters.Patrol.RepickChance} {
		if chance < 0 || chance > 1 {
			return fmt.Errorf("%w: probabilities must be in [0, 1], got %v", ErrInvalidConfig, chance)
		}
	}
	if c.Monsters.Placement.Attempts < 0 {
		return fmt.Errorf("%w: monsters.placement.attempts must not be negative", ErrInvalidConfig)
	}
	for _, kind := range c.Monsters.Spawn {
		if kind != "hunter" && kind != "patrol" {
			return fmt.Errorf("%w: unknown monster kind %q", ErrInvalidConfig, kind)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bombmaze", "configs", filename)
}
