// Package config provides YAML-based tuning configuration loading for the
// bombmaze simulation.
package config

// BombMazeConfig contains all tuning parameters for the maze chase game.
// Distances are in pixel units, durations in milliseconds, speeds in
// pixels per frame.
type BombMazeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Monsters   MonstersConfig   `yaml:"monsters"`
	Bombs      BombsConfig      `yaml:"bombs"`
	Explosions ExplosionsConfig `yaml:"explosions"`
	Coins      CoinsConfig      `yaml:"coins"`
	Effects    EffectsConfig    `yaml:"effects"`
	Rules      RulesConfig      `yaml:"rules"`
}

// GridConfig defines the maze geometry.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Size            float64 `yaml:"size"`
	Speed           float64 `yaml:"speed"`
	Lives           int     `yaml:"lives"`
	HoldThresholdMS float64 `yaml:"hold_threshold_ms"` // Tap below, hold at or above
}

// MonstersConfig defines monster variants and spawning.
type MonstersConfig struct {
	Spawn     []string      `yaml:"spawn"` // Monster kinds created at level start
	Hunter    HunterConfig  `yaml:"hunter"`
	Patrol    PatrolConfig  `yaml:"patrol"`
	Placement SpawnerConfig `yaml:"placement"`
}

// HunterConfig defines the chasing monster.
type HunterConfig struct {
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"`
	ChaseRange   float64 `yaml:"chase_range"`
	WanderChance float64 `yaml:"wander_chance"` // Per-frame probability of a random jump
	WanderJump   float64 `yaml:"wander_jump"`   // Jump length in multiples of speed
}

// PatrolConfig defines the corridor-following monster.
type PatrolConfig struct {
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"`
	RepickChance float64 `yaml:"repick_chance"` // Chance to turn when centered in a cell
}

// SpawnerConfig defines how monsters are placed away from the player.
type SpawnerConfig struct {
	MinDistance float64 `yaml:"min_distance"`
	Attempts    int     `yaml:"attempts"`
	FallbackRow int     `yaml:"fallback_row"`
	FallbackCol int     `yaml:"fallback_col"`
}

// BombsConfig defines bomb footprint and fuse lengths.
type BombsConfig struct {
	Size      float64 `yaml:"size"`
	RegularMS float64 `yaml:"regular_ms"`
	FreezeMS  float64 `yaml:"freeze_ms"`
}

// ExplosionsConfig defines explosion lifetimes and reach.
type ExplosionsConfig struct {
	RegularMS     float64 `yaml:"regular_ms"`
	RegularRadius float64 `yaml:"regular_radius"`
	FreezeMS      float64 `yaml:"freeze_ms"`
	FreezeRadius  float64 `yaml:"freeze_radius"`
	FreezeEffect  float64 `yaml:"freeze_effect_ms"` // How long a freeze explosion stops a monster
}

// CoinsConfig defines coin collection.
type CoinsConfig struct {
	Size            float64 `yaml:"size"`          // Draw size only
	PickupRadius    float64 `yaml:"pickup_radius"` // Independent of Size
	UnlockThreshold float64 `yaml:"unlock_threshold"`
}

// EffectsConfig defines cosmetic effects.
type EffectsConfig struct {
	CrushMS     float64 `yaml:"crush_ms"`
	CrushRadius float64 `yaml:"crush_radius"`
}

// RulesConfig defines frame pacing and scoring.
type RulesConfig struct {
	MaxFrameMS   float64 `yaml:"max_frame_ms"`
	CoinPoints   int     `yaml:"coin_points"`
	KillPoints   int     `yaml:"kill_points"`
	CrushPoints  int     `yaml:"crush_points"`
	WinBonus     int     `yaml:"win_bonus"`
	LifeBonus    int     `yaml:"life_bonus"` // Per remaining life on win
	ExitSize     float64 `yaml:"exit_size"`  // Contact size of the exit
}
