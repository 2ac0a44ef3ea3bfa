package config

import (
	_ "embed"
)

//go:embed defaults/bombmaze.yaml
var defaultBombMazeYAML []byte

// DefaultBombMazeConfig returns the hardcoded default configuration.
// It mirrors defaults/bombmaze.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBombMazeConfig() BombMazeConfig {
	return BombMazeConfig{
		Grid: GridConfig{
			CellSize: 40,
		},
		Player: PlayerConfig{
			Size:            20,
			Speed:           5,
			Lives:           3,
			HoldThresholdMS: 300,
		},
		Monsters: MonstersConfig{
			Spawn: []string{"hunter", "hunter", "patrol"},
			Hunter: HunterConfig{
				Size:         25,
				Speed:        3.5,
				ChaseRange:   200,
				WanderChance: 0.02,
				WanderJump:   5,
			},
			Patrol: PatrolConfig{
				Size:         22,
				Speed:        4,
				RepickChance: 0.2,
			},
			Placement: SpawnerConfig{
				MinDistance: 200,
				Attempts:    100,
				FallbackRow: 1,
				FallbackCol: 18,
			},
		},
		Bombs: BombsConfig{
			Size:      15,
			RegularMS: 3000,
			FreezeMS:  1500,
		},
		Explosions: ExplosionsConfig{
			RegularMS:     500,
			RegularRadius: 100,
			FreezeMS:      700,
			FreezeRadius:  80,
			FreezeEffect:  5000,
		},
		Coins: CoinsConfig{
			Size:            8,
			PickupRadius:    30,
			UnlockThreshold: 75,
		},
		Effects: EffectsConfig{
			CrushMS:     400,
			CrushRadius: 30,
		},
		Rules: RulesConfig{
			MaxFrameMS:  100,
			CoinPoints:  10,
			KillPoints:  100,
			CrushPoints: 50,
			WinBonus:    500,
			LifeBonus:   100,
			ExitSize:    20,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBombMazeYAML
}
