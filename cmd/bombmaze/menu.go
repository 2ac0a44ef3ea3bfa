package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bombmaze/internal/platform/tui"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a maze picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a maze.
Press B after a run ends to return to the menu. Tab opens the
leaderboard of runs played since the menu started.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select maze
  Tab          - Leaderboard
  Q            - Quit

Examples:
  bombmaze menu
  bombmaze menu --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open leaderboard", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	player := playerName()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("leaderboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.MazeID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.MazeID)
		if err != nil {
			logger.Error("cannot create maze", "maze", menuResult.MazeID, "error", err)
			continue
		}

		// Fresh seed per run unless pinned by --seed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, cfg, tui.GameOptions{
			Store:  store,
			Logger: logger,
			Player: player,
		})
		if err != nil {
			return fmt.Errorf("running maze: %w", err)
		}
		if !back {
			return nil
		}
	}
}
