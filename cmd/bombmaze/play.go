package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/platform/tui"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <maze>",
	Short: "Play a maze",
	Long: `Start playing the specified maze.

Controls:
  Arrows/WASD  - Move
  Space        - Tap for a freeze bomb, hold for a regular bomb
  P/Esc        - Pause
  R            - Restart (after game over)
  B            - Back (when paused or over)
  Q/Ctrl+C     - Quit

Examples:
  bombmaze play classic
  bombmaze play crossroads --seed 42
  bombmaze play classic --config ./tuning.yaml --log ./bombmaze.log`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mazeID := args[0]

	if !registry.Exists(mazeID) {
		return fmt.Errorf("unknown maze %q, run 'bombmaze list' to see available mazes", mazeID)
	}

	game, err := registry.Create(mazeID)
	if err != nil {
		return fmt.Errorf("creating maze: %w", err)
	}

	// Runs are only kept for this process
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open leaderboard", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, runtimeConfig(), tui.GameOptions{
		Store:  store,
		Logger: logger,
		Player: playerName(),
	})
	if err != nil {
		return fmt.Errorf("running maze: %w", err)
	}
	return nil
}

// runtimeConfig builds the runtime config from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is the name stored with local runs.
func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "anonymous"
}
