// bombmaze is a real-time maze chase played in the terminal.
//
// Usage:
//
//	bombmaze list              - List available mazes
//	bombmaze play <maze>       - Play a maze
//	bombmaze menu              - Start menu to pick mazes interactively
//	bombmaze serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--config <path>       - Tuning YAML overlaid on the defaults
//	--log <path>          - Write simulation logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bombmaze/internal/games/bombmaze"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bombmaze",
	Short: "Bomb Maze - a maze chase in your terminal",
	Long: `Bomb Maze is a real-time maze chase. Collect coins to unlock the
exit, and use bombs to freeze or destroy the monsters hunting you.

Available commands:
  list     - Show all available mazes
  play     - Play a specific maze directly
  menu     - Interactive maze picker menu
  serve    - Start SSH server for remote play

Examples:
  bombmaze list
  bombmaze play classic
  bombmaze menu --config ./tuning.yaml
  bombmaze serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Log file (interactive commands log nowhere by default)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

// logger is shared by the simulation and the TUI. It is built in setup.
var logger *log.Logger

// setup applies the global flags before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// The alt screen owns stdout during play, so only serve logs there
	var w io.Writer = io.Discard
	if cmd.Name() == serveCmd.Name() {
		w = os.Stderr
	}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bombmaze",
		Level:           level,
	})

	bombmaze.SetConfigPath(flagConfig)
	bombmaze.SetLogger(logger)
	return nil
}
