package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bombmaze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available mazes",
	Long:  `Shows a list of all built-in mazes.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	mazes := registry.List()

	if len(mazes) == 0 {
		fmt.Println("No mazes available.")
		return
	}

	fmt.Println("Available mazes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range mazes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, m := range mazes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Println()
	fmt.Println("Run 'bombmaze play <id>' to play a maze.")
}
