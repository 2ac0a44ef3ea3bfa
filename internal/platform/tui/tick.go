// Package tui provides the Bubble Tea integration for bombmaze.
// It handles the terminal UI loop, input latching, and session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the wall-clock time between two ticks. The first
// tick of a session has no predecessor and uses the nominal interval.
func frameDelta(prev, now time.Time, tickRate int) time.Duration {
	if prev.IsZero() || now.Before(prev) {
		if tickRate <= 0 {
			tickRate = 60
		}
		return time.Second / time.Duration(tickRate)
	}
	return now.Sub(prev)
}
