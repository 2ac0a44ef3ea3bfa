package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionBomb, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// isHoldable reports whether an action feeds the held key state rather
// than the one-shot actions.
func isHoldable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionBomb:
		return true
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Default latch windows for movement keys. Repeats arrive much faster
// than the repeat window once auto-repeat has started.
const (
	DefaultLatchInitial = 200 * time.Millisecond
	DefaultLatchRepeat  = 120 * time.Millisecond
)

// DefaultBombDelay covers the common auto-repeat delays (250-660ms).
// A press not followed by a repeat within it was a tap.
const DefaultBombDelay = 700 * time.Millisecond

// KeyLatch turns terminal key presses into a held key state. Terminals
// send a key again while it is held but never report the release, so a
// key counts as held until no press has arrived within the latch window.
type KeyLatch struct {
	Initial time.Duration // Window after the first press
	Repeat  time.Duration // Window after each repeat

	until map[core.Action]time.Time
}

// NewKeyLatch creates a latch with the default windows.
func NewKeyLatch() *KeyLatch {
	return &KeyLatch{
		Initial: DefaultLatchInitial,
		Repeat:  DefaultLatchRepeat,
		until:   make(map[core.Action]time.Time),
	}
}

// Press records a press of a at now.
func (l *KeyLatch) Press(a core.Action, now time.Time) {
	deadline, held := l.until[a]
	if !held || !now.Before(deadline) {
		l.until[a] = now.Add(l.Initial)
		return
	}
	if next := now.Add(l.Repeat); next.After(deadline) {
		l.until[a] = next
	}
}

// Held returns the actions still held at now. Expired keys are released.
func (l *KeyLatch) Held(now time.Time) core.KeyState {
	keys := make(core.KeyState, len(l.until))
	for a, deadline := range l.until {
		if now.Before(deadline) {
			keys[a] = true
			continue
		}
		delete(l.until, a)
	}
	return keys
}

// Reset releases every key.
func (l *KeyLatch) Reset() {
	clear(l.until)
}

// HoldReplay measures how long a key was held from the timestamps of its
// auto-repeats and replays that hold Delay later, once the release is
// known. The replayed key is down from the first press to the last
// repeat, so the simulation sees the real hold length. A lone press is
// replayed as a single down frame.
//
// Two manual presses closer than Delay read as one hold.
type HoldReplay struct {
	Delay  time.Duration // Longest wait for the first repeat, and the replay lag
	Repeat time.Duration // Longest gap between two repeats of one hold

	spans []holdSpan
}

type holdSpan struct {
	first, last time.Time
	shown       bool
}

// NewHoldReplay creates a replay with the default bomb timings.
func NewHoldReplay() *HoldReplay {
	return &HoldReplay{
		Delay:  DefaultBombDelay,
		Repeat: DefaultLatchRepeat,
	}
}

// Press records a press at now.
func (r *HoldReplay) Press(now time.Time) {
	if n := len(r.spans); n > 0 {
		s := &r.spans[n-1]
		window := r.Repeat
		if s.last.Equal(s.first) {
			window = r.Delay
		}
		if !now.Before(s.last) && now.Sub(s.last) < window {
			s.last = now
			return
		}
	}
	r.spans = append(r.spans, holdSpan{first: now, last: now})
}

// Held reports whether the replayed key is down at now. Every hold is
// followed by at least one up frame.
func (r *HoldReplay) Held(now time.Time) bool {
	at := now.Add(-r.Delay)
	if len(r.spans) == 0 || at.Before(r.spans[0].first) {
		return false
	}

	s := &r.spans[0]
	if s.shown && at.After(s.last) {
		r.spans = r.spans[1:]
		return false
	}
	s.shown = true
	return true
}

// Reset drops every recorded hold.
func (r *HoldReplay) Reset() {
	r.spans = nil
}
