package bombmaze

import (
	"math"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// Player is the user-controlled actor.
type Player struct {
	Pos   core.Vec
	Size  float64
	Speed float64 // Pixels per frame
	Lives int

	holdThreshold float64 // Tap below, hold at or above (ms)
	pressed       bool    // Bomb key seen down on the previous update
	holdMS        float64 // How long the bomb key has been held
}

// NewPlayer creates a player at pos.
func NewPlayer(pos core.Vec, cfg config.PlayerConfig) *Player {
	return &Player{
		Pos:           pos,
		Size:          cfg.Size,
		Speed:         cfg.Speed,
		Lives:         cfg.Lives,
		holdThreshold: cfg.HoldThresholdMS,
	}
}

// Update applies one frame of movement and advances the bomb gesture.
// It returns the kind of bomb to drop at the player's position when the
// bomb key is released this frame, or nil.
func (p *Player) Update(keys core.KeyState, dtMS float64, probe WallProbe) *HazardKind {
	var dx, dy float64
	if keys.Held(core.ActionUp) {
		dy -= p.Speed
	}
	if keys.Held(core.ActionDown) {
		dy += p.Speed
	}
	if keys.Held(core.ActionLeft) {
		dx -= p.Speed
	}
	if keys.Held(core.ActionRight) {
		dx += p.Speed
	}

	// Keep diagonal speed equal to straight speed
	if dx != 0 && dy != 0 {
		dx /= math.Sqrt2
		dy /= math.Sqrt2
	}

	p.Pos = moveAxisGated(p.Pos, dx, dy, p.Size, probe)

	return p.advanceGesture(keys.Held(core.ActionBomb), dtMS)
}

// advanceGesture runs the Idle -> Pressed -> Idle machine of the bomb key.
func (p *Player) advanceGesture(down bool, dtMS float64) *HazardKind {
	switch {
	case down && !p.pressed:
		p.pressed = true
		p.holdMS = 0
	case down && p.pressed:
		p.holdMS += dtMS
	case !down && p.pressed:
		p.pressed = false
		kind := HazardFreeze
		if p.holdMS >= p.holdThreshold {
			kind = HazardRegular
		}
		p.holdMS = 0
		return &kind
	}
	return nil
}

// Charging reports whether the bomb key is currently held and for how long.
func (p *Player) Charging() (bool, float64) {
	return p.pressed, p.holdMS
}

// ReduceLife removes one life and reports whether none are left.
func (p *Player) ReduceLife() bool {
	if p.Lives > 0 {
		p.Lives--
	}
	return p.Lives == 0
}

// AddLife grants one extra life.
func (p *Player) AddLife() {
	p.Lives++
}

// Reset teleports the player. Lives and the bomb gesture are kept.
func (p *Player) Reset(pos core.Vec) {
	p.Pos = pos
}
