package bombmaze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// StepResult is the outcome of one World.Step.
type StepResult struct {
	Status     Status
	Lives      int
	Score      int
	CoinPct    int
	ExitActive bool
	Monsters   int
	Bombs      int
	Explosions int
	Kills      int     // Monsters removed in this step
	Events     []Event // Notifications raised in this step, in order
	Skipped    int     // Entities ignored because of invalid positions
	Err        error   // Non-nil when a phase failed; see Step
}

// phase is one stage of a step. Critical phases abort the whole step on
// failure; the others are skipped and logged.
type phase struct {
	name     string
	critical bool
	run      func() error
}

// Step advances the world by dtMS milliseconds with the given held keys.
//
// dtMS is clamped to [0, rules.max_frame_ms]. When a critical phase fails
// the world is rolled back to its state before the call, no hooks fire
// and the error is returned in StepResult.Err. Steps on a finished
// session change nothing.
func (w *World) Step(dtMS float64, keys core.KeyState) StepResult {
	if w.status.Terminal() {
		return w.result(0, nil, nil)
	}

	dt := clampFrame(dtMS, w.cfg.Rules.MaxFrameMS)
	backup := w.clone()
	w.events = w.events[:0]
	w.skipped = 0
	removed := 0

	phases := []phase{
		{"player", true, func() error { return w.stepPlayer(dt, keys) }},
		{"coins", true, w.stepCoins},
		{"exit", true, w.stepExit},
		{"monsters", true, func() error { return w.stepMonsters(dt) }},
		{"hazards", true, func() error { return w.stepHazards(dt) }},
		{"effects", false, func() error { return w.stepEffects(dt) }},
		{"prune", true, func() error { removed = w.pruneMonsters(); return nil }},
	}

	for _, p := range phases {
		err := runPhase(p)
		if err == nil {
			continue
		}
		if !p.critical {
			w.logger.Warn("phase skipped", "phase", p.name, "tick", w.tick, "error", err)
			continue
		}
		w.logger.Error("step aborted", "phase", p.name, "tick", w.tick, "error", err)
		w.restore(backup)
		return w.result(0, nil, fmt.Errorf("bombmaze: %s phase: %w", p.name, err))
	}

	w.tick++
	w.elapsedMS += dt
	res := w.result(removed, w.events, nil)
	w.hooks.dispatch(res.Events)
	return res
}

// runPhase calls p.run and turns a panic into an error.
func runPhase(p phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.run()
}

// clampFrame bounds a frame delta. NaN and negative deltas become zero.
func clampFrame(dtMS, maxMS float64) float64 {
	if math.IsNaN(dtMS) || dtMS < 0 {
		return 0
	}
	return math.Min(dtMS, maxMS)
}

func (w *World) result(removed int, events []Event, err error) StepResult {
	res := StepResult{
		Status:     w.status,
		Lives:      w.player.Lives,
		Score:      w.score,
		CoinPct:    w.coins.Percentage(),
		ExitActive: w.exit.Active,
		Monsters:   len(w.monsters),
		Bombs:      len(w.hazards.Bombs),
		Explosions: len(w.hazards.Explosions),
		Kills:      removed,
		Skipped:    w.skipped,
		Err:        err,
	}
	if len(events) > 0 {
		res.Events = append([]Event(nil), events...)
	}
	return res
}

func (w *World) stepPlayer(dt float64, keys core.KeyState) error {
	kind := w.player.Update(keys, dt, w.probe)
	if kind == nil {
		return nil
	}
	if err := w.hazards.Place(*kind, w.player.Pos); err != nil {
		return err
	}
	w.emit(EventBombPlaced, int(*kind))
	return nil
}

func (w *World) stepCoins() error {
	ev := w.coins.Collect(w.player.Pos)
	if ev.Picked == 0 {
		return nil
	}

	w.score += ev.Picked * w.cfg.Rules.CoinPoints
	w.emit(EventCollectionProgress, w.coins.Percentage())

	if ev.ExitUnlocked {
		w.exit.Active = true
		w.emit(EventExitActivated, 0)
	}
	if ev.BonusLife {
		w.player.AddLife()
		w.emit(EventLivesChanged, w.player.Lives)
	}
	return nil
}

func (w *World) stepExit() error {
	if !w.exit.Active || w.status.Terminal() {
		return nil
	}
	if !core.Overlaps(w.player.Pos, w.player.Size, w.exit.Pos, w.exit.Size) {
		return nil
	}

	w.status = StatusWon
	w.score += w.cfg.Rules.WinBonus + w.player.Lives*w.cfg.Rules.LifeBonus
	w.emit(EventGameWon, 0)
	return nil
}

func (w *World) stepMonsters(dt float64) error {
	for _, m := range w.monsters {
		if m == nil || !m.Pos.Finite() {
			w.skipped++
			continue
		}

		m.Update(dt, w.player.Pos, w.probe, &w.rng)

		if m.Hit || !core.Overlaps(m.Pos, m.Size, w.player.Pos, w.player.Size) {
			continue
		}

		if m.Frozen {
			m.Hit = true
			m.crushed = true
			w.crushes++
			w.score += w.cfg.Rules.CrushPoints
			w.effects.Crush(m.Pos)
			w.emit(EventMonsterCrushed, int(m.Kind))
			continue
		}

		if w.status.Terminal() {
			continue
		}
		w.damagePlayer()
	}
	return nil
}

// damagePlayer takes one life. The last life ends the session and leaves
// the player where it was caught.
func (w *World) damagePlayer() {
	if w.player.ReduceLife() {
		w.status = StatusLost
		w.emit(EventLivesChanged, 0)
		w.emit(EventGameOver, 0)
		return
	}
	w.player.Reset(w.start)
	w.emit(EventLivesChanged, w.player.Lives)
}

func (w *World) stepHazards(dt float64) error {
	rep, err := w.hazards.Update(dt, w.monsters, w.cfg.Explosions.FreezeEffect)
	w.skipped += rep.Skipped
	if err != nil {
		return err
	}
	w.score += rep.Hit * w.cfg.Rules.KillPoints
	return nil
}

func (w *World) stepEffects(dt float64) error {
	w.effects.Update(dt)
	return nil
}

// pruneMonsters drops every monster marked hit in a single pass and
// returns how many were removed.
func (w *World) pruneMonsters() int {
	live := w.monsters[:0]
	removed := 0
	for _, m := range w.monsters {
		if m == nil {
			continue
		}
		if m.Hit {
			removed++
			if !m.crushed {
				w.emit(EventMonsterKilled, int(m.Kind))
			}
			continue
		}
		live = append(live, m)
	}
	// Clear the tail so dropped monsters can be collected.
	for i := len(live); i < len(w.monsters); i++ {
		w.monsters[i] = nil
	}
	w.monsters = live
	w.kills += removed
	return removed
}
