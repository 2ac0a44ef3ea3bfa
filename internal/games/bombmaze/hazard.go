package bombmaze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// ErrUnknownHazardKind is returned when a bomb variant does not exist.
var ErrUnknownHazardKind = errors.New("bombmaze: unknown hazard kind")

// HazardKind is the bomb and explosion variant.
type HazardKind uint8

const (
	HazardRegular HazardKind = iota + 1 // Destroys monsters
	HazardFreeze                        // Freezes monsters
)

// String returns a display name for the kind.
func (k HazardKind) String() string {
	switch k {
	case HazardRegular:
		return "regular"
	case HazardFreeze:
		return "freeze"
	default:
		return fmt.Sprintf("HazardKind(%d)", k)
	}
}

// Bomb is an armed charge waiting for its fuse or a monster.
type Bomb struct {
	Pos         core.Vec
	Kind        HazardKind
	RemainingMS float64
	Exploded    bool
}

// Explosion is a growing blast. Radius runs from 0 to MaxRadius over
// InitialMS.
type Explosion struct {
	Pos         core.Vec
	Kind        HazardKind
	RemainingMS float64
	InitialMS   float64
	MaxRadius   float64
	Radius      float64
}

// Progress returns the elapsed fraction in [0, 1].
func (e *Explosion) Progress() float64 {
	if e.InitialMS <= 0 {
		return 1
	}
	return core.ClampF(1-e.RemainingMS/e.InitialMS, 0, 1)
}

// HazardReport summarizes one hazard update.
type HazardReport struct {
	Detonations int // Bombs that turned into explosions
	Hit         int // Monsters newly marked hit
	Frozen      int // Monsters newly frozen
	Skipped     int // Monsters ignored for invalid positions
}

// HazardField owns every live bomb and explosion.
type HazardField struct {
	Bombs      []Bomb
	Explosions []Explosion

	bombSize float64
	cfgBombs config.BombsConfig
	cfgBlast config.ExplosionsConfig
}

// NewHazardField creates an empty field.
func NewHazardField(bombs config.BombsConfig, blasts config.ExplosionsConfig) *HazardField {
	return &HazardField{
		bombSize: bombs.Size,
		cfgBombs: bombs,
		cfgBlast: blasts,
	}
}

// BombSize returns the contact diameter of a bomb.
func (h *HazardField) BombSize() float64 {
	return h.bombSize
}

// Place arms a new bomb at pos. Unknown kinds add nothing.
func (h *HazardField) Place(kind HazardKind, pos core.Vec) error {
	var fuse float64
	switch kind {
	case HazardRegular:
		fuse = h.cfgBombs.RegularMS
	case HazardFreeze:
		fuse = h.cfgBombs.FreezeMS
	default:
		return fmt.Errorf("%w: %d", ErrUnknownHazardKind, kind)
	}

	h.Bombs = append(h.Bombs, Bomb{Pos: pos, Kind: kind, RemainingMS: fuse})
	return nil
}

// detonate flips a bomb to exploded and spawns its single explosion.
func (h *HazardField) detonate(b *Bomb) error {
	if b.Exploded {
		return nil
	}

	var life, radius float64
	switch b.Kind {
	case HazardRegular:
		life, radius = h.cfgBlast.RegularMS, h.cfgBlast.RegularRadius
	case HazardFreeze:
		life, radius = h.cfgBlast.FreezeMS, h.cfgBlast.FreezeRadius
	default:
		return fmt.Errorf("%w: %d", ErrUnknownHazardKind, b.Kind)
	}

	b.Exploded = true
	h.Explosions = append(h.Explosions, Explosion{
		Pos:         b.Pos,
		Kind:        b.Kind,
		RemainingMS: life,
		InitialMS:   life,
		MaxRadius:   radius,
	})
	return nil
}

// Update advances bombs and explosions against the live monsters.
//
// Order matters: monster contact is checked before fuses burn down, and
// both happen before explosions scan, so a bomb set off by contact can
// still catch other monsters in the same step.
func (h *HazardField) Update(dtMS float64, monsters []*Monster, freezeMS float64) (HazardReport, error) {
	var rep HazardReport

	// Contact
	for _, m := range monsters {
		if m == nil || !m.Pos.Finite() {
			rep.Skipped++
			continue
		}
		for i := range h.Bombs {
			b := &h.Bombs[i]
			if b.Exploded || !core.Overlaps(m.Pos, m.Size, b.Pos, h.bombSize) {
				continue
			}
			if err := h.detonate(b); err != nil {
				return rep, err
			}
			rep.Detonations++
		}
	}

	// Fuses
	for i := range h.Bombs {
		b := &h.Bombs[i]
		if b.Exploded {
			continue
		}
		b.RemainingMS -= dtMS
		if b.RemainingMS > 0 {
			continue
		}
		if err := h.detonate(b); err != nil {
			return rep, err
		}
		rep.Detonations++
	}

	h.Bombs = compactBombs(h.Bombs)

	// Blasts
	for i := range h.Explosions {
		e := &h.Explosions[i]
		e.RemainingMS -= dtMS
		e.Radius = e.MaxRadius * e.Progress()
		if e.RemainingMS <= 0 {
			continue
		}

		for _, m := range monsters {
			if m == nil || !m.Pos.Finite() {
				continue
			}
			if !core.Overlaps(e.Pos, e.Radius, m.Pos, m.Size) {
				continue
			}
			switch e.Kind {
			case HazardRegular:
				if !m.Hit {
					m.Hit = true
					rep.Hit++
				}
			case HazardFreeze:
				if m.Freeze(freezeMS) {
					rep.Frozen++
				}
			}
		}
	}

	h.Explosions = compactExplosions(h.Explosions)

	return rep, nil
}

// clone returns a deep copy of the field.
func (h *HazardField) clone() *HazardField {
	c := *h
	c.Bombs = append([]Bomb(nil), h.Bombs...)
	c.Explosions = append([]Explosion(nil), h.Explosions...)
	return &c
}

func compactBombs(bombs []Bomb) []Bomb {
	live := bombs[:0]
	for _, b := range bombs {
		if !b.Exploded {
			live = append(live, b)
		}
	}
	return live
}

func compactExplosions(blasts []Explosion) []Explosion {
	live := blasts[:0]
	for _, e := range blasts {
		if e.RemainingMS > 0 {
			live = append(live, e)
		}
	}
	return live
}
