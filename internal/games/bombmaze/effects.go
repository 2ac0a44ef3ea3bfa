package bombmaze

import (
	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// CrushEffect marks where a frozen monster was crushed. Cosmetic only.
type CrushEffect struct {
	Pos         core.Vec
	RemainingMS float64
	InitialMS   float64
	MaxRadius   float64
	Radius      float64
}

// Effects owns the cosmetic crush effects.
type Effects struct {
	Crushes []CrushEffect
	cfg     config.EffectsConfig
}

// NewEffects creates an empty effect list.
func NewEffects(cfg config.EffectsConfig) *Effects {
	return &Effects{cfg: cfg}
}

// Crush spawns an effect at pos.
func (e *Effects) Crush(pos core.Vec) {
	e.Crushes = append(e.Crushes, CrushEffect{
		Pos:         pos,
		RemainingMS: e.cfg.CrushMS,
		InitialMS:   e.cfg.CrushMS,
		MaxRadius:   e.cfg.CrushRadius,
	})
}

// Update ages every effect and drops the expired ones.
func (e *Effects) Update(dtMS float64) {
	live := e.Crushes[:0]
	for _, c := range e.Crushes {
		c.RemainingMS -= dtMS
		if c.RemainingMS <= 0 {
			continue
		}
		c.Radius = c.MaxRadius * core.ClampF(1-c.RemainingMS/c.InitialMS, 0, 1)
		live = append(live, c)
	}
	e.Crushes = live
}

func (e *Effects) clone() *Effects {
	c := *e
	c.Crushes = append([]CrushEffect(nil), e.Crushes...)
	return &c
}
