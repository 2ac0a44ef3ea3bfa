package bombmaze

import "math"

// Snapshot captures the complete simulation state for determinism testing.
// Positions are stored as raw float bits so equal snapshots mean
// bit-identical worlds.
type Snapshot struct {
	Tick      uint64
	Status    Status
	Score     int
	Lives     int
	Kills     int
	PlayerX   uint64
	PlayerY   uint64
	Collected int
	ExitOpen  bool
	RNGState  uint64

	// Each monster is 5 words: Kind, X bits, Y bits, Frozen, Heading
	MonsterData []uint64

	// Each bomb is 4 words: Kind, X bits, Y bits, RemainingMS bits
	BombData []uint64

	// Each explosion is 3 words: Kind, RemainingMS bits, Radius bits
	ExplosionData []uint64
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	monsters := make([]uint64, 0, len(w.monsters)*5)
	for _, m := range w.monsters {
		if m == nil {
			continue
		}
		monsters = append(monsters,
			uint64(m.Kind),
			math.Float64bits(m.Pos.X),
			math.Float64bits(m.Pos.Y),
			boolWord(m.Frozen),
			headingWord(m.Heading),
		)
	}

	bombs := make([]uint64, 0, len(w.hazards.Bombs)*4)
	for _, b := range w.hazards.Bombs {
		bombs = append(bombs,
			uint64(b.Kind),
			math.Float64bits(b.Pos.X),
			math.Float64bits(b.Pos.Y),
			math.Float64bits(b.RemainingMS),
		)
	}

	blasts := make([]uint64, 0, len(w.hazards.Explosions)*3)
	for _, e := range w.hazards.Explosions {
		blasts = append(blasts,
			uint64(e.Kind),
			math.Float64bits(e.RemainingMS),
			math.Float64bits(e.Radius),
		)
	}

	return Snapshot{
		Tick:          w.tick,
		Status:        w.status,
		Score:         w.score,
		Lives:         w.player.Lives,
		Kills:         w.kills,
		PlayerX:       math.Float64bits(w.player.Pos.X),
		PlayerY:       math.Float64bits(w.player.Pos.Y),
		Collected:     w.coins.Collected,
		ExitOpen:      w.exit.Active,
		RNGState:      w.rng.State(),
		MonsterData:   monsters,
		BombData:      bombs,
		ExplosionData: blasts,
	}
}

// Snapshot returns the state of the running session.
func (g *Game) Snapshot() Snapshot {
	if g.world == nil {
		return Snapshot{}
	}
	return g.world.Snapshot()
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Status)
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Collected) //#nosec G115 -- hash computation
	h = h*31 + snap.PlayerX
	h = h*31 + snap.PlayerY
	h = h*31 + boolWord(snap.ExitOpen)
	h = h*31 + snap.RNGState

	for _, v := range snap.MonsterData {
		h = h*31 + v
	}
	for _, v := range snap.BombData {
		h = h*31 + v
	}
	for _, v := range snap.ExplosionData {
		h = h*31 + v
	}

	return h
}

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// headingWord packs a cardinal heading into one word.
func headingWord(d Direction) uint64 {
	return uint64(d.DX+1)*3 + uint64(d.DY+1) //#nosec G115 -- components are in [-1, 1]
}
