package bombmaze

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// ErrUnknownMonsterKind is returned when a monster variant does not exist.
var ErrUnknownMonsterKind = errors.New("bombmaze: unknown monster kind")

// MonsterKind selects the monster behavior.
type MonsterKind uint8

const (
	MonsterHunter MonsterKind = iota + 1 // Chases the player when close
	MonsterPatrol                        // Follows corridors
)

// String returns the config name of the kind.
func (k MonsterKind) String() string {
	switch k {
	case MonsterHunter:
		return "hunter"
	case MonsterPatrol:
		return "patrol"
	default:
		return fmt.Sprintf("MonsterKind(%d)", k)
	}
}

// ParseMonsterKind converts a config name to a kind.
func ParseMonsterKind(s string) (MonsterKind, error) {
	switch s {
	case "hunter":
		return MonsterHunter, nil
	case "patrol":
		return MonsterPatrol, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonsterKind, s)
}

// Direction is a cardinal unit step in grid space.
type Direction struct {
	DX, DY int
}

// Cardinal directions.
var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// cardinals is the fixed order shuffled by AI decisions.
var cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// IsZero reports whether d has no heading.
func (d Direction) IsZero() bool { return d.DX == 0 && d.DY == 0 }

// Reverse returns the opposite heading.
func (d Direction) Reverse() Direction { return Direction{DX: -d.DX, DY: -d.DY} }

// Vec returns d scaled by length.
func (d Direction) Vec(length float64) core.Vec {
	return core.Vec{X: float64(d.DX) * length, Y: float64(d.DY) * length}
}

// perpendiculars returns the two headings at right angles to d.
func (d Direction) perpendiculars() [2]Direction {
	if d.DX != 0 {
		return [2]Direction{DirUp, DirDown}
	}
	return [2]Direction{DirLeft, DirRight}
}

// Monster is a hostile actor. Fields below the common block apply to one
// kind only.
type Monster struct {
	Kind     MonsterKind
	Pos      core.Vec
	Size     float64
	Speed    float64
	Frozen   bool
	FrozenMS float64
	Hit      bool // Removed at the end of the step
	crushed  bool

	// Hunter
	chaseRange   float64
	wanderChance float64
	wanderJump   float64

	// Patrol
	Heading      Direction
	PathMS       float64
	repickChance float64
	grid         *Grid
}

// NewMonster creates a monster of the given kind at pos.
// Patrols choose their first heading from the open neighbours of pos.
func NewMonster(kind MonsterKind, pos core.Vec, cfg config.MonstersConfig, grid *Grid, rng *SimpleRNG) (*Monster, error) {
	m := &Monster{Kind: kind, Pos: pos}

	switch kind {
	case MonsterHunter:
		m.Size = cfg.Hunter.Size
		m.Speed = cfg.Hunter.Speed
		m.chaseRange = cfg.Hunter.ChaseRange
		m.wanderChance = cfg.Hunter.WanderChance
		m.wanderJump = cfg.Hunter.WanderJump
	case MonsterPatrol:
		m.Size = cfg.Patrol.Size
		m.Speed = cfg.Patrol.Speed
		m.repickChance = cfg.Patrol.RepickChance
		m.grid = grid
		m.Heading = m.initialHeading(rng)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMonsterKind, kind)
	}

	return m, nil
}

// initialHeading shuffles the cardinals and takes the first with an open
// cell one cell ahead, else the first of the shuffle.
func (m *Monster) initialHeading(rng *SimpleRNG) Direction {
	dirs := cardinals
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		if m.openAhead(d) {
			return d
		}
	}
	return dirs[0]
}

// openAhead reports whether the cell one full cell-length along d is open.
func (m *Monster) openAhead(d Direction) bool {
	if m.grid == nil {
		return false
	}
	target := m.Pos.Add(d.Vec(m.grid.CellSize()))
	cell := m.grid.CellOf(target)
	return m.grid.IsOpen(cell.Row, cell.Col)
}

// Freeze stops the monster for durationMS. A monster that is already
// frozen keeps its current countdown. Returns whether the freeze applied.
func (m *Monster) Freeze(durationMS float64) bool {
	if m.Frozen {
		return false
	}
	m.Frozen = true
	m.FrozenMS = durationMS
	return true
}

// Update advances the monster by one frame.
func (m *Monster) Update(dtMS float64, player core.Vec, probe WallProbe, rng *SimpleRNG) {
	// A frozen monster spends the whole tick thawing, including the tick
	// on which the countdown runs out.
	if m.Frozen {
		m.FrozenMS -= dtMS
		if m.FrozenMS <= 0 {
			m.Frozen = false
			m.FrozenMS = 0
		}
		return
	}

	switch m.Kind {
	case MonsterHunter:
		m.updateHunter(player, probe, rng)
	case MonsterPatrol:
		m.updatePatrol(dtMS, probe, rng)
	}
}

func (m *Monster) updateHunter(player core.Vec, probe WallProbe, rng *SimpleRNG) {
	toPlayer := player.Sub(m.Pos)
	if toPlayer.Len() < m.chaseRange {
		step := toPlayer.Normalize().Scale(m.Speed)
		m.Pos = moveAxisGated(m.Pos, step.X, step.Y, m.Size, probe)
		return
	}

	if !rng.Chance(m.wanderChance) {
		return
	}
	dir := cardinals[rng.Intn(len(cardinals))]
	jump := dir.Vec(m.Speed * m.wanderJump)
	m.Pos = moveAxisGated(m.Pos, jump.X, jump.Y, m.Size, probe)
}

func (m *Monster) updatePatrol(dtMS float64, probe WallProbe, rng *SimpleRNG) {
	m.PathMS += dtMS

	if m.Heading.IsZero() {
		m.Heading = DirRight
	}

	move := m.Heading.Vec(m.Speed)
	next := m.Pos.Add(move)
	if probe.ProbeBlocked(next.X, next.Y, m.Size) {
		m.repickHeading(rng)
		return
	}

	if m.centered() && rng.Chance(m.repickChance) {
		m.repickHeading(rng)
	}

	// The step already checked against walls is the one taken; a fresh
	// heading starts moving on the next tick.
	m.Pos = next
}

// centered reports whether the monster is within one speed step of the
// middle of its cell on both axes.
func (m *Monster) centered() bool {
	if m.grid == nil {
		return false
	}
	cs := m.grid.CellSize()
	offX := math.Mod(m.Pos.X, cs)
	offY := math.Mod(m.Pos.Y, cs)
	return math.Abs(offX-cs/2) < m.Speed && math.Abs(offY-cs/2) < m.Speed
}

// repickHeading chooses among the two perpendiculars and the current
// heading twice, shuffled, taking the first whose next cell is open.
// With no open candidate the heading reverses.
func (m *Monster) repickHeading(rng *SimpleRNG) {
	perp := m.Heading.perpendiculars()
	candidates := [4]Direction{perp[0], perp[1], m.Heading, m.Heading}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, d := range candidates {
		if m.openAhead(d) {
			m.Heading = d
			return
		}
	}
	m.Heading = m.Heading.Reverse()
}
