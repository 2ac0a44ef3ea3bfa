package bombmaze

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// CellKind is the content of one maze cell.
type CellKind uint8

const (
	CellOpen CellKind = iota
	CellWall
)

// Layout characters.
const (
	glyphWall  = '#'
	glyphOpen  = '.'
	glyphStart = 'S'
	glyphExit  = 'E'
)

// ErrInvalidGrid is returned when a maze layout cannot be used.
var ErrInvalidGrid = errors.New("bombmaze: invalid grid")

// CellPos addresses a cell by row and column.
type CellPos struct {
	Row, Col int
}

// WallProbe answers whether a square probe overlaps a wall.
type WallProbe interface {
	ProbeBlocked(x, y, size float64) bool
}

// Grid is the static tile map. It is immutable after ParseGrid.
type Grid struct {
	cells    [][]CellKind
	rows     int
	cols     int
	cellSize float64
	start    CellPos
	exit     CellPos
}

// ParseGrid builds a grid from layout rows.
// Every border cell must be a wall, which keeps entities inside the maze
// without any extra clamping. Exactly one start and one exit marker are
// required.
func ParseGrid(layout []string, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidGrid, cellSize)
	}
	rows := len(layout)
	if rows < 3 {
		return nil, fmt.Errorf("%w: need at least 3 rows, got %d", ErrInvalidGrid, rows)
	}
	cols := len([]rune(layout[0]))
	if cols < 3 {
		return nil, fmt.Errorf("%w: need at least 3 columns, got %d", ErrInvalidGrid, cols)
	}

	g := &Grid{
		cells:    make([][]CellKind, rows),
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
	}

	starts, exits := 0, 0
	for r, line := range layout {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidGrid, r, len(runes), cols)
		}
		g.cells[r] = make([]CellKind, cols)
		for c, ch := range runes {
			switch ch {
			case glyphWall:
				g.cells[r][c] = CellWall
			case glyphOpen:
				g.cells[r][c] = CellOpen
			case glyphStart:
				g.cells[r][c] = CellOpen
				g.start = CellPos{Row: r, Col: c}
				starts++
			case glyphExit:
				g.cells[r][c] = CellOpen
				g.exit = CellPos{Row: r, Col: c}
				exits++
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at row %d col %d", ErrInvalidGrid, ch, r, c)
			}
		}
	}

	if starts != 1 || exits != 1 {
		return nil, fmt.Errorf("%w: need exactly one start and one exit, got %d and %d", ErrInvalidGrid, starts, exits)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			border := r == 0 || c == 0 || r == rows-1 || c == cols-1
			if border && g.cells[r][c] != CellWall {
				return nil, fmt.Errorf("%w: border cell at row %d col %d is open", ErrInvalidGrid, r, c)
			}
		}
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the edge length of one cell in pixels.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Start returns the player start cell.
func (g *Grid) Start() CellPos { return g.start }

// Exit returns the exit cell.
func (g *Grid) Exit() CellPos { return g.exit }

// InBounds reports whether the cell exists.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// CellAt returns the kind of a cell. Out-of-bounds cells report CellOpen,
// matching the permissive edge policy of ProbeBlocked.
func (g *Grid) CellAt(row, col int) CellKind {
	if !g.InBounds(row, col) {
		return CellOpen
	}
	return g.cells[row][col]
}

// IsOpen reports whether an in-bounds cell can be walked. Out-of-bounds
// cells are never open; AI decisions must not target them.
func (g *Grid) IsOpen(row, col int) bool {
	return g.InBounds(row, col) && g.cells[row][col] == CellOpen
}

// CellOf returns the cell containing a point.
func (g *Grid) CellOf(p core.Vec) CellPos {
	return CellPos{
		Row: int(math.Floor(p.Y / g.cellSize)),
		Col: int(math.Floor(p.X / g.cellSize)),
	}
}

// CellCenter returns the pixel center of a cell.
func (g *Grid) CellCenter(row, col int) core.Vec {
	return core.Vec{
		X: float64(col)*g.cellSize + g.cellSize/2,
		Y: float64(row)*g.cellSize + g.cellSize/2,
	}
}

// OpenCells returns every open cell in row-major order.
func (g *Grid) OpenCells() []CellPos {
	var open []CellPos
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] == CellOpen {
				open = append(open, CellPos{Row: r, Col: c})
			}
		}
	}
	return open
}

// ProbeBlocked samples the four corners of a square of side size centered
// at (x, y). It returns true if any corner lands in an in-bounds wall cell.
// Corners outside the grid never block.
func (g *Grid) ProbeBlocked(x, y, size float64) bool {
	half := size / 2
	corners := [4]core.Vec{
		{X: x - half, Y: y - half},
		{X: x + half, Y: y - half},
		{X: x - half, Y: y + half},
		{X: x + half, Y: y + half},
	}
	for _, p := range corners {
		cell := g.CellOf(p)
		if g.InBounds(cell.Row, cell.Col) && g.cells[cell.Row][cell.Col] == CellWall {
			return true
		}
	}
	return false
}

// moveAxisGated applies dx then dy independently, each only when the probe at
// the destination is clear. Blocking one axis still lets the other slide.
func moveAxisGated(pos core.Vec, dx, dy, size float64, probe WallProbe) core.Vec {
	if dx != 0 && !probe.ProbeBlocked(pos.X+dx, pos.Y, size) {
		pos.X += dx
	}
	if dy != 0 && !probe.ProbeBlocked(pos.X, pos.Y+dy, size) {
		pos.Y += dy
	}
	return pos
}
