package bombmaze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// Terminal layout: each maze cell is cellCols characters wide and one
// row tall. One HUD row sits above the maze and one message row below.
const (
	cellCols = 2
	hudRows  = 2
)

// Visual characters for rendering
const (
	WallChar        = '█'
	CoinChar        = '·'
	ExitLockedChar  = '◇'
	ExitOpenChar    = '◆'
	PlayerChar      = '@'
	HunterChar      = 'H'
	PatrolChar      = 'P'
	RegularBombChar = '●'
	FreezeBombChar  = '✱'
	BlastChar       = '▒'
	CrushChar       = '✶'
)

// Bombs blink red during the last second of the fuse.
const fuseWarningMS = 1000

// Render draws the session into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "Maze failed to load", core.ColorBrightRed)
		if g.lastErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.lastErr.Error(), core.ColorGray)
		}
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	grid := g.world.Grid()
	v := viewport{
		originX:  (dst.Width() - grid.Cols()*cellCols) / 2,
		originY:  1,
		cellSize: grid.CellSize(),
	}

	g.renderHUD(dst, v.originX)
	g.renderMaze(dst, v)
	g.renderCoins(dst, v)
	g.renderExit(dst, v)
	g.renderBlasts(dst, v)
	g.renderBombs(dst, v)
	g.renderMonsters(dst, v)
	g.renderPlayer(dst, v)
	g.renderMessage(dst, v.originX, v.originY+grid.Rows())
	g.renderOverlays(dst)
}

// viewport maps pixel coordinates to screen cells.
type viewport struct {
	originX, originY int
	cellSize         float64
}

// toScreen returns the terminal cell under a pixel position.
func (v viewport) toScreen(p core.Vec) (int, int) {
	x := v.originX + int(math.Floor(p.X/v.cellSize*cellCols))
	y := v.originY + int(math.Floor(p.Y/v.cellSize))
	return x, y
}

// toPixel returns the pixel center of a terminal cell.
func (v viewport) toPixel(x, y int) core.Vec {
	return core.Vec{
		X: (float64(x-v.originX) + 0.5) * v.cellSize / cellCols,
		Y: (float64(y-v.originY) + 0.5) * v.cellSize,
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws lives, score, coin progress and the exit state.
func (g *Game) renderHUD(dst *core.Screen, x int) {
	w := g.world
	coins := w.Coins()

	hud := fmt.Sprintf("Lives: %d  Score: %d  Coins: %d%% / %.0f%%",
		w.Player().Lives, w.Score(), coins.Percentage(), coins.Threshold())
	dst.DrawTextColored(x, 0, hud, core.ColorWhite)

	exitLabel, exitColor := "Exit: LOCKED", core.ColorGray
	if w.Exit().Active {
		exitLabel, exitColor = "Exit: OPEN", core.ColorBrightGreen
	}
	dst.DrawTextColored(x+len(hud)+2, 0, exitLabel, exitColor)
}

func (g *Game) renderMaze(dst *core.Screen, v viewport) {
	grid := g.world.Grid()
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			if grid.CellAt(row, col) != CellWall {
				continue
			}
			for i := range cellCols {
				dst.SetColored(v.originX+col*cellCols+i, v.originY+row, WallChar, core.ColorBlue)
			}
		}
	}
}

func (g *Game) renderCoins(dst *core.Screen, v viewport) {
	for _, c := range g.world.Coins().Coins {
		if c.Collected {
			continue
		}
		x, y := v.toScreen(c.Pos)
		dst.SetColored(x, y, CoinChar, core.ColorYellow)
	}
}

func (g *Game) renderExit(dst *core.Screen, v viewport) {
	exit := g.world.Exit()
	x, y := v.toScreen(exit.Pos)
	if exit.Active {
		dst.SetColored(x-1, y, ExitOpenChar, core.ColorBrightGreen)
		dst.SetColored(x, y, ExitOpenChar, core.ColorBrightGreen)
		return
	}
	dst.SetColored(x, y, ExitLockedChar, core.ColorGray)
}

// renderBlasts shades every terminal cell whose center lies inside an
// explosion or crush effect.
func (g *Game) renderBlasts(dst *core.Screen, v viewport) {
	for _, e := range g.world.Hazards().Explosions {
		color := core.ColorOrange
		if e.Kind == HazardFreeze {
			color = core.ColorBrightCyan
		}
		fillCircle(dst, v, e.Pos, e.Radius, BlastChar, color)
	}
	for _, c := range g.world.Effects().Crushes {
		fillCircle(dst, v, c.Pos, c.Radius, CrushChar, core.ColorWhite)
	}
}

func fillCircle(dst *core.Screen, v viewport, center core.Vec, radius float64, r rune, c core.Color) {
	if radius <= 0 {
		return
	}
	x0, y0 := v.toScreen(center.Sub(core.V(radius, radius)))
	x1, y1 := v.toScreen(center.Add(core.V(radius, radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if core.Dist(v.toPixel(x, y), center) <= radius {
				dst.SetColored(x, y, r, c)
			}
		}
	}
}

func (g *Game) renderBombs(dst *core.Screen, v viewport) {
	for _, b := range g.world.Hazards().Bombs {
		x, y := v.toScreen(b.Pos)
		switch b.Kind {
		case HazardFreeze:
			dst.SetColored(x, y, FreezeBombChar, core.ColorCyan)
		default:
			color := core.ColorOrange
			if b.RemainingMS < fuseWarningMS {
				color = core.ColorBrightRed
			}
			dst.SetColored(x, y, RegularBombChar, color)
		}
	}
}

func (g *Game) renderMonsters(dst *core.Screen, v viewport) {
	for _, m := range g.world.Monsters() {
		if m == nil || !m.Pos.Finite() {
			continue
		}
		ch, color := HunterChar, core.ColorBrightRed
		if m.Kind == MonsterPatrol {
			ch, color = PatrolChar, core.ColorBrightGreen
		}
		if m.Frozen {
			color = core.ColorBrightCyan
		}
		x, y := v.toScreen(m.Pos)
		dst.SetColored(x, y, ch, color)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	p := g.world.Player()
	x, y := v.toScreen(p.Pos)

	color := core.ColorBrightBlue
	if held, ms := p.Charging(); held && ms >= g.cfg.Player.HoldThresholdMS {
		// Releasing now drops a regular bomb
		color = core.ColorOrange
	}
	dst.SetColored(x, y, PlayerChar, color)
}

func (g *Game) renderMessage(dst *core.Screen, x, y int) {
	if g.message != "" {
		dst.DrawTextColored(x, y, g.message, core.ColorBrightYellow)
		return
	}
	dst.DrawTextColored(x, y, "Arrows/WASD move  Space tap=freeze hold=bomb  P pause", core.ColorGray)
}

// renderOverlays draws the pause and end-of-session banners.
func (g *Game) renderOverlays(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.paused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, " P to resume ", core.ColorGray)
	case g.world.Status() == StatusWon:
		dst.DrawTextCentered(mid, fmt.Sprintf(" YOU ESCAPED! Score: %d ", g.world.Score()), core.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, " R to play again, B for menu ", core.ColorGray)
	case g.world.Status() == StatusLost:
		dst.DrawTextCentered(mid, fmt.Sprintf(" GAME OVER  Score: %d ", g.world.Score()), core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, " R to retry, B for menu ", core.ColorGray)
	}
}
