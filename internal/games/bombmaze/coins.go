package bombmaze

import (
	"math"

	"github.com/vovakirdan/bombmaze/internal/core"
)

// Coin is a collectible at the center of an open cell.
type Coin struct {
	Pos       core.Vec
	Collected bool
}

// CoinEvents reports what one collection pass changed.
type CoinEvents struct {
	Picked       int  // Coins collected in this pass
	ExitUnlocked bool // Threshold crossed for the first time
	BonusLife    bool // Last coin collected for the first time
}

// CoinField tracks every coin of the level and the unlock progress.
type CoinField struct {
	Coins        []Coin
	Total        int
	Collected    int
	ExitUnlocked bool
	BonusGranted bool

	pickupRadius float64
	threshold    float64 // Percent
}

// NewCoinField places one coin at the center of every open cell for which
// reserved returns false.
func NewCoinField(grid *Grid, reserved func(row, col int) bool, pickupRadius, thresholdPct float64) *CoinField {
	f := &CoinField{
		pickupRadius: pickupRadius,
		threshold:    thresholdPct,
	}
	for _, cell := range grid.OpenCells() {
		if reserved != nil && reserved(cell.Row, cell.Col) {
			continue
		}
		f.Coins = append(f.Coins, Coin{Pos: grid.CellCenter(cell.Row, cell.Col)})
	}
	f.Total = len(f.Coins)
	return f
}

// Collect picks up every uncollected coin within the pickup radius of the
// player. Each coin is collected at most once.
func (f *CoinField) Collect(player core.Vec) CoinEvents {
	var ev CoinEvents
	if !player.Finite() {
		return ev
	}

	for i := range f.Coins {
		c := &f.Coins[i]
		if c.Collected || core.Dist(player, c.Pos) >= f.pickupRadius {
			continue
		}
		c.Collected = true
		if f.Collected < f.Total {
			f.Collected++
		}
		ev.Picked++

		if !f.ExitUnlocked && f.Total > 0 && f.fraction() >= f.threshold {
			f.ExitUnlocked = true
			ev.ExitUnlocked = true
		}
	}

	if !f.BonusGranted && f.AllCollected() {
		f.BonusGranted = true
		ev.BonusLife = true
	}

	return ev
}

func (f *CoinField) fraction() float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Collected) / float64(f.Total) * 100
}

// Percentage returns the collected share, floored to a whole percent.
func (f *CoinField) Percentage() int {
	return int(math.Floor(f.fraction()))
}

// AllCollected reports whether every coin has been picked up.
// An empty field is never complete.
func (f *CoinField) AllCollected() bool {
	return f.Total > 0 && f.Collected == f.Total
}

// Threshold returns the unlock threshold in percent.
func (f *CoinField) Threshold() float64 {
	return f.threshold
}

func (f *CoinField) clone() *CoinField {
	c := *f
	c.Coins = append([]Coin(nil), f.Coins...)
	return &c
}
