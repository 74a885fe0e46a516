// Package movegen generates pseudo-legal moves for a CoTuLenh position:
// per-piece ray-walking over the board's mailbox, terrain and heavy-zone
// crossing rules, air-defense suicide/suppression for AirForce, stack and
// deploy sub-moves, and the shared "who attacks this square" primitive
// used by both internal/apply (heroic promotion) and internal/legality
// (check detection).
package movegen

import "github.com/mnoyd/cotulenh/internal/board"

// Config describes one piece kind's movement shape.
type Config struct {
	MoveRange              int
	CaptureRange           int
	Diagonal               bool
	DiagonalRange          int // 0 means "same as orthogonal range"; Missile overrides this
	CaptureIgnoresBlocking bool
	MoveIgnoresBlocking    bool
	HeroicBonus            int // added to MoveRange/CaptureRange/DiagonalRange when heroic
	HeroicGrantsDiagonal   bool
}

// configs is the static per-kind movement table.
var configs = map[board.PieceKind]Config{
	board.Commander: {MoveRange: 99, CaptureRange: 1, Diagonal: false, HeroicBonus: 0, HeroicGrantsDiagonal: true},
	board.Infantry:  {MoveRange: 1, CaptureRange: 1, Diagonal: false, HeroicBonus: 1, HeroicGrantsDiagonal: true},
	board.Engineer:  {MoveRange: 1, CaptureRange: 1, Diagonal: false, HeroicBonus: 1, HeroicGrantsDiagonal: true},
	board.AntiAir:   {MoveRange: 1, CaptureRange: 1, Diagonal: false, HeroicBonus: 1, HeroicGrantsDiagonal: true},
	board.Militia:   {MoveRange: 1, CaptureRange: 1, Diagonal: true, HeroicBonus: 1},
	board.Tank:      {MoveRange: 2, CaptureRange: 2, Diagonal: false, CaptureIgnoresBlocking: true, HeroicBonus: 1, HeroicGrantsDiagonal: true},
	board.Artillery: {MoveRange: 3, CaptureRange: 3, Diagonal: true, CaptureIgnoresBlocking: true, HeroicBonus: 1},
	board.Missile:   {MoveRange: 2, CaptureRange: 2, Diagonal: true, DiagonalRange: 1, CaptureIgnoresBlocking: true, HeroicBonus: 1},
	board.AirForce:  {MoveRange: 4, CaptureRange: 4, Diagonal: true, CaptureIgnoresBlocking: true, MoveIgnoresBlocking: true, HeroicBonus: 1},
	board.Navy:      {MoveRange: 4, CaptureRange: 4, Diagonal: true, CaptureIgnoresBlocking: true, HeroicBonus: 1},
	board.Headquarter: {MoveRange: 0, CaptureRange: 0, Diagonal: false, HeroicBonus: 1, HeroicGrantsDiagonal: true},
}

// ConfigFor returns the movement config of kind, adjusted for heroic.
func ConfigFor(kind board.PieceKind, heroic bool) Config {
	c := configs[kind]
	if !heroic {
		return c
	}
	c.MoveRange += c.HeroicBonus
	c.CaptureRange += c.HeroicBonus
	if c.DiagonalRange > 0 {
		c.DiagonalRange += c.HeroicBonus
	}
	if c.HeroicGrantsDiagonal {
		c.Diagonal = true
	}
	return c
}

// rangeForDirection returns the max ray length to scan in a given
// direction offset, accounting for Missile's restricted diagonal range.
func (c Config) rangeForDirection(diagonal bool) int {
	limit := c.MoveRange
	if c.CaptureRange > limit {
		limit = c.CaptureRange
	}
	if diagonal && c.DiagonalRange > 0 && c.DiagonalRange < limit {
		limit = c.DiagonalRange
	}
	return limit
}
