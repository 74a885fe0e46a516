// Package terrain computes the air-defense influence field: the one piece
// of board state that is genuinely dynamic (it depends on where AntiAir,
// Missile, and Navy pieces currently stand), as opposed to the static
// terrain masks in internal/board/terrain.go.
package terrain

import "github.com/mnoyd/cotulenh/internal/board"

// baseLevel is the influence radius of each air-defense source kind
// before any heroic bonus.
var baseLevel = map[board.PieceKind]int{
	board.AntiAir: 1,
	board.Navy:    1,
	board.Missile: 2,
}

// Field holds, for every square, the count of each color's air-defense
// influence sources reaching it. AirForce legality consults CountAgainst
// (through Evaluate) to decide free passage / suicide-capture / forbidden.
type Field struct {
	count [board.MailboxSize][2]int
}

// isSource reports whether kind is an air-defense source kind.
func isSource(kind board.PieceKind) bool {
	_, ok := baseLevel[kind]
	return ok
}

// level returns a source piece's effective influence radius, including its
// heroic bonus.
func level(p *board.Piece) int {
	l := baseLevel[p.Kind]
	if p.Heroic {
		l++
	}
	return l
}

// Compute builds the air-defense field from scratch by scanning every
// square of b for source pieces and radiating their influence — the
// from-scratch counterpart that any incremental update path must always
// agree with.
func Compute(b *board.Board) *Field {
	f := &Field{}
	for sq := 0; sq < board.MailboxSize; sq++ {
		p := b.Get(board.Square(sq))
		if p == nil || !isSource(p.Kind) {
			continue
		}
		f.radiate(board.Square(sq), p.Color, level(p), +1)
	}
	return f
}

// radiate adds (or removes, if sign is -1) delta influence of the given
// color and radius around origin, using a squared-Euclidean circle test
// (i²+j² ≤ level²) over valid board squares only.
func (f *Field) radiate(origin board.Square, color board.Color, radius int, sign int) {
	of, or := origin.File(), origin.Rank()
	for df := -radius; df <= radius; df++ {
		for dr := -radius; dr <= radius; dr++ {
			if df*df+dr*dr > radius*radius {
				continue
			}
			file, rank := of+df, or+dr
			if file < 0 || file >= board.NumFiles || rank < 0 || rank >= board.NumRanks {
				continue
			}
			sq := board.NewSquare(file, rank)
			f.count[sq][color] += sign
		}
	}
}

// CountAgainst returns the number of opposing (relative to by) influence
// sources covering sq. "Opposing" a color c means sources of c.Other().
func (f *Field) CountAgainst(sq board.Square, by board.Color) int {
	if !sq.IsValid() {
		return 0
	}
	return f.count[sq][by.Other()]
}

// Outcome classifies an AirForce interaction with a square under this
// field.
type Outcome uint8

const (
	FreePassage Outcome = iota
	SuicideIfCapture
	Forbidden
)

// Evaluate classifies sq for an AirForce piece of color by from the number
// of opposing air-defense sources reaching it: none is free passage, one
// is suicide-if-capture, two or more is forbidden.
func (f *Field) Evaluate(sq board.Square, by board.Color) Outcome {
	switch n := f.CountAgainst(sq, by); {
	case n == 0:
		return FreePassage
	case n == 1:
		return SuicideIfCapture
	default:
		return Forbidden
	}
}
