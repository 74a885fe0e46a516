package movegen

import "github.com/mnoyd/cotulenh/internal/board"

// Attacker describes one piece of color attacking a given square.
type Attacker struct {
	Square board.Square
	Piece  board.Piece
}

// AttackersTo returns every piece belonging to color whose normal capture
// pattern reaches sq, ignoring the flying-general special rule — attack
// detection treats each enemy piece by its normal capture pattern only.
// This is the one primitive both internal/apply (heroic promotion gating)
// and internal/legality (check detection) depend on, kept here rather
// than in internal/legality to avoid an apply<->legality import cycle.
func AttackersTo(b *board.Board, sq board.Square, color board.Color) []Attacker {
	var out []Attacker
	for _, occ := range b.PiecesOf(color) {
		for _, m := range normalMoves(b, occ.Square) {
			if m.To == sq && m.IsCapture() {
				out = append(out, Attacker{Square: occ.Square, Piece: *occ.Piece})
				break
			}
		}
	}
	return out
}

// IsAttacked reports whether sq is attacked by any piece of color.
func IsAttacked(b *board.Board, sq board.Square, color board.Color) bool {
	for _, occ := range b.PiecesOf(color) {
		for _, m := range normalMoves(b, occ.Square) {
			if m.To == sq && m.IsCapture() {
				return true
			}
		}
	}
	return false
}

// normalMoves returns GenerateForPiece's moves for the piece at from
// minus the flying-general capture, which GenerateForPiece appends last.
func normalMoves(b *board.Board, from board.Square) []board.InternalMove {
	moves := GenerateForPiece(b, nil, from)
	if p := b.Get(from); p != nil && p.Kind == board.Commander {
		if _, ok := flyingGeneralCapture(b, from, *p); ok {
			moves = moves[:len(moves)-1]
		}
	}
	return moves
}
