package movegen

import (
	"sort"

	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/terrain"
)

// directionSet returns the offsets to scan for a piece with the given
// config: orthogonal always, diagonal too if the config (possibly
// heroic-upgraded) allows it.
func directionSet(c Config) []int {
	dirs := append([]int{}, board.OrthogonalDirections[:]...)
	if c.Diagonal {
		dirs = append(dirs, board.DiagonalDirections[:]...)
	}
	return dirs
}

// GenerateForPiece produces every pseudo-legal move for the piece sitting
// at from by walking each of its movement directions as a ray. field may
// be nil when generating for a color with no AirForce in motion to worry
// about; the caller (GenerateAll) always supplies a fresh one.
func GenerateForPiece(b *board.Board, field *terrain.Field, from board.Square) []board.InternalMove {
	p := b.Get(from)
	if p == nil {
		return nil
	}
	cfg := ConfigFor(p.Kind, p.Heroic)
	var moves []board.InternalMove

	for _, dir := range directionSet(cfg) {
		diagonal := isDiagonal(dir)
		limit := cfg.rangeForDirection(diagonal)
		moves = append(moves, walkRay(b, field, from, *p, dir, cfg, limit)...)
	}

	if p.Kind == board.Commander {
		if m, ok := flyingGeneralCapture(b, from, *p); ok {
			moves = append(moves, m)
		}
	}
	if (p.Kind == board.Militia || (p.Kind == board.Headquarter && p.Heroic)) && !cfg.Diagonal {
		moves = append(moves, militiaDiagonals(b, field, from, *p, cfg)...)
	}

	return moves
}

func isDiagonal(offset int) bool {
	switch offset {
	case board.OffsetNorthEast, board.OffsetNorthWest, board.OffsetSouthEast, board.OffsetSouthWest:
		return true
	default:
		return false
	}
}

// walkRay scans one direction from `from`, emitting NORMAL/CAPTURE/
// STAY_CAPTURE/SUICIDE_CAPTURE/COMBINATION moves as terrain and occupants
// along the ray dictate. Past the first occupied square, a piece whose
// captures ignore blocking keeps scanning for captures only, unless its
// moves ignore blocking too.
func walkRay(b *board.Board, field *terrain.Field, from board.Square, piece board.Piece, dir int, cfg Config, limit int) []board.InternalMove {
	var out []board.InternalMove
	cur := from
	blocked := false
	for step := 1; step <= limit; step++ {
		next, ok := board.Step(cur, dir)
		if !ok {
			break
		}
		cur = next

		canReside := board.CanReside(piece.Kind, cur)
		airforceInMotion := piece.Kind == board.AirForce && cfg.MoveIgnoresBlocking

		if !canReside && !airforceInMotion {
			break
		}

		if piece.Kind == board.Artillery || piece.Kind == board.AntiAir || piece.Kind == board.Missile {
			if board.CrossesHeavyZoneBoundary(from, cur) && !board.IsBridgeFile(cur.File()) {
				target := b.Get(cur)
				if target == nil || target.Color == piece.Color {
					break
				}
				// captures across the river are permitted at the first enemy target regardless of file
			}
		}

		if piece.Kind == board.AirForce && field != nil && field.Evaluate(cur, piece.Color) == terrain.Forbidden {
			break
		}

		target := b.Get(cur)

		switch {
		case target == nil:
			if step <= cfg.MoveRange && canReside && !blocked {
				out = append(out, board.InternalMove{From: from, To: cur, Piece: piece, Flags: board.NORMAL})
			}
			continue

		case target.Color != piece.Color:
			if step > cfg.CaptureRange {
				if !cfg.CaptureIgnoresBlocking {
					return out
				}
				blocked = !cfg.MoveIgnoresBlocking
				continue
			}
			captured := target.Clone()
			if canReside {
				m := board.InternalMove{From: from, To: cur, Piece: piece, Captured: &captured, Flags: board.CAPTURE}
				if piece.Kind == board.AirForce && field != nil {
					switch field.Evaluate(cur, piece.Color) {
					case terrain.Forbidden:
						m = board.InternalMove{}
					case terrain.SuicideIfCapture:
						m.Flags = board.SUICIDE_CAPTURE
					}
				}
				if !m.IsNoMove() {
					out = append(out, m)
					if piece.Kind == board.AirForce {
						stay := m
						stay.Flags = board.STAY_CAPTURE
						out = append(out, stay)
					}
				}
			} else {
				out = append(out, board.InternalMove{From: from, To: cur, Piece: piece, Captured: &captured, Flags: board.STAY_CAPTURE})
			}
			if !cfg.CaptureIgnoresBlocking {
				return out
			}
			blocked = !cfg.MoveIgnoresBlocking

		default: // friendly
			if !blocked {
				if merged, ok := board.FormStack(piece, *target); ok {
					mc := merged
					out = append(out, board.InternalMove{From: from, To: cur, Piece: piece, Combined: &mc, Flags: board.COMBINATION})
				}
			}
			if !cfg.CaptureIgnoresBlocking {
				return out
			}
			blocked = !cfg.MoveIgnoresBlocking
		}
	}
	return out
}

// flyingGeneralCapture emits the special flying-general capture: if the
// commander at from shares a file/rank with the enemy commander and every
// intervening square is empty, it may capture it regardless of range.
func flyingGeneralCapture(b *board.Board, from board.Square, commander board.Piece) (board.InternalMove, bool) {
	enemy := commander.Color.Other()
	target := b.CommanderSquare(enemy)
	if target == board.NoSquare || !board.Orthogonal(from, target) {
		return board.InternalMove{}, false
	}
	dir := directionTo(from, target)
	if dir == 0 {
		return board.InternalMove{}, false
	}
	cur := from
	for {
		next, ok := board.Step(cur, dir)
		if !ok {
			return board.InternalMove{}, false
		}
		cur = next
		if cur == target {
			break
		}
		if b.Get(cur) != nil {
			return board.InternalMove{}, false
		}
	}
	captured := board.NewPiece(board.Commander, enemy)
	return board.InternalMove{From: from, To: target, Piece: commander, Captured: &captured, Flags: board.CAPTURE}, true
}

func directionTo(from, to board.Square) int {
	switch {
	case from.File() == to.File() && to.Rank() > from.Rank():
		return board.OffsetNorth
	case from.File() == to.File() && to.Rank() < from.Rank():
		return board.OffsetSouth
	case from.Rank() == to.Rank() && to.File() > from.File():
		return board.OffsetEast
	case from.Rank() == to.Rank() && to.File() < from.File():
		return board.OffsetWest
	default:
		return 0
	}
}

// militiaDiagonals adds the 4 diagonal 1-step targets for Militia and a
// heroic Headquarter.
func militiaDiagonals(b *board.Board, field *terrain.Field, from board.Square, piece board.Piece, cfg Config) []board.InternalMove {
	var out []board.InternalMove
	for _, dir := range board.DiagonalDirections {
		to, ok := board.Step(from, dir)
		if !ok || !board.CanReside(piece.Kind, to) {
			continue
		}
		target := b.Get(to)
		switch {
		case target == nil:
			out = append(out, board.InternalMove{From: from, To: to, Piece: piece, Flags: board.NORMAL})
		case target.Color != piece.Color:
			captured := target.Clone()
			out = append(out, board.InternalMove{From: from, To: to, Piece: piece, Captured: &captured, Flags: board.CAPTURE})
		default:
			if merged, ok := board.FormStack(piece, *target); ok {
				mc := merged
				out = append(out, board.InternalMove{From: from, To: to, Piece: piece, Combined: &mc, Flags: board.COMBINATION})
			}
		}
	}
	return out
}

// GenerateAll produces every pseudo-legal move (stack moves, deploy
// sub-moves, combination moves) for color, deterministically ordered by
// (from, to, piece-kind, flag-bitmask).
func GenerateAll(b *board.Board, color board.Color) []board.InternalMove {
	field := terrain.Compute(b)
	var all []board.InternalMove

	if b.DeploySession != nil && b.DeploySession.Color == color {
		all = append(all, GenerateDeploy(b, field, b.DeploySession.Origin)...)
	} else {
		for _, occ := range b.PiecesOf(color) {
			all = append(all, GenerateForPiece(b, field, occ.Square)...)
			if occ.Piece.IsStack() {
				all = append(all, GenerateDeploy(b, field, occ.Square)...)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		a, bb := all[i], all[j]
		if a.From != bb.From {
			return a.From < bb.From
		}
		if a.To != bb.To {
			return a.To < bb.To
		}
		if a.Piece.Kind != bb.Piece.Kind {
			return a.Piece.Kind < bb.Piece.Kind
		}
		return a.Flags < bb.Flags
	})
	return all
}
