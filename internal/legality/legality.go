// Package legality filters pseudo-legal moves down to legal ones: after
// simulating a move, the mover's commander must still exist, must not be
// attacked, and must not be exposed to the enemy commander across a clear
// orthogonal line, via a make-check-unmake pass generalized to this
// variant's flying-general exposure rule.
package legality

import (
	"github.com/mnoyd/cotulenh/internal/apply"
	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/deploy"
	"github.com/mnoyd/cotulenh/internal/movegen"
)

// undoer is satisfied by both apply.Command and deploy.SessionCommand, so
// simulate can treat a normal move and a deploy sub-move identically.
type undoer interface {
	Undo(b *board.Board)
}

// simulate applies move with isTesting=true, runs fn against the mutated
// board, and always undoes the move before returning fn's result: apply
// the compound command, check predicates, undo.
func simulate(b *board.Board, move board.InternalMove, fn func() bool) (bool, error) {
	var u undoer
	if move.Flags.Has(board.DEPLOY) {
		cmd, err := deploy.Dispatch(b, move, true)
		if err != nil {
			return false, err
		}
		u = cmd
	} else {
		cmd := apply.NewCommandForMove(move, true)
		if err := cmd.Execute(b); err != nil {
			return false, err
		}
		u = cmd
	}
	result := fn()
	u.Undo(b)
	return result, nil
}

// InCheck reports whether color's commander is currently attacked.
func InCheck(b *board.Board, color board.Color) bool {
	target := b.CommanderSquare(color)
	if target == board.NoSquare {
		return false
	}
	return movegen.IsAttacked(b, target, color.Other())
}

// IsExposed reports whether the two commanders face each other across a
// clear orthogonal line (the flying-general exposure rule), regardless of
// whose move produced it.
func IsExposed(b *board.Board) bool {
	red := b.CommanderSquare(board.Red)
	blue := b.CommanderSquare(board.Blue)
	if red == board.NoSquare || blue == board.NoSquare {
		return false
	}
	if !board.Orthogonal(red, blue) {
		return false
	}
	dir := directionTo(red, blue)
	if dir == 0 {
		return false
	}
	for cur := red; ; {
		next, ok := board.Step(cur, dir)
		if !ok {
			return false
		}
		cur = next
		if cur == blue {
			return true
		}
		if b.Get(cur) != nil {
			return false
		}
	}
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

// IsLegal reports whether move is legal for mover: after simulating it,
// mover's commander must survive, not be attacked, and not be exposed.
// Flying-general capture itself is exempt from the exposure check — it is
// legal as the move being considered, not subject to a post-move exposure
// check — since after that capture the enemy commander is gone and
// IsExposed trivially returns false anyway.
func IsLegal(b *board.Board, move board.InternalMove, mover board.Color) (bool, error) {
	return simulate(b, move, func() bool {
		if b.CommanderSquare(mover) == board.NoSquare {
			return false
		}
		if InCheck(b, mover) {
			return false
		}
		return !IsExposed(b)
	})
}

// LegalMoves filters GenerateAll's pseudo-legal list for mover down to
// legal moves only, consulting b.Cache first so repeated queries against
// the same position (and the same in-flight deploy session, if any) skip
// both the terrain/movegen walk and the make-check-unmake legality pass.
func LegalMoves(b *board.Board, mover board.Color) ([]board.InternalMove, error) {
	var digest uint64
	if b.Cache != nil {
		// Key on the position with mover to move, so a query for the side
		// not on move never shares an entry with one for the side on move.
		key := board.ComputeHash(b)
		if mover != b.Turn {
			key ^= board.ZobristSideToMove()
		}
		digest = board.Digest(key, b.DeploySession.Tag())
		if cached, ok := b.Cache.Get(digest); ok {
			return cached, nil
		}
	}

	pseudo := movegen.GenerateAll(b, mover)
	var out []board.InternalMove
	for _, m := range pseudo {
		ok, err := IsLegal(b, m, mover)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}

	if b.Cache != nil {
		b.Cache.Put(digest, out)
	}
	return out, nil
}

// Checkmate reports in_check(color) && no legal moves.
func Checkmate(b *board.Board, color board.Color) (bool, error) {
	if !InCheck(b, color) {
		return false, nil
	}
	moves, err := LegalMoves(b, color)
	if err != nil {
		return false, err
	}
	return len(moves) == 0, nil
}

// Stalemate reports !in_check(color) && no legal moves.
func Stalemate(b *board.Board, color board.Color) (bool, error) {
	if InCheck(b, color) {
		return false, nil
	}
	moves, err := LegalMoves(b, color)
	if err != nil {
		return false, err
	}
	return len(moves) == 0, nil
}

// IsDraw reports whether the position is drawn by the 50-move rule or
// threefold repetition.
func IsDraw(b *board.Board) bool {
	if b.HalfMoves >= 100 {
		return true
	}
	return b.PositionCount[board.ComputeHash(b)] >= 3
}
