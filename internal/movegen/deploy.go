package movegen

import (
	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/terrain"
)

// GenerateDeploy produces DEPLOY-flagged pseudo-legal moves for each
// not-yet-deployed piece flattened out of the stack at origin. If a
// session is already active at a different square, callers must not
// invoke this for origin — GenerateAll already enforces that by only ever
// calling it for the active session's own square.
func GenerateDeploy(b *board.Board, field *terrain.Field, origin board.Square) []board.InternalMove {
	stack := b.Get(origin)
	if stack == nil || !stack.IsStack() {
		return nil
	}

	remaining := remainingPieces(b, origin, *stack)

	var out []board.InternalMove
	for _, sub := range remaining {
		subCfg := ConfigFor(sub.Kind, sub.Heroic)
		for _, dir := range directionSet(subCfg) {
			diagonal := isDiagonal(dir)
			limit := subCfg.rangeForDirection(diagonal)
			for _, m := range walkRay(b, field, origin, sub, dir, subCfg, limit) {
				m.Flags |= board.DEPLOY
				out = append(out, m)
			}
		}
	}
	return out
}

// remainingPieces returns the flattened pieces of the stack at origin not
// yet dispatched this deploy session.
func remainingPieces(b *board.Board, origin board.Square, stack board.Piece) []board.Piece {
	if b.DeploySession != nil && b.DeploySession.Origin == origin {
		return append([]board.Piece(nil), b.DeploySession.Remaining...)
	}
	return stack.Flatten()
}
