package movegen

import (
	"testing"

	"github.com/mnoyd/cotulenh/internal/board"
)

func TestGenerateDeployFlagsEachFlattenedPiece(t *testing.T) {
	b := board.NewBoard()
	navy := board.NewPiece(board.Navy, board.Red)
	tank := board.NewPiece(board.Tank, board.Red)
	stack, ok := board.FormStack(navy, tank)
	if !ok {
		t.Fatal("setup: expected Navy to carry Tank")
	}
	origin := sq("c6")
	b.Put(origin, stack)

	moves := GenerateDeploy(b, nil, origin)
	if len(moves) == 0 {
		t.Fatal("expected deploy sub-moves for a two-piece stack")
	}

	seenKinds := map[board.PieceKind]bool{}
	for _, m := range moves {
		if !m.Flags.Has(board.DEPLOY) {
			t.Errorf("every generated move must carry the DEPLOY flag, got %+v", m)
		}
		seenKinds[m.Piece.Kind] = true
	}
	if !seenKinds[board.Navy] || !seenKinds[board.Tank] {
		t.Errorf("expected sub-moves for both Navy and Tank, got kinds %+v", seenKinds)
	}
}

func TestGenerateDeployRespectsActiveSessionRemaining(t *testing.T) {
	b := board.NewBoard()
	navy := board.NewPiece(board.Navy, board.Red)
	tank := board.NewPiece(board.Tank, board.Red)
	stack, ok := board.FormStack(navy, tank)
	if !ok {
		t.Fatal("setup: expected Navy to carry Tank")
	}
	origin := sq("c6")
	b.Put(origin, stack)
	b.DeploySession = &board.DeploySession{
		Origin:    origin,
		Color:     board.Red,
		Original:  stack,
		Remaining: []board.Piece{tank},
	}

	moves := GenerateDeploy(b, nil, origin)
	for _, m := range moves {
		if m.Piece.Kind != board.Tank {
			t.Errorf("an active session with only Tank remaining must not yield a %s sub-move", m.Piece.Kind)
		}
	}
}
