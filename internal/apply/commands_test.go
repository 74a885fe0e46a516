package apply

import (
	"testing"

	"github.com/mnoyd/cotulenh/internal/board"
)

func sq(alg string) board.Square {
	s, err := board.ParseSquare(alg)
	if err != nil {
		panic(err)
	}
	return s
}

func fenOf(t *testing.T, b *board.Board) string {
	t.Helper()
	return b.ToFEN()
}

func TestNormalMoveCommandExecuteThenUndoRestoresState(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))
	before := fenOf(t, b)

	move := board.InternalMove{From: sq("e5"), To: sq("e6"), Piece: board.NewPiece(board.Tank, board.Red), Flags: board.NORMAL}
	cmd := NewNormalMoveCommand(move, false)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Get(sq("e6")) == nil || b.Get(sq("e5")) != nil {
		t.Fatal("expected the piece to have relocated to e6")
	}
	if b.Turn != board.Blue {
		t.Error("a normal move must flip the turn")
	}

	cmd.Undo(b)
	if fenOf(t, b) != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", fenOf(t, b), before)
	}
}

func TestCaptureMoveCommandRemovesCapturedAndResetsHalfMoves(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))
	captured := board.NewPiece(board.Infantry, board.Blue)
	b.Put(sq("e6"), captured)
	b.HalfMoves = 10
	before := fenOf(t, b)

	move := board.InternalMove{
		From: sq("e5"), To: sq("e6"), Piece: board.NewPiece(board.Tank, board.Red),
		Captured: &captured, Flags: board.CAPTURE,
	}
	cmd := NewCaptureMoveCommand(move, false)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.HalfMoves != 0 {
		t.Errorf("a capture must reset the half-move clock, got %d", b.HalfMoves)
	}
	got := b.Get(sq("e6"))
	if got == nil || got.Kind != board.Tank {
		t.Fatal("expected the Tank to occupy e6 after the capture")
	}

	cmd.Undo(b)
	if fenOf(t, b) != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", fenOf(t, b), before)
	}
}

func TestStayCaptureCommandLeavesMoverAtOrigin(t *testing.T) {
	b := board.NewBoard()
	mover := board.NewPiece(board.Navy, board.Red)
	b.Put(sq("c6"), mover)
	captured := board.NewPiece(board.Infantry, board.Blue)
	b.Put(sq("d6"), captured)
	before := fenOf(t, b)

	move := board.InternalMove{From: sq("c6"), To: sq("d6"), Piece: mover, Captured: &captured, Flags: board.STAY_CAPTURE}
	cmd := NewStayCaptureCommand(move, false)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Get(sq("c6")) == nil {
		t.Error("stay-capture must leave the mover at its origin square")
	}
	if b.Get(sq("d6")) != nil {
		t.Error("stay-capture must remove the captured piece from the target square")
	}

	cmd.Undo(b)
	if fenOf(t, b) != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", fenOf(t, b), before)
	}
}

func TestSuicideCaptureCommandRemovesBothPieces(t *testing.T) {
	b := board.NewBoard()
	mover := board.NewPiece(board.AirForce, board.Red)
	b.Put(sq("f6"), mover)
	captured := board.NewPiece(board.Infantry, board.Blue)
	b.Put(sq("f7"), captured)
	before := fenOf(t, b)

	move := board.InternalMove{From: sq("f6"), To: sq("f7"), Piece: mover, Captured: &captured, Flags: board.SUICIDE_CAPTURE}
	cmd := NewSuicideCaptureCommand(move, false)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Get(sq("f6")) != nil || b.Get(sq("f7")) != nil {
		t.Fatal("a suicide capture must remove both the attacker and the defender")
	}

	cmd.Undo(b)
	if fenOf(t, b) != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", fenOf(t, b), before)
	}
}

func TestCombinationCommandMergesIntoTargetStack(t *testing.T) {
	b := board.NewBoard()
	navy := board.NewPiece(board.Navy, board.Red)
	air := board.NewPiece(board.AirForce, board.Red)
	b.Put(sq("b6"), navy)
	b.Put(sq("c6"), air)
	before := fenOf(t, b)

	merged, ok := board.FormStack(navy, air)
	if !ok {
		t.Fatal("setup: expected Navy to carry AirForce")
	}
	move := board.InternalMove{From: sq("b6"), To: sq("c6"), Piece: navy, Combined: &merged, Flags: board.COMBINATION}
	cmd := NewCombinationCommand(move, false)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Get(sq("b6")) != nil {
		t.Error("the mover must leave its origin square")
	}
	result := b.Get(sq("c6"))
	if result == nil || result.Kind != board.Navy || len(result.Carrying) != 1 {
		t.Fatalf("expected a merged Navy stack at c6, got %+v", result)
	}

	cmd.Undo(b)
	if fenOf(t, b) != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", fenOf(t, b), before)
	}
}

func TestCheckAndPromoteAttackersActionPromotesNonHeroicAttacker(t *testing.T) {
	b := board.NewBoard()
	tank := board.NewPiece(board.Tank, board.Red)
	b.Put(sq("e5"), tank)
	b.Put(sq("e6"), board.NewPiece(board.Commander, board.Blue))
	b.Commander[board.Blue] = sq("e6")

	action := &CheckAndPromoteAttackersAction{EnemyColor: board.Blue}
	if err := action.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	p := b.Get(sq("e5"))
	if p == nil || !p.Heroic {
		t.Fatal("a Tank attacking the enemy commander must be promoted to heroic")
	}

	action.Undo(b)
	p = b.Get(sq("e5"))
	if p == nil || p.Heroic {
		t.Fatal("undo must revert the heroic promotion")
	}
}

func TestIsTestingSuppressesHistoryAndPromotion(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))
	move := board.InternalMove{From: sq("e5"), To: sq("e6"), Piece: board.NewPiece(board.Tank, board.Red), Flags: board.NORMAL}

	cmd := NewNormalMoveCommand(move, true)
	if err := cmd.Execute(b); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(b.History) != 0 {
		t.Error("isTesting must suppress history pushes")
	}
	cmd.Undo(b)
}
