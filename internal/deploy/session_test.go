package deploy

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

func twoCarrierStack(t *testing.T) (board.Piece, board.Piece, board.Piece) {
	t.Helper()
	navy := board.NewPiece(board.Navy, board.Red)
	air := board.NewPiece(board.AirForce, board.Red)
	tank := board.NewPiece(board.Tank, board.Red)
	stack, ok := board.FormStack(navy, air)
	if !ok {
		t.Fatal("setup: Navy must carry AirForce")
	}
	stack, ok = board.FormStack(stack, tank)
	if !ok {
		t.Fatal("setup: Navy(AirForce) must also carry Tank")
	}
	return stack, air, tank
}

func TestDispatchStartsSessionLazily(t *testing.T) {
	b := board.NewBoard()
	stack, air, _ := twoCarrierStack(t)
	origin := sq("c6")
	b.Put(origin, stack)

	move := board.InternalMove{From: origin, To: sq("g6"), Piece: air, Flags: board.NORMAL | board.DEPLOY}
	cmd, err := Dispatch(b, move, false)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if b.DeploySession == nil {
		t.Fatal("expected a lazily-started session after the first sub-move")
	}
	if b.DeploySession.Origin != origin {
		t.Errorf("expected session origin %s, got %s", origin, b.DeploySession.Origin)
	}
	if cmd.Committed {
		t.Error("a session with pieces still remaining must not auto-commit")
	}
	if b.Get(sq("g6")) == nil {
		t.Error("expected AirForce to have landed at g6")
	}
}

func TestDispatchAutoCommitsWhenStackFullyDeployed(t *testing.T) {
	b := board.NewBoard()
	navy := board.NewPiece(board.Navy, board.Red)
	tank := board.NewPiece(board.Tank, board.Red)
	stack, ok := board.FormStack(navy, tank)
	if !ok {
		t.Fatal("setup: Navy must carry Tank")
	}
	origin := sq("c6")
	b.Put(origin, stack)
	b.Turn = board.Red

	moveTank := board.InternalMove{From: origin, To: sq("g6"), Piece: tank, Flags: board.NORMAL | board.DEPLOY}
	cmd1, err := Dispatch(b, moveTank, false)
	if err != nil {
		t.Fatalf("Dispatch (tank): %v", err)
	}
	if cmd1.Committed {
		t.Fatal("one of two pieces deployed: session must still be open")
	}

	moveNavy := board.InternalMove{From: origin, To: sq("b6"), Piece: navy, Flags: board.NORMAL | board.DEPLOY}
	cmd2, err := Dispatch(b, moveNavy, false)
	if err != nil {
		t.Fatalf("Dispatch (navy): %v", err)
	}
	if !cmd2.Committed {
		t.Fatal("the last piece of the stack deployed: session must auto-commit")
	}
	if b.DeploySession != nil {
		t.Error("auto-commit must clear the active session")
	}
	if b.Turn != board.Blue {
		t.Error("auto-commit must flip the turn")
	}
}

func TestSessionCommandUndoRestoresBoard(t *testing.T) {
	b := board.NewBoard()
	stack, air, _ := twoCarrierStack(t)
	origin := sq("c6")
	b.Put(origin, stack)
	before := b.ToFEN()

	move := board.InternalMove{From: origin, To: sq("g6"), Piece: air, Flags: board.NORMAL | board.DEPLOY}
	cmd, err := Dispatch(b, move, false)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	cmd.Undo(b)

	if b.ToFEN() != before {
		t.Fatalf("undo did not restore original state: got %q, want %q", b.ToFEN(), before)
	}
	if b.DeploySession != nil {
		t.Error("undo must clear the lazily-started session")
	}
}

func TestExplicitCommitLeavesResidueAndFlipsTurn(t *testing.T) {
	b := board.NewBoard()
	stack, air, _ := twoCarrierStack(t)
	origin := sq("c6")
	b.Put(origin, stack)
	b.Turn = board.Red

	move := board.InternalMove{From: origin, To: sq("g6"), Piece: air, Flags: board.NORMAL | board.DEPLOY}
	if _, err := Dispatch(b, move, false); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	cmd, err := ExplicitCommit(b)
	if err != nil {
		t.Fatalf("ExplicitCommit: %v", err)
	}
	if b.DeploySession != nil {
		t.Error("explicit commit must clear the session")
	}
	if b.Turn != board.Blue {
		t.Error("explicit commit must flip the turn")
	}
	residue := b.Get(origin)
	if residue == nil || residue.Kind != board.Navy {
		t.Fatalf("expected a Navy(Tank) residue left at origin, got %+v", residue)
	}

	cmd.Undo(b)
	if b.Turn != board.Red {
		t.Error("undoing the commit must restore the prior turn")
	}
}

func TestExplicitCommitFailsWithNoActiveSession(t *testing.T) {
	b := board.NewBoard()
	if _, err := ExplicitCommit(b); err == nil {
		t.Fatal("expected an error committing with no active session")
	}
}

func TestCancelUndoesEverySubMove(t *testing.T) {
	b := board.NewBoard()
	stack, air, tank := twoCarrierStack(t)
	origin := sq("c6")
	b.Put(origin, stack)
	before := b.ToFEN()

	moveAir := board.InternalMove{From: origin, To: sq("g6"), Piece: air, Flags: board.NORMAL | board.DEPLOY}
	cmd1, err := Dispatch(b, moveAir, false)
	if err != nil {
		t.Fatalf("Dispatch (air): %v", err)
	}
	moveTank := board.InternalMove{From: origin, To: sq("f7"), Piece: tank, Flags: board.NORMAL | board.DEPLOY}
	cmd2, err := Dispatch(b, moveTank, false)
	if err != nil {
		t.Fatalf("Dispatch (tank): %v", err)
	}

	Cancel(b, []*SessionCommand{cmd1, cmd2})
	if b.ToFEN() != before {
		t.Fatalf("Cancel did not restore original state: got %q, want %q", b.ToFEN(), before)
	}
}

func TestBatchRollsBackOnFailure(t *testing.T) {
	b := board.NewBoard()
	stack, air, _ := twoCarrierStack(t)
	origin := sq("c6")
	b.Put(origin, stack)
	before := b.ToFEN()

	moveAir := board.InternalMove{From: origin, To: sq("g6"), Piece: air, Flags: board.NORMAL | board.DEPLOY}
	bogus := board.InternalMove{
		From: origin, To: sq("h6"),
		Piece: board.NewPiece(board.Commander, board.Red), // not part of this stack
		Flags: board.NORMAL | board.DEPLOY,
	}

	_, err := Batch(b, []board.InternalMove{moveAir, bogus}, false)
	if err == nil {
		t.Fatal("expected the batch to fail on the bogus second sub-move")
	}
	if b.ToFEN() != before {
		t.Fatalf("a failed batch must roll back entirely: got %q, want %q", b.ToFEN(), before)
	}
}
