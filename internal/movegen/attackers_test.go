package movegen

import (
	"testing"

	"github.com/mnoyd/cotulenh/internal/board"
)

func TestAttackersToFindsCapturingPiece(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))
	b.Put(sq("e6"), board.NewPiece(board.Infantry, board.Blue))

	attackers := AttackersTo(b, sq("e6"), board.Red)
	if len(attackers) != 1 {
		t.Fatalf("expected exactly one attacker, got %d", len(attackers))
	}
	if attackers[0].Square != sq("e5") {
		t.Errorf("expected the Tank at e5 as the attacker, got %s", attackers[0].Square)
	}
}

func TestAttackersToIgnoresNonCaptureReach(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))

	attackers := AttackersTo(b, sq("e6"), board.Red)
	if len(attackers) != 0 {
		t.Fatalf("an empty square is not under attack, got %d attackers", len(attackers))
	}
}

func TestIsAttackedMatchesAttackersTo(t *testing.T) {
	b := board.NewBoard()
	b.Put(sq("e5"), board.NewPiece(board.Tank, board.Red))
	b.Put(sq("e6"), board.NewPiece(board.Infantry, board.Blue))

	if !IsAttacked(b, sq("e6"), board.Red) {
		t.Error("e6 should be reported as attacked by Red")
	}
	if IsAttacked(b, sq("e6"), board.Blue) {
		t.Error("e6 should not be attacked by Blue's own Infantry")
	}
}
