package board

import "testing"

func TestFormStackNavyCarriesAirForceAndTank(t *testing.T) {
	navy := NewPiece(Navy, Red)
	air := NewPiece(AirForce, Red)

	merged, ok := FormStack(navy, air)
	if !ok {
		t.Fatal("expected Navy to carry AirForce")
	}
	if merged.Kind != Navy || len(merged.Carrying) != 1 || merged.Carrying[0].Kind != AirForce {
		t.Fatalf("unexpected stack: %+v", merged)
	}

	tank := NewPiece(Tank, Red)
	merged2, ok := FormStack(merged, tank)
	if !ok {
		t.Fatal("expected Navy(AirForce) to also carry Tank")
	}
	if merged2.FlattenLen() != 3 {
		t.Fatalf("expected 3 flattened pieces, got %d", merged2.FlattenLen())
	}

	third := NewPiece(Infantry, Red)
	if _, ok := FormStack(merged2, third); ok {
		t.Fatal("Navy's two slots (AirForce, land-unit) are full; a third piece must not combine")
	}
}

func TestFormStackOppositeColorRejected(t *testing.T) {
	navy := NewPiece(Navy, Red)
	enemyTank := NewPiece(Tank, Blue)
	if _, ok := FormStack(navy, enemyTank); ok {
		t.Fatal("pieces of different colors must never combine")
	}
}

func TestFormStackCarrierOrderPreservesPriorThenAbsorbed(t *testing.T) {
	navy := NewPiece(Navy, Red)
	air := NewPiece(AirForce, Red)
	tank := NewPiece(Tank, Red)

	stack, ok := FormStack(navy, air)
	if !ok {
		t.Fatal("expected Navy to carry AirForce")
	}
	stack2, ok := FormStack(stack, tank)
	if !ok {
		t.Fatal("expected Navy(AirForce) to also carry Tank")
	}
	if len(stack2.Carrying) != 2 || stack2.Carrying[0].Kind != AirForce || stack2.Carrying[1].Kind != Tank {
		t.Fatalf("expected carried order [AirForce, Tank], got %+v", stack2.Carrying)
	}
}

func TestRemoveFromStackPromotesFirstCarried(t *testing.T) {
	navy := NewPiece(Navy, Red)
	navy.Heroic = true
	air := NewPiece(AirForce, Red)
	tank := NewPiece(Tank, Red)
	tank.Heroic = true

	stack, ok := FormStack(navy, air)
	if !ok {
		t.Fatal("setup: expected Navy to carry AirForce")
	}
	stack, ok = FormStack(stack, tank)
	if !ok {
		t.Fatal("setup: expected Navy(AirForce) to also carry Tank")
	}

	result, found := RemoveFromStack(stack, Navy)
	if !found {
		t.Fatal("expected Navy to be found as the carrier")
	}
	if result == nil {
		t.Fatal("expected a promoted carrier, not an empty stack")
	}
	if result.Kind != AirForce {
		t.Fatalf("expected AirForce to be promoted to carrier, got %s", result.Kind)
	}
	if result.Heroic {
		t.Fatal("the promoted carrier keeps its OWN heroic flag, not the removed carrier's")
	}
	if len(result.Carrying) != 1 || result.Carrying[0].Kind != Tank {
		t.Fatalf("expected Tank to remain carried, got %+v", result.Carrying)
	}
}

func TestRemoveFromStackLastPieceDestroysStack(t *testing.T) {
	bare := NewPiece(Infantry, Red)
	result, found := RemoveFromStack(bare, Infantry)
	if !found {
		t.Fatal("expected the bare piece itself to be found")
	}
	if result != nil {
		t.Fatal("removing the only piece in a non-stack must leave nothing behind")
	}
}

func TestRemoveFromStackKindNotPresent(t *testing.T) {
	tank := NewPiece(Tank, Red)
	_, found := RemoveFromStack(tank, Navy)
	if found {
		t.Fatal("Navy is not part of this stack; found must be false")
	}
}

func TestValidStackRespectsCapacity(t *testing.T) {
	navy := NewPiece(Navy, Red)
	if !ValidStack(navy) {
		t.Fatal("a bare Navy is trivially valid")
	}
	overfull := NewPiece(Navy, Red)
	overfull.Carrying = []Piece{NewPiece(AirForce, Red), NewPiece(Tank, Red), NewPiece(Infantry, Red)}
	if ValidStack(overfull) {
		t.Fatal("Navy only has 2 slots; 3 carried pieces must be invalid")
	}
}
