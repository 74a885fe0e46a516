package board

import "testing"

func TestComputeHashIndependentOfConstructionOrder(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	a.Put(sq("d2"), NewPiece(Infantry, Blue))

	bd := NewBoard()
	bd.Put(sq("d2"), NewPiece(Infantry, Blue))
	bd.Put(sq("c1"), NewPiece(Tank, Red))

	if ComputeHash(a) != ComputeHash(bd) {
		t.Fatal("hash must depend only on resulting state, not construction order")
	}
}

func TestComputeHashDiffersBySideToMove(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	a.Turn = Red
	hRed := ComputeHash(a)
	a.Turn = Blue
	hBlue := ComputeHash(a)
	if hRed == hBlue {
		t.Fatal("side to move must affect the hash")
	}
}

func TestComputeHashDiffersByOccupant(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	h1 := ComputeHash(a)

	bd := NewBoard()
	bd.Put(sq("c1"), NewPiece(Infantry, Red))
	h2 := ComputeHash(bd)

	if h1 == h2 {
		t.Fatal("different piece kinds at the same square must produce different hashes")
	}
}

func TestComputeHashDiffersByHeroicFlag(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	h1 := ComputeHash(a)

	heroic := NewPiece(Tank, Red)
	heroic.Heroic = true
	bd := NewBoard()
	bd.Put(sq("c1"), heroic)
	h2 := ComputeHash(bd)

	if h1 == h2 {
		t.Fatal("heroic status must affect the hash")
	}
}

func TestComputeHashDiffersByCarriedPiece(t *testing.T) {
	navy := NewPiece(Navy, Red)
	air := NewPiece(AirForce, Red)
	stack, ok := FormStack(navy, air)
	if !ok {
		t.Fatal("setup: expected Navy to carry AirForce")
	}

	a := NewBoard()
	a.Put(sq("a1"), stack)
	h1 := ComputeHash(a)

	bd := NewBoard()
	bd.Put(sq("a1"), navy)
	h2 := ComputeHash(bd)

	if h1 == h2 {
		t.Fatal("a carried piece must affect the hash, not just the carrier")
	}
}

func TestComputeHashDiffersByActiveDeploySession(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	h1 := ComputeHash(a)

	a.DeploySession = &DeploySession{Origin: sq("c1"), Color: Red}
	h2 := ComputeHash(a)

	if h1 == h2 {
		t.Fatal("an active deploy session must affect the hash")
	}
}

func TestComputeHashStableAcrossRepeatedCalls(t *testing.T) {
	a := NewBoard()
	a.Put(sq("c1"), NewPiece(Tank, Red))
	a.Put(sq("d2"), NewPiece(Infantry, Blue))

	h1 := ComputeHash(a)
	h2 := ComputeHash(a)
	if h1 != h2 {
		t.Fatal("repeated calls against an unchanged board must be stable")
	}
}
