package board

import "testing"

func sq(alg string) Square {
	s, err := ParseSquare(alg)
	if err != nil {
		panic(err)
	}
	return s
}

func TestToSANBasicForms(t *testing.T) {
	tank := NewPiece(Tank, Red)
	normal := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Flags: NORMAL}
	if got := ToSAN(normal, []InternalMove{normal}, false, false); got != "Ta2" {
		t.Errorf("normal move: got %q, want %q", got, "Ta2")
	}

	captured := NewPiece(Infantry, Blue)
	capture := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Captured: &captured, Flags: CAPTURE}
	if got := ToSAN(capture, []InternalMove{capture}, false, false); got != "Txa2" {
		t.Errorf("capture: got %q, want %q", got, "Txa2")
	}

	stay := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Captured: &captured, Flags: STAY_CAPTURE}
	if got := ToSAN(stay, []InternalMove{stay}, false, false); got != "T_a2" {
		t.Errorf("stay-capture: got %q, want %q", got, "T_a2")
	}

	suicide := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Captured: &captured, Flags: SUICIDE_CAPTURE}
	if got := ToSAN(suicide, []InternalMove{suicide}, false, false); got != "T@a2" {
		t.Errorf("suicide-capture: got %q, want %q", got, "T@a2")
	}

	combined := NewPiece(Tank, Red)
	combined.Carrying = []Piece{NewPiece(Infantry, Red)}
	combo := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Combined: &combined, Flags: COMBINATION}
	if got := ToSAN(combo, []InternalMove{combo}, false, false); got != "T&a2(TI)" {
		t.Errorf("combination: got %q, want %q", got, "T&a2(TI)")
	}

	deploy := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Flags: NORMAL | DEPLOY}
	if got := ToSAN(deploy, []InternalMove{deploy}, false, false); got != ">Ta2" {
		t.Errorf("deploy: got %q, want %q", got, ">Ta2")
	}
}

func TestToSANCheckAndMateSuffix(t *testing.T) {
	tank := NewPiece(Tank, Red)
	m := InternalMove{From: sq("a1"), To: sq("a2"), Piece: tank, Flags: NORMAL}
	if got := ToSAN(m, []InternalMove{m}, true, false); got != "Ta2+" {
		t.Errorf("check suffix: got %q, want %q", got, "Ta2+")
	}
	if got := ToSAN(m, []InternalMove{m}, true, true); got != "Ta2#" {
		t.Errorf("mate suffix: got %q, want %q", got, "Ta2#")
	}
}

func TestToSANDisambiguatesByFileThenRank(t *testing.T) {
	tankA := NewPiece(Tank, Red)
	a1a3 := InternalMove{From: sq("a1"), To: sq("a3"), Piece: tankA, Flags: NORMAL}
	c1a3 := InternalMove{From: sq("c1"), To: sq("a3"), Piece: tankA, Flags: NORMAL}
	legal := []InternalMove{a1a3, c1a3}

	if got := ToSAN(a1a3, legal, false, false); got != "Taa3" {
		t.Errorf("file disambiguation: got %q, want %q", got, "Taa3")
	}

	a1a3b := InternalMove{From: sq("a1"), To: sq("a3"), Piece: tankA, Flags: NORMAL}
	a1c3 := InternalMove{From: sq("c3"), To: sq("a3"), Piece: tankA, Flags: NORMAL}
	legal2 := []InternalMove{a1a3b, a1c3}
	// Same file (a), different rank (1 vs 5): rank disambiguation required.
	a1c3.From = sq("a5")
	legal2 = []InternalMove{a1a3b, a1c3}
	if got := ToSAN(a1a3b, legal2, false, false); got != "T1a3" {
		t.Errorf("rank disambiguation: got %q, want %q", got, "T1a3")
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	tank := NewPiece(Tank, Red)
	captured := NewPiece(Infantry, Blue)
	legal := []InternalMove{
		{From: sq("a1"), To: sq("a2"), Piece: tank, Flags: NORMAL},
		{From: sq("a1"), To: sq("b2"), Piece: tank, Captured: &captured, Flags: CAPTURE},
	}

	for _, want := range legal {
		san := ToSAN(want, legal, false, false)
		got, err := ParseSAN(san, legal)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", san, err)
		}
		if got.From != want.From || got.To != want.To || got.Flags != want.Flags {
			t.Errorf("round trip mismatch for %q: got %+v, want %+v", san, got, want)
		}
	}
}

func TestParseSANUnknownMoveIsError(t *testing.T) {
	tank := NewPiece(Tank, Red)
	legal := []InternalMove{{From: sq("a1"), To: sq("a2"), Piece: tank, Flags: NORMAL}}
	if _, err := ParseSAN("Ta9", legal); err == nil {
		t.Fatal("expected an error for a move with no legal match")
	}
}
