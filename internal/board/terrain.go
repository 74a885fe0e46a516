package board

// Terrain masks over the 256-slot mailbox, precomputed once at init time
// as flat lookup tables rather than recomputed per query.
var (
	navyMask [MailboxSize]bool
	landMask [MailboxSize]bool
)

func init() {
	for f := 0; f < NumFiles; f++ {
		for r := 0; r < NumRanks; r++ {
			sq := NewSquare(f, r)
			navyMask[sq] = f <= 2 || ((f == 3 || f == 4) && (r == 5 || r == 6))
			landMask[sq] = f >= 2
		}
	}
}

// IsNavySquare reports whether sq is navigable by a Navy piece.
func IsNavySquare(sq Square) bool {
	return sq.IsValid() && navyMask[sq]
}

// IsLandSquare reports whether sq is residency-valid for a land piece.
func IsLandSquare(sq Square) bool {
	return sq.IsValid() && landMask[sq]
}

// IsWaterOnly reports whether sq is navy-only (no land piece may reside).
func IsWaterOnly(sq Square) bool {
	return sq.IsValid() && navyMask[sq] && !landMask[sq]
}

// IsMixedTerrain reports whether both navy and land pieces may reside.
func IsMixedTerrain(sq Square) bool {
	return sq.IsValid() && navyMask[sq] && landMask[sq]
}

// CanReside reports whether a piece of the given kind may come to rest on
// sq: Navy requires navy terrain, every other kind requires land terrain.
func CanReside(kind PieceKind, sq Square) bool {
	if kind == Navy {
		return IsNavySquare(sq)
	}
	return IsLandSquare(sq)
}

// bridgeSquares are the four land squares with notation significance only.
var bridgeSquares = map[Square]bool{}

func init() {
	for _, alg := range []string{"f6", "f7", "h6", "h7"} {
		sq, err := ParseSquare(alg)
		if err != nil {
			panic(err)
		}
		bridgeSquares[sq] = true
	}
}

// IsBridgeSquare reports whether sq is one of the four bridge squares.
func IsBridgeSquare(sq Square) bool {
	return bridgeSquares[sq]
}

// IsBridgeFile reports whether file index f is a heavy-zone bridge file
// (f or h).
func IsBridgeFile(f int) bool {
	fAlg, _ := ParseSquare("f1")
	hAlg, _ := ParseSquare("h1")
	return f == fAlg.File() || f == hAlg.File()
}

// HeavyZone classifies a square into one of the three heavy-piece river
// zones used by Artillery/AntiAir/Missile crossing rules. Zone 0: files
// a,b. Zone 1: files c..k, rank>=7 (index>=6). Zone 2: files c..k,
// rank<=6 (index<=5).
type HeavyZone uint8

const (
	HeavyZoneAB HeavyZone = iota
	HeavyZoneHigh
	HeavyZoneLow
)

// ZoneOf returns the heavy-piece zone containing sq.
func ZoneOf(sq Square) HeavyZone {
	if sq.File() <= 1 {
		return HeavyZoneAB
	}
	if sq.Rank() >= 6 {
		return HeavyZoneHigh
	}
	return HeavyZoneLow
}

// CrossesHeavyZoneBoundary reports whether moving from `from` to `to`
// crosses the 1<->2 heavy zone boundary (the a/b zone never participates
// in the crossing restriction).
func CrossesHeavyZoneBoundary(from, to Square) bool {
	zf, zt := ZoneOf(from), ZoneOf(to)
	return (zf == HeavyZoneHigh && zt == HeavyZoneLow) || (zf == HeavyZoneLow && zt == HeavyZoneHigh)
}
