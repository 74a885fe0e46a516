package board

// StackSlot is one carried-piece slot in a carrier's blueprint: the set of
// kinds that may occupy it.
type StackSlot struct {
	Allowed []PieceKind
}

func (s StackSlot) contains(k PieceKind) bool {
	for _, a := range s.Allowed {
		if a == k {
			return true
		}
	}
	return false
}

func slot(kinds ...PieceKind) StackSlot {
	return StackSlot{Allowed: kinds}
}

// Blueprints maps each carrier kind to its ordered list of carried-piece
// slots. Kinds absent from this map cannot carry.
var Blueprints = map[PieceKind][]StackSlot{
	Navy:        {slot(AirForce), slot(Commander, Infantry, Militia, Tank)},
	Tank:        {slot(Commander, Infantry, Militia)},
	Engineer:    {slot(Artillery, AntiAir, Missile)},
	AirForce:    {slot(Tank), slot(Commander, Infantry, Militia)},
	Headquarter: {slot(Commander)},
}

// CanCarry reports whether kind can act as a carrier at all.
func CanCarry(kind PieceKind) bool {
	_, ok := Blueprints[kind]
	return ok
}

// CanCombine reports whether incoming can be absorbed into carrier,
// forming a valid stack. It flattens carrier's existing Carrying plus
// incoming's full flattened sequence, requires the total count fit within
// carrier's blueprint capacity, then greedily assigns each piece to the
// first free slot whose allowed-kind set contains it. Pieces of different
// colors never combine.
func CanCombine(carrier, incoming Piece) bool {
	slots := Blueprints[carrier.Kind]
	if slots == nil {
		return false
	}
	if carrier.Color != incoming.Color {
		return false
	}
	candidates := make([]Piece, 0, len(carrier.Carrying)+incoming.FlattenLen())
	candidates = append(candidates, carrier.Carrying...)
	candidates = append(candidates, incoming.Flatten()...)

	if len(candidates) > len(slots) {
		return false
	}

	used := make([]bool, len(slots))
	for _, c := range candidates {
		placed := false
		for i, s := range slots {
			if used[i] {
				continue
			}
			if s.contains(c.Kind) {
				used[i] = true
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

// FormStack attempts to combine a and b into a single stack, trying a as
// carrier first, then b. The carried order is the carrier's own prior
// Carrying pieces first, followed by the absorbed operand's flattened
// sequence in its original order.
func FormStack(a, b Piece) (Piece, bool) {
	if CanCombine(a, b) {
		return combine(a, b), true
	}
	if CanCombine(b, a) {
		return combine(b, a), true
	}
	return Piece{}, false
}

func combine(carrier, incoming Piece) Piece {
	carrying := make([]Piece, 0, len(carrier.Carrying)+incoming.FlattenLen())
	carrying = append(carrying, carrier.Carrying...)
	carrying = append(carrying, incoming.Flatten()...)
	return Piece{
		Kind:     carrier.Kind,
		Color:    carrier.Color,
		Heroic:   carrier.Heroic,
		Carrying: carrying,
	}
}

// CombinePieces folds a list of pieces by repeatedly trying FormStack on
// an accumulator against each remaining piece. Pieces that cannot be
// absorbed anywhere are returned as leftover, in encounter order.
func CombinePieces(pieces []Piece) (combined *Piece, leftover []Piece) {
	if len(pieces) == 0 {
		return nil, nil
	}
	acc := pieces[0]
	for _, p := range pieces[1:] {
		if merged, ok := FormStack(acc, p); ok {
			acc = merged
		} else {
			leftover = append(leftover, p)
		}
	}
	return &acc, leftover
}

// RemoveFromStack removes one piece of the given kind from stack, flatten
// order (carrier first, then carried in order). If the removed piece is
// the carrier, the first carried piece is promoted to carrier and
// inherits its own heroic flag, with the rest of the carried list becoming
// its Carrying. If stack itself is a single bare piece of that kind,
// result is (nil, true) — the stack is destroyed. found is false if no
// piece of that kind is present.
func RemoveFromStack(stack Piece, kind PieceKind) (result *Piece, found bool) {
	if stack.Kind == kind {
		if len(stack.Carrying) == 0 {
			return nil, true
		}
		promoted := stack.Carrying[0]
		promoted.Carrying = append([]Piece{}, stack.Carrying[1:]...)
		return &promoted, true
	}
	for i, c := range stack.Carrying {
		if c.Kind == kind {
			remaining := make([]Piece, 0, len(stack.Carrying)-1)
			remaining = append(remaining, stack.Carrying[:i]...)
			remaining = append(remaining, stack.Carrying[i+1:]...)
			out := Piece{Kind: stack.Kind, Color: stack.Color, Heroic: stack.Heroic, Carrying: remaining}
			return &out, true
		}
	}
	return &stack, false
}

// StackCapacity returns the flattened-size budget of carrier (1 + number
// of blueprint slots), or 1 if the kind cannot carry at all.
func StackCapacity(kind PieceKind) int {
	slots, ok := Blueprints[kind]
	if !ok {
		return 1
	}
	return 1 + len(slots)
}

// ValidStack reports whether p's flattened length fits its own blueprint
// capacity.
func ValidStack(p Piece) bool {
	return p.FlattenLen() <= StackCapacity(p.Kind)
}
