package board

import "fmt"

// MoveFlags classifies the kind of action an InternalMove performs. A move
// may combine CAPTURE with DEPLOY or COMBINATION.
type MoveFlags uint8

const (
	NORMAL MoveFlags = 1 << iota
	CAPTURE
	STAY_CAPTURE
	SUICIDE_CAPTURE
	DEPLOY
	COMBINATION
)

func (f MoveFlags) Has(flag MoveFlags) bool {
	return f&flag != 0
}

func (f MoveFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := []string{}
	for flag, name := range map[MoveFlags]string{
		NORMAL: "normal", CAPTURE: "capture", STAY_CAPTURE: "stay_capture",
		SUICIDE_CAPTURE: "suicide_capture", DEPLOY: "deploy", COMBINATION: "combination",
	} {
		if f.Has(flag) {
			names = append(names, name)
		}
	}
	out := names[0]
	for _, n := range names[1:] {
		out += "|" + n
	}
	return out
}

// InternalMove is the fully-resolved internal representation of one
// primitive board action: moving Piece from From to To, possibly
// capturing Captured, possibly forming a new stack Combined. This cannot
// be bit-packed into a machine word: a CoTuLenh move carries full
// piece/stack values, not just square indices.
type InternalMove struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  *Piece
	Flags     MoveFlags
	Combined  *Piece
}

// NoMove is the zero-value sentinel for an absent move.
var NoMove = InternalMove{From: NoSquare, To: NoSquare}

func (m InternalMove) IsNoMove() bool {
	return m.From == NoSquare && m.To == NoSquare
}

// IsCapture reports whether this move removes an enemy piece (by
// displacement capture, stay-capture or suicide capture).
func (m InternalMove) IsCapture() bool {
	return m.Flags.Has(CAPTURE) || m.Flags.Has(STAY_CAPTURE) || m.Flags.Has(SUICIDE_CAPTURE)
}

// String renders a compact debug form: fromto, with the same separator
// the notation package uses for this flag combination, except that a
// normal move, which has no separator in notation, uses '-'.
func (m InternalMove) String() string {
	switch {
	case m.Flags.Has(STAY_CAPTURE):
		return fmt.Sprintf("%s_%s", m.From, m.To)
	case m.Flags.Has(SUICIDE_CAPTURE):
		return fmt.Sprintf("%s@%s", m.From, m.To)
	case m.Flags.Has(COMBINATION):
		return fmt.Sprintf("%s&%s", m.From, m.To)
	case m.Flags.Has(CAPTURE):
		return fmt.Sprintf("%sx%s", m.From, m.To)
	default:
		return fmt.Sprintf("%s-%s", m.From, m.To)
	}
}

// DeployMove is an ordered batch of InternalMove sharing a common origin
// stack square: each action deploys one piece out of the stack at From, in
// order. StayResidue, if non-nil, is the piece left behind on From once
// the batch completes (the carrier, if it never itself moved off the
// square).
type DeployMove struct {
	From        Square
	Actions     []InternalMove
	StayResidue *Piece
}

// MoveList is a fixed-size list of moves, avoiding per-call-site
// allocation — sized generously since a CoTuLenh stack square can emit
// far more pseudo-legal moves per piece than a single-piece move ever can.
type MoveList struct {
	moves [512]InternalMove
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m InternalMove) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) InternalMove {
	return ml.moves[i]
}

// Clear empties the list without reallocating.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves currently in the list.
func (ml *MoveList) Slice() []InternalMove {
	return ml.moves[:ml.count]
}
