package board

import (
	"fmt"
	"strings"
)

// DeploySession tracks an in-progress deployment sub-turn at a single
// origin stack square. The full lifecycle logic (lazy start, auto-commit,
// explicit commit, cancel) lives in internal/deploy; Board only carries
// the session's data so package board stays the single source of truth
// for state without importing the higher-level package.
type DeploySession struct {
	Origin    Square
	Color     Color
	Original  Piece          // the full stack as it stood when the session began
	Deployed   []InternalMove // actions committed so far this session
	Remaining  []Piece        // pieces of Original not yet deployed, flatten order
	Explicit   bool           // not set by any code path; ExplicitCommit ends the session instead
	HadCapture bool           // true if any sub-move this session captured
}

// Tag returns a stable byte sequence identifying this session's state, for
// use in the move-cache composite digest — nil if there is no active
// session.
func (ds *DeploySession) Tag() []byte {
	if ds == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:", ds.Origin, len(ds.Deployed))
	for _, p := range ds.Remaining {
		b.WriteByte(p.Kind.Char())
	}
	return []byte(b.String())
}

// HistoryEntry records one applied move plus enough state to support undo
// and repetition detection: the resulting position key and the move
// record itself. The concrete command type lives above package board's
// import level, so History here stores only the resulting position keys
// and move records; internal/apply keeps
// its own undo stack of command objects.
type HistoryEntry struct {
	Move InternalMove
	Key  uint64
}

// Board is the complete mutable game position: an 11x12 board (indexed
// through the 256-slot mailbox), whose-turn, commander locations, move
// counters, and the currently active deploy session, if any. A 256-square
// board with irregular terrain does not fit in a 64-bit word, so occupancy
// here is a plain mailbox array rather than a bitboard.
type Board struct {
	Squares [MailboxSize]*Piece

	Turn      Color
	Commander map[Color]Square

	HalfMoves  int
	MoveNumber int

	History       []HistoryEntry
	PositionCount map[uint64]int

	DeploySession *DeploySession

	Hash  uint64
	Cache *MoveCache
}

// NewBoard returns an empty board ready for FEN loading.
func NewBoard() *Board {
	b := &Board{
		Turn:          Red,
		Commander:     map[Color]Square{Red: NoSquare, Blue: NoSquare},
		MoveNumber:    1,
		PositionCount: make(map[uint64]int),
	}
	return b
}

// Clear resets the board to empty, preserving the move cache.
func (b *Board) Clear() {
	cache := b.Cache
	*b = Board{
		Turn:          Red,
		Commander:     map[Color]Square{Red: NoSquare, Blue: NoSquare},
		MoveNumber:    1,
		PositionCount: make(map[uint64]int),
		Cache:         cache,
	}
}

// Get returns the piece at sq, or nil if empty or sq is invalid.
func (b *Board) Get(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	return b.Squares[sq]
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Get(sq) == nil
}

// Put places piece at sq, overwriting whatever was there, and updates the
// cached commander square if piece is a Commander. Returns a
// PlacementError if sq cannot host the piece's terrain requirement.
func (b *Board) Put(sq Square, piece Piece) error {
	if !sq.IsValid() {
		return &PlacementError{Kind: piece.Kind, Square: sq, Cause: "square out of bounds"}
	}
	if !ValidStack(piece) {
		return &StackError{Carrier: piece.Kind, Cause: "stack exceeds carrier capacity"}
	}
	if !CanReside(piece.Kind, sq) {
		return &PlacementError{Kind: piece.Kind, Square: sq, Cause: "terrain does not admit this piece"}
	}
	cp := piece.Clone()
	b.Squares[sq] = &cp
	if piece.Kind == Commander {
		b.Commander[piece.Color] = sq
	}
	return nil
}

// Remove clears sq and returns what was there, or nil if it was empty.
func (b *Board) Remove(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	p := b.Squares[sq]
	b.Squares[sq] = nil
	if p != nil && p.Kind == Commander && b.Commander[p.Color] == sq {
		b.Commander[p.Color] = NoSquare
	}
	return p
}

// CommanderSquare returns the square of color's commander, or NoSquare if
// it has been captured or never placed.
func (b *Board) CommanderSquare(c Color) Square {
	return b.Commander[c]
}

// PiecesOf returns every (square, piece) pair currently belonging to
// color, in file-major order (a1, a2, ... a12, then b1, ...).
func (b *Board) PiecesOf(c Color) []struct {
	Square Square
	Piece  *Piece
} {
	var out []struct {
		Square Square
		Piece  *Piece
	}
	for f := 0; f < NumFiles; f++ {
		for r := 0; r < NumRanks; r++ {
			sq := NewSquare(f, r)
			p := b.Squares[sq]
			if p != nil && p.Color == c {
				out = append(out, struct {
					Square Square
					Piece  *Piece
				}{sq, p})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the board, including piece stacks and the
// active deploy session, but sharing the MoveCache (the cache is keyed by
// position digest and is safe to share across clones).
func (b *Board) Clone() *Board {
	nb := &Board{
		Turn:          b.Turn,
		Commander:     map[Color]Square{Red: b.Commander[Red], Blue: b.Commander[Blue]},
		HalfMoves:     b.HalfMoves,
		MoveNumber:    b.MoveNumber,
		Hash:          b.Hash,
		Cache:         b.Cache,
		PositionCount: make(map[uint64]int, len(b.PositionCount)),
	}
	for k, v := range b.PositionCount {
		nb.PositionCount[k] = v
	}
	for sq, p := range b.Squares {
		if p != nil {
			cp := p.Clone()
			nb.Squares[sq] = &cp
		}
	}
	nb.History = append([]HistoryEntry(nil), b.History...)
	if b.DeploySession != nil {
		ds := *b.DeploySession
		ds.Remaining = append([]Piece(nil), b.DeploySession.Remaining...)
		ds.Deployed = append([]InternalMove(nil), b.DeploySession.Deployed...)
		nb.DeploySession = &ds
	}
	return nb
}

// String renders a human-readable board diagram for logging and
// debugging.
func (b *Board) String() string {
	var sb strings.Builder
	for r := NumRanks - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%2d  ", r+1)
		for f := 0; f < NumFiles; f++ {
			sq := NewSquare(f, r)
			p := b.Squares[sq]
			if p == nil {
				sb.WriteString(". ")
				continue
			}
			ch := p.Kind.Char()
			if p.Color == Blue {
				ch = ch + ('a' - 'A')
			}
			sb.WriteByte(ch)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    ")
	for f := 0; f < NumFiles; f++ {
		sb.WriteByte(byte('a' + f))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Turn: %s  Move: %d  HalfMoves: %d\n", b.Turn, b.MoveNumber, b.HalfMoves)
	return sb.String()
}
