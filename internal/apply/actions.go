// Package apply implements the move applier's Command Pattern: ten atomic
// actions with execute/undo, and six compound commands that orchestrate
// them. Each action captures exact prior state and restores it verbatim
// on undo, structured into discrete command objects rather than a
// parallel virtual-overlay board.
package apply

import (
	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/movegen"
)

// Action is one atomic, undoable board mutation.
type Action interface {
	Execute(b *board.Board) error
	Undo(b *board.Board)
}

// RemovePieceAction removes whatever piece sits at Square.
type RemovePieceAction struct {
	Square  board.Square
	removed *board.Piece
}

func (a *RemovePieceAction) Execute(b *board.Board) error {
	a.removed = b.Remove(a.Square)
	return nil
}

func (a *RemovePieceAction) Undo(b *board.Board) {
	if a.removed != nil {
		b.Put(a.Square, *a.removed)
	}
}

// PlacePieceAction places Piece at Square, recording whatever was there
// before for undo.
type PlacePieceAction struct {
	Square   board.Square
	Piece    board.Piece
	previous *board.Piece
}

func (a *PlacePieceAction) Execute(b *board.Board) error {
	a.previous = b.Get(a.Square)
	if a.previous != nil {
		prev := a.previous.Clone()
		a.previous = &prev
	}
	return b.Put(a.Square, a.Piece)
}

func (a *PlacePieceAction) Undo(b *board.Board) {
	if a.previous != nil {
		b.Put(a.Square, *a.previous)
	} else {
		b.Remove(a.Square)
	}
}

// RemoveFromStackAction removes one piece of Kind from the stack at
// StackSquare, applying the carrier-promotion invariant via
// board.RemoveFromStack.
type RemoveFromStackAction struct {
	StackSquare board.Square
	Kind        board.PieceKind
	before      *board.Piece
}

func (a *RemoveFromStackAction) Execute(b *board.Board) error {
	stack := b.Get(a.StackSquare)
	if stack == nil {
		return &board.StackError{Carrier: a.Kind, Cause: "no stack at square"}
	}
	before := stack.Clone()
	a.before = &before

	result, found := board.RemoveFromStack(*stack, a.Kind)
	if !found {
		return &board.StackError{Carrier: stack.Kind, Incoming: a.Kind, Cause: "kind not present in stack"}
	}
	if result == nil {
		b.Remove(a.StackSquare)
		return nil
	}
	return b.Put(a.StackSquare, *result)
}

func (a *RemoveFromStackAction) Undo(b *board.Board) {
	if a.before != nil {
		b.Put(a.StackSquare, *a.before)
	}
}

// PlaceIntoStackAction combines Piece into whatever sits at StackSquare.
type PlaceIntoStackAction struct {
	StackSquare board.Square
	Piece       board.Piece
	before      *board.Piece
}

func (a *PlaceIntoStackAction) Execute(b *board.Board) error {
	existing := b.Get(a.StackSquare)
	if existing == nil {
		a.before = nil
		return b.Put(a.StackSquare, a.Piece)
	}
	before := existing.Clone()
	a.before = &before
	merged, ok := board.FormStack(*existing, a.Piece)
	if !ok {
		return &board.StackError{Carrier: existing.Kind, Incoming: a.Piece.Kind, Cause: "cannot combine"}
	}
	return b.Put(a.StackSquare, merged)
}

func (a *PlaceIntoStackAction) Undo(b *board.Board) {
	if a.before != nil {
		b.Put(a.StackSquare, *a.before)
	} else {
		b.Remove(a.StackSquare)
	}
}

// SetHeroicAction sets the heroic flag on the carrier at Square (if Kind
// is board.NoPieceKind) or on the specific carried piece of Kind within
// that stack.
type SetHeroicAction struct {
	Square   board.Square
	Kind     board.PieceKind
	Value    bool
	previous bool
	applied  bool
}

func (a *SetHeroicAction) Execute(b *board.Board) error {
	p := b.Get(a.Square)
	if p == nil {
		return &board.PlacementError{Square: a.Square, Cause: "no piece to promote"}
	}
	cp := p.Clone()
	if a.Kind == board.NoPieceKind || a.Kind == p.Kind {
		a.previous = cp.Heroic
		cp.Heroic = a.Value
	} else {
		found := false
		for i := range cp.Carrying {
			if cp.Carrying[i].Kind == a.Kind {
				a.previous = cp.Carrying[i].Heroic
				cp.Carrying[i].Heroic = a.Value
				found = true
				break
			}
		}
		if !found {
			return &board.StackError{Carrier: p.Kind, Incoming: a.Kind, Cause: "kind not present for heroic update"}
		}
	}
	a.applied = true
	return b.Put(a.Square, cp)
}

func (a *SetHeroicAction) Undo(b *board.Board) {
	if !a.applied {
		return
	}
	p := b.Get(a.Square)
	if p == nil {
		return
	}
	cp := p.Clone()
	if a.Kind == board.NoPieceKind || a.Kind == p.Kind {
		cp.Heroic = a.previous
	} else {
		for i := range cp.Carrying {
			if cp.Carrying[i].Kind == a.Kind {
				cp.Carrying[i].Heroic = a.previous
				break
			}
		}
	}
	b.Put(a.Square, cp)
}

// SetCommanderSquareAction overwrites the cached commander location for
// Color. Square == board.NoSquare records a capture.
type SetCommanderSquareAction struct {
	Color    board.Color
	Square   board.Square
	previous board.Square
}

func (a *SetCommanderSquareAction) Execute(b *board.Board) error {
	a.previous = b.Commander[a.Color]
	b.Commander[a.Color] = a.Square
	return nil
}

func (a *SetCommanderSquareAction) Undo(b *board.Board) {
	b.Commander[a.Color] = a.previous
}

// SetDeploySessionAction swaps the board's active deploy session.
type SetDeploySessionAction struct {
	NewSession *board.DeploySession
	previous   *board.DeploySession
}

func (a *SetDeploySessionAction) Execute(b *board.Board) error {
	a.previous = b.DeploySession
	b.DeploySession = a.NewSession
	return nil
}

func (a *SetDeploySessionAction) Undo(b *board.Board) {
	b.DeploySession = a.previous
}

// IncrementCountersAction advances half-move/full-move counters and
// optionally flips the turn.
type IncrementCountersAction struct {
	HalfReset bool
	FlipTurn  bool

	prevHalf int
	prevMove int
	prevTurn board.Color
}

func (a *IncrementCountersAction) Execute(b *board.Board) error {
	a.prevHalf = b.HalfMoves
	a.prevMove = b.MoveNumber
	a.prevTurn = b.Turn

	if a.HalfReset {
		b.HalfMoves = 0
	} else {
		b.HalfMoves++
	}
	if a.FlipTurn {
		b.Turn = b.Turn.Other()
		if b.Turn == board.Red {
			b.MoveNumber++
		}
	}
	return nil
}

func (a *IncrementCountersAction) Undo(b *board.Board) {
	b.HalfMoves = a.prevHalf
	b.MoveNumber = a.prevMove
	b.Turn = a.prevTurn
}

// PushHistoryAction appends a HistoryEntry for Move to the board's
// history and increments its repetition count. The position key is
// computed from the board's current state at Execute time, since it must
// reflect every mutation that ran before this action in the command
// sequence; suppressed entirely during isTesting simulation by the
// compound command that builds it.
type PushHistoryAction struct {
	Move  board.InternalMove
	Entry board.HistoryEntry
}

func (a *PushHistoryAction) Execute(b *board.Board) error {
	a.Entry = board.HistoryEntry{Move: a.Move, Key: board.ComputeHash(b)}
	b.History = append(b.History, a.Entry)
	b.PositionCount[a.Entry.Key]++
	return nil
}

func (a *PushHistoryAction) Undo(b *board.Board) {
	if len(b.History) > 0 {
		b.History = b.History[:len(b.History)-1]
	}
	if b.PositionCount[a.Entry.Key] > 0 {
		b.PositionCount[a.Entry.Key]--
	}
}

// CheckAndPromoteAttackersAction enumerates enemy pieces attacking
// commander_square(enemy) after a move commits, and promotes each
// non-heroic attacker to heroic — the sole path to heroic status.
// Promotions of pieces within a stack are applied individually to the
// attacking piece, not the whole stack.
type CheckAndPromoteAttackersAction struct {
	EnemyColor board.Color
	promotions []*SetHeroicAction
}

func (a *CheckAndPromoteAttackersAction) Execute(b *board.Board) error {
	target := b.CommanderSquare(a.EnemyColor)
	if target == board.NoSquare {
		return nil
	}
	attackerColor := a.EnemyColor.Other()
	for _, atk := range movegen.AttackersTo(b, target, attackerColor) {
		if atk.Piece.Heroic {
			continue
		}
		promo := &SetHeroicAction{Square: atk.Square, Kind: atk.Piece.Kind, Value: true}
		if err := promo.Execute(b); err != nil {
			continue
		}
		a.promotions = append(a.promotions, promo)
	}
	return nil
}

func (a *CheckAndPromoteAttackersAction) Undo(b *board.Board) {
	for i := len(a.promotions) - 1; i >= 0; i-- {
		a.promotions[i].Undo(b)
	}
}
