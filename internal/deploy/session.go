// Package deploy implements the deployment sub-turn lifecycle: lazy
// session start, per-sub-move append, auto-commit when a stack is fully
// dispatched, explicit commit leaving a carrier-promoted residue, cancel,
// and a batch mode with all-or-nothing rollback. It reuses
// internal/board's stack algebra for the carrier-deploys-itself case and
// internal/apply's command objects for every board mutation.
package deploy

import (
	"github.com/mnoyd/cotulenh/internal/apply"
	"github.com/mnoyd/cotulenh/internal/board"
)

// SessionCommand is the undoable unit of work produced by dispatching one
// DEPLOY sub-move: the board mutation, the session-state swap, and
// (if this sub-move emptied the stack) the auto-commit's session-clear
// and counter-advance.
type SessionCommand struct {
	moveCmd       *apply.Command
	sessionAction *apply.SetDeploySessionAction
	commitActions []apply.Action
	Committed     bool
}

func (c *SessionCommand) Undo(b *board.Board) {
	for i := len(c.commitActions) - 1; i >= 0; i-- {
		c.commitActions[i].Undo(b)
	}
	c.sessionAction.Undo(b)
	c.moveCmd.Undo(b)
}

// Dispatch applies one DEPLOY-flagged move as a sub-move of the
// deployment sub-turn at move.From. It starts a session lazily if none is
// active, appends to one already active at this origin, and auto-commits
// (clearing the session, flipping the turn, advancing counters) the
// moment no pieces of the original stack remain undeployed.
func Dispatch(b *board.Board, move board.InternalMove, isTesting bool) (*SessionCommand, error) {
	if !move.Flags.Has(board.DEPLOY) {
		return nil, &board.MoveParseError{Text: move.String(), Cause: "not a deploy move"}
	}

	existing := b.DeploySession
	origin := move.From

	var originalStack board.Piece
	var priorDeployed []board.InternalMove
	hadCapture := move.IsCapture()

	if existing != nil && existing.Origin == origin {
		originalStack = existing.Original
		priorDeployed = existing.Deployed
		hadCapture = hadCapture || existing.HadCapture
	} else {
		stack := b.Get(origin)
		if stack == nil || !stack.IsStack() {
			return nil, &board.StackError{Cause: "no stack to deploy from at origin"}
		}
		originalStack = stack.Clone()
	}

	moveCmd := apply.NewDeployMoveCommand(move, existing, isTesting)
	if err := moveCmd.Execute(b); err != nil {
		return nil, err
	}

	deployed := append(append([]board.InternalMove{}, priorDeployed...), move)
	remaining := remainingAfter(originalStack, deployed)

	newSession := &board.DeploySession{
		Origin: origin, Color: move.Piece.Color, Original: originalStack,
		Deployed: deployed, Remaining: remaining, HadCapture: hadCapture,
	}
	sessionAction := &apply.SetDeploySessionAction{NewSession: newSession}
	sessionAction.Execute(b)

	cmd := &SessionCommand{moveCmd: moveCmd, sessionAction: sessionAction}

	if len(remaining) == 0 && !isTesting {
		clear := &apply.SetDeploySessionAction{NewSession: nil}
		clear.Execute(b)
		counters := &apply.IncrementCountersAction{HalfReset: hadCapture, FlipTurn: true}
		counters.Execute(b)
		cmd.commitActions = append(cmd.commitActions, clear, counters)
		cmd.Committed = true
	}

	return cmd, nil
}

// remainingAfter computes the flattened pieces of original not yet
// represented among deployed's moved pieces.
func remainingAfter(original board.Piece, deployed []board.InternalMove) []board.Piece {
	moved := make(map[board.PieceKind]int)
	for _, m := range deployed {
		moved[m.Piece.Kind]++
	}
	var remaining []board.Piece
	for _, p := range original.Flatten() {
		if moved[p.Kind] > 0 {
			moved[p.Kind]--
			continue
		}
		remaining = append(remaining, p)
	}
	return remaining
}

// ExplicitCommit ends the session at origin even with pieces remaining:
// the unspecified remainder stays as a new carrier-promoted stack at
// origin (it already does, since RemoveFromStackAction applies that
// promotion on every sub-move) — this only needs to clear the session
// and flip the turn, after checking the remainder forms a valid stack.
func ExplicitCommit(b *board.Board) (*apply.Command, error) {
	session := b.DeploySession
	if session == nil {
		return nil, &board.StackError{Cause: "no active deploy session to commit"}
	}
	if residue := b.Get(session.Origin); residue != nil && !board.ValidStack(*residue) {
		return nil, &board.StackError{Carrier: residue.Kind, Cause: "deploy residue is not a valid stack"}
	}

	actions := []apply.Action{
		&apply.SetDeploySessionAction{NewSession: nil},
		&apply.IncrementCountersAction{HalfReset: session.HadCapture, FlipTurn: true},
	}
	for _, a := range actions {
		if err := a.Execute(b); err != nil {
			return nil, err
		}
	}
	return apply.WrapExecuted(actions...), nil
}
