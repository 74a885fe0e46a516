package apply

import "github.com/mnoyd/cotulenh/internal/board"

// Command is a compound command built from an ordered list of atomic
// Actions. Execute runs them in declared order, undoing whatever already
// ran if one fails partway; Undo runs the executed prefix in reverse,
// restoring exact prior state.
type Command struct {
	actions  []Action
	executed []Action
}

func (c *Command) Execute(b *board.Board) error {
	c.executed = nil
	for _, a := range c.actions {
		if err := a.Execute(b); err != nil {
			c.Undo(b)
			return err
		}
		c.executed = append(c.executed, a)
	}
	return nil
}

func (c *Command) Undo(b *board.Board) {
	for i := len(c.executed) - 1; i >= 0; i-- {
		c.executed[i].Undo(b)
	}
}

// WrapExecuted builds a Command handle around actions the caller has
// already run (in order), so its Undo reverses them correctly. Used by
// internal/deploy, which must interleave session bookkeeping between
// individual Action.Execute calls rather than handing a whole command's
// action list to Command.Execute up front.
func WrapExecuted(actions ...Action) *Command {
	return &Command{actions: actions, executed: actions}
}

// buildCommon appends the tail shared by every compound command: promote
// the mover's pieces that attack the enemy commander (suppressed while
// isTesting), flip
// turn and reset/advance counters, then push history (also suppressed
// while isTesting, since simulated moves must never pollute repetition
// counting or the undo/redo-visible history list).
func buildCommon(actions []Action, move board.InternalMove, mover board.Color, flipTurn, halfReset, isTesting bool) []Action {
	if !isTesting {
		actions = append(actions, &CheckAndPromoteAttackersAction{EnemyColor: mover.Other()})
	}
	actions = append(actions, &IncrementCountersAction{HalfReset: halfReset, FlipTurn: flipTurn})
	if !isTesting {
		actions = append(actions, &PushHistoryAction{Move: move})
	}
	return actions
}

// NewNormalMoveCommand builds the command for a non-capturing, non-deploy,
// non-combination move: relocate the piece, update commander cache if it
// moved, advance counters, promote attackers, push history.
func NewNormalMoveCommand(move board.InternalMove, isTesting bool) *Command {
	var actions []Action
	actions = append(actions,
		&RemovePieceAction{Square: move.From},
		&PlacePieceAction{Square: move.To, Piece: move.Piece},
	)
	if move.Piece.Kind == board.Commander {
		actions = append(actions, &SetCommanderSquareAction{Color: move.Piece.Color, Square: move.To})
	}
	actions = buildCommon(actions, move, move.Piece.Color, true, false, isTesting)
	return &Command{actions: actions}
}

// NewCaptureMoveCommand builds the command for a displacement capture:
// remove the captured piece, relocate the mover, reset the half-move
// clock.
func NewCaptureMoveCommand(move board.InternalMove, isTesting bool) *Command {
	var actions []Action
	actions = append(actions, &RemovePieceAction{Square: move.To})
	if move.Captured != nil && move.Captured.Kind == board.Commander {
		actions = append(actions, &SetCommanderSquareAction{Color: move.Captured.Color, Square: board.NoSquare})
	}
	actions = append(actions,
		&RemovePieceAction{Square: move.From},
		&PlacePieceAction{Square: move.To, Piece: move.Piece},
	)
	if move.Piece.Kind == board.Commander {
		actions = append(actions, &SetCommanderSquareAction{Color: move.Piece.Color, Square: move.To})
	}
	actions = buildCommon(actions, move, move.Piece.Color, true, true, isTesting)
	return &Command{actions: actions}
}

// NewStayCaptureCommand builds the command for a stay-capture: the enemy
// piece at To is removed, but the mover remains at From (it cannot land
// there — Navy vs. land target, Tank vs. Navy on water, etc).
func NewStayCaptureCommand(move board.InternalMove, isTesting bool) *Command {
	var actions []Action
	actions = append(actions, &RemovePieceAction{Square: move.To})
	if move.Captured != nil && move.Captured.Kind == board.Commander {
		actions = append(actions, &SetCommanderSquareAction{Color: move.Captured.Color, Square: board.NoSquare})
	}
	actions = buildCommon(actions, move, move.Piece.Color, true, true, isTesting)
	return &Command{actions: actions}
}

// NewSuicideCaptureCommand builds the command for an AirForce suicide
// capture: both the captured piece and the attacking AirForce are
// removed from the board.
func NewSuicideCaptureCommand(move board.InternalMove, isTesting bool) *Command {
	var actions []Action
	actions = append(actions, &RemovePieceAction{Square: move.To})
	if move.Captured != nil && move.Captured.Kind == board.Commander {
		actions = append(actions, &SetCommanderSquareAction{Color: move.Captured.Color, Square: board.NoSquare})
	}
	actions = append(actions, &RemovePieceAction{Square: move.From})
	actions = buildCommon(actions, move, move.Piece.Color, true, true, isTesting)
	return &Command{actions: actions}
}

// NewCombinationCommand builds the command for a combination move: the
// mover is removed from From and absorbed into whatever stack sits at To.
func NewCombinationCommand(move board.InternalMove, isTesting bool) *Command {
	var actions []Action
	actions = append(actions,
		&RemovePieceAction{Square: move.From},
		&PlaceIntoStackAction{StackSquare: move.To, Piece: move.Piece},
	)
	actions = buildCommon(actions, move, move.Piece.Color, true, false, isTesting)
	return &Command{actions: actions}
}

// NewCommandForMove dispatches to the right compound-command constructor
// based on move's flags, for callers (internal/legality's simulate step,
// the root API's commit path) that just have a resolved InternalMove and
// don't want to duplicate this switch themselves. DEPLOY-flagged moves
// are not handled here — they go through internal/deploy.Dispatch, which
// owns the session bookkeeping a plain Command cannot express.
func NewCommandForMove(move board.InternalMove, isTesting bool) *Command {
	switch {
	case move.Flags.Has(board.SUICIDE_CAPTURE):
		return NewSuicideCaptureCommand(move, isTesting)
	case move.Flags.Has(board.STAY_CAPTURE):
		return NewStayCaptureCommand(move, isTesting)
	case move.Flags.Has(board.COMBINATION):
		return NewCombinationCommand(move, isTesting)
	case move.Flags.Has(board.CAPTURE):
		return NewCaptureMoveCommand(move, isTesting)
	default:
		return NewNormalMoveCommand(move, isTesting)
	}
}

// NewDeployMoveCommand builds the command for one DEPLOY sub-move within
// a deployment sub-turn: it never flips the turn or advances
// move_number itself — that happens only on session commit, handled by
// internal/deploy. isTesting suppresses heroic promotion here too, since
// a simulated deploy sub-move must be fully reversible without side
// effects; this command never pushes history, testing or not.
func NewDeployMoveCommand(move board.InternalMove, session *board.DeploySession, isTesting bool) *Command {
	var actions []Action

	if move.Captured != nil {
		actions = append(actions, &RemovePieceAction{Square: move.To})
		if move.Captured.Kind == board.Commander {
			actions = append(actions, &SetCommanderSquareAction{Color: move.Captured.Color, Square: board.NoSquare})
		}
	}

	actions = append(actions, &RemoveFromStackAction{StackSquare: move.From, Kind: move.Piece.Kind})

	switch {
	case move.Flags.Has(board.STAY_CAPTURE):
		// the deployed piece never relocates — it rejoins whatever remains
		// of the stack at From (or stands alone there if nothing remains).
		actions = append(actions, &PlaceIntoStackAction{StackSquare: move.From, Piece: move.Piece})
		if move.Piece.Kind == board.Commander {
			actions = append(actions, &SetCommanderSquareAction{Color: move.Piece.Color, Square: move.From})
		}
	case move.Flags.Has(board.SUICIDE_CAPTURE):
		// both the target and the deployed piece are removed; nothing further to place.
	case move.Combined != nil:
		actions = append(actions, &PlaceIntoStackAction{StackSquare: move.To, Piece: move.Piece})
	default:
		actions = append(actions, &PlacePieceAction{Square: move.To, Piece: move.Piece})
		if move.Piece.Kind == board.Commander {
			actions = append(actions, &SetCommanderSquareAction{Color: move.Piece.Color, Square: move.To})
		}
	}

	if !isTesting {
		actions = append(actions, &CheckAndPromoteAttackersAction{EnemyColor: move.Piece.Color.Other()})
	}

	return &Command{actions: actions}
}
