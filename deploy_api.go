package cotulenh

import (
	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/deploy"
)

// Deploy plays a batch of deploy sub-moves atomically: each action is
// matched against the legal deploy sub-moves at req.Origin in order, and
// if any action has no legal match, every
// sub-move already dispatched in this call is rolled back and a
// *DeployError is returned — the whole request either fully applies or
// has no effect. req.Commit forces an explicit commit of any residue left
// in the stack once every action has been applied.
func (g *Game) Deploy(req DeployRequest) ([]Move, error) {
	if over, err := g.IsGameOver(); err != nil {
		return nil, err
	} else if over {
		return nil, &GameOver{Reason: "no moves can be played once the game has ended"}
	}

	var dispatched []undoer
	var keys []uint64
	var movesOut []Move

	rollback := func() {
		for i := len(dispatched) - 1; i >= 0; i-- {
			dispatched[i].Undo(g.board)
		}
	}

	for _, act := range req.Actions {
		legal, err := g.legalMoves()
		if err != nil {
			rollback()
			return nil, err
		}

		var match *board.InternalMove
		for i := range legal {
			m := legal[i]
			if !m.Flags.Has(board.DEPLOY) || m.From != req.Origin || m.To != act.To || m.Piece.Kind != act.Kind {
				continue
			}
			match = &legal[i]
			break
		}
		if match == nil {
			rollback()
			return nil, &DeployError{Cause: "no legal deploy sub-move for " + act.Kind.String() + " to " + act.To.String()}
		}

		before := g.board.ToFEN()
		check, mate := g.outcomeFor(*match)
		san := board.ToSAN(*match, legal, check, mate)

		u, err := deploy.Dispatch(g.board, *match, false)
		if err != nil {
			rollback()
			log.Error().Err(err).Msg("legal deploy sub-move failed to dispatch")
			return nil, &InternalInvariant{Detail: err.Error()}
		}

		dispatched = append(dispatched, u)
		keys = append(keys, board.ComputeHash(g.board))
		movesOut = append(movesOut, Move{
			From: match.From, To: match.To, Piece: match.Piece, Captured: match.Captured,
			Combined: match.Combined, Flags: match.Flags,
			SAN: san, LAN: match.String(), Before: before, After: g.board.ToFEN(),
		})
	}

	if req.Commit && g.board.DeploySession != nil {
		cmd, err := deploy.ExplicitCommit(g.board)
		if err != nil {
			rollback()
			return nil, &DeployError{Cause: err.Error()}
		}
		dispatched = append(dispatched, cmd)
		keys = append(keys, board.ComputeHash(g.board))
	}

	for i, u := range dispatched {
		var mv Move
		if i < len(movesOut) {
			mv = movesOut[i]
		}
		g.board.PositionCount[keys[i]]++
		g.applied = append(g.applied, committed{undo: u.Undo, moves: []Move{mv}, manualPositionCount: true})
	}

	return movesOut, nil
}
