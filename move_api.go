package cotulenh

import (
	"github.com/mnoyd/cotulenh/internal/apply"
	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/deploy"
	"github.com/mnoyd/cotulenh/internal/legality"
)

// undoer is satisfied by both apply.Command and deploy.SessionCommand.
type undoer interface {
	Undo(b *board.Board)
}

// dispatchOne executes move (not committing to g.applied), returning a
// handle to undo it. Used both for committing real moves and for the
// look-ahead simulation Moves/Move need to render '+'/'#' suffixes.
func dispatchOne(b *board.Board, move board.InternalMove, isTesting bool) (undoer, error) {
	if move.Flags.Has(board.DEPLOY) {
		return deploy.Dispatch(b, move, isTesting)
	}
	cmd := apply.NewCommandForMove(move, isTesting)
	if err := cmd.Execute(b); err != nil {
		return nil, err
	}
	return cmd, nil
}

// outcomeFor reports whether move, if played, gives check or checkmate to
// the opponent — rendered into the '+'/'#' SAN suffix.
func (g *Game) outcomeFor(move board.InternalMove) (check, mate bool) {
	u, err := dispatchOne(g.board, move, true)
	if err != nil {
		return false, false
	}
	defer u.Undo(g.board)

	opponent := move.Piece.Color.Other()
	check = legality.InCheck(g.board, opponent)
	if check {
		moves, err := legality.LegalMoves(g.board, opponent)
		if err == nil {
			mate = len(moves) == 0
		}
	}
	return check, mate
}

func matchesOptions(m board.InternalMove, opts MovesOptions) bool {
	if opts.Square != nil && m.From != *opts.Square {
		return false
	}
	if opts.PieceKind != nil && m.Piece.Kind != *opts.PieceKind {
		return false
	}
	return true
}

// Moves returns the legal moves available to the side to move, filtered
// by opts.Square/opts.PieceKind if set. Verbose populates Before/After FEN
// snapshots on each Move, at the cost of simulating every candidate twice;
// non-verbose callers get every field except Before/After for free.
func (g *Game) Moves(opts MovesOptions) ([]Move, error) {
	legal, err := g.legalMoves()
	if err != nil {
		return nil, err
	}

	before := g.board.ToFEN()
	var out []Move
	for _, m := range legal {
		if !matchesOptions(m, opts) {
			continue
		}
		check, mate := g.outcomeFor(m)
		mv := Move{
			From: m.From, To: m.To, Piece: m.Piece, Captured: m.Captured,
			Combined: m.Combined, Flags: m.Flags,
			SAN: board.ToSAN(m, legal, check, mate),
			LAN: m.String(),
		}
		if opts.Verbose {
			mv.Before = before
			u, err := dispatchOne(g.board, m, true)
			if err == nil {
				mv.After = g.board.ToFEN()
				u.Undo(g.board)
			}
		}
		out = append(out, mv)
	}
	return out, nil
}

// commit records a dispatched, non-testing normal move for History/Undo.
// PositionCount bookkeeping is NOT done here: apply.NewCommandForMove
// already pushed a HistoryEntry and incremented PositionCount internally
// via PushHistoryAction (suppressed only under isTesting), so doing it
// again here would double-count every non-deploy move.
func (g *Game) commit(u undoer, mv Move) {
	g.applied = append(g.applied, committed{undo: u.Undo, moves: []Move{mv}})
}

// Move plays the legal move matching san and commits it. Returns
// *IllegalMove if no legal move matches.
func (g *Game) Move(san string) (*Move, error) {
	if over, err := g.IsGameOver(); err != nil {
		return nil, err
	} else if over {
		return nil, &GameOver{Reason: "no moves can be played once the game has ended"}
	}

	legal, err := g.legalMoves()
	if err != nil {
		return nil, err
	}
	m, err := board.ParseSAN(san, legal)
	if err != nil {
		return nil, &IllegalMove{Text: san, Cause: err.Error()}
	}
	return g.playResolved(m, legal, san)
}

// MoveSquares plays the legal move from -> to (the square-pair form of
// Move), disambiguating by kind when more than one piece of the mover's
// stack could make that exact trip (deploy sub-moves).
func (g *Game) MoveSquares(from, to board.Square, kind *board.PieceKind) (*Move, error) {
	if over, err := g.IsGameOver(); err != nil {
		return nil, err
	} else if over {
		return nil, &GameOver{Reason: "no moves can be played once the game has ended"}
	}

	legal, err := g.legalMoves()
	if err != nil {
		return nil, err
	}
	var match *board.InternalMove
	for i := range legal {
		m := legal[i]
		if m.From != from || m.To != to {
			continue
		}
		if kind != nil && m.Piece.Kind != *kind {
			continue
		}
		if match != nil {
			return nil, &IllegalMove{Text: from.String() + to.String(), Cause: "ambiguous: specify piece_kind"}
		}
		match = &legal[i]
	}
	if match == nil {
		return nil, &IllegalMove{Text: from.String() + to.String(), Cause: "no legal move matches"}
	}
	return g.playResolved(*match, legal, from.String()+to.String())
}

func (g *Game) playResolved(m board.InternalMove, legal []board.InternalMove, text string) (*Move, error) {
	before := g.board.ToFEN()
	check, mate := g.outcomeFor(m)
	san := board.ToSAN(m, legal, check, mate)

	u, err := dispatchOne(g.board, m, false)
	if err != nil {
		log.Error().Err(err).Str("move", text).Msg("resolved legal move failed to execute")
		return nil, &InternalInvariant{Detail: err.Error()}
	}

	mv := Move{
		From: m.From, To: m.To, Piece: m.Piece, Captured: m.Captured,
		Combined: m.Combined, Flags: m.Flags,
		SAN: san, LAN: m.String(), Before: before, After: g.board.ToFEN(),
	}
	g.commit(u, mv)
	return &mv, nil
}

// Undo reverses the most recently committed entry (a move, or for a
// deploy one sub-move or the explicit commit) and returns the Move record
// that was undone, or nil if there is nothing to undo.
func (g *Game) Undo() (*Move, error) {
	if len(g.applied) == 0 {
		return nil, nil
	}
	last := g.applied[len(g.applied)-1]
	g.applied = g.applied[:len(g.applied)-1]

	if last.manualPositionCount {
		key := board.ComputeHash(g.board)
		g.board.PositionCount[key]--
		if g.board.PositionCount[key] <= 0 {
			delete(g.board.PositionCount, key)
		}
	}
	last.undo(g.board)

	if len(last.moves) == 0 {
		return nil, nil
	}
	mv := last.moves[len(last.moves)-1]
	return &mv, nil
}
