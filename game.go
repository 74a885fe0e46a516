// Package cotulenh is the public facade over the CoTuLenh rules engine:
// position state, legal move generation, deployment sub-turns, notation,
// and game-end detection — the thing that owns a position and exposes
// move/undo to a driver.
package cotulenh

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/mnoyd/cotulenh/internal/board"
	"github.com/mnoyd/cotulenh/internal/legality"
	"github.com/mnoyd/cotulenh/internal/movegen"
)

// defaultCacheCapacity sizes the bounded move cache every game is loaded
// with; the board is unexported, so the capacity is fixed for callers.
const defaultCacheCapacity = 1 << 16

// log is the package-level logger, silent by default (Warn and above to
// stderr) — never written to on the per-move-generation hot path, only
// around invariant violations and deploy/heroic lifecycle events.
var log = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// SetLogLevel adjusts the package-wide logger's verbosity, e.g. for a CLI
// driver's --log-level flag.
func SetLogLevel(level zerolog.Level) {
	log = log.Level(level)
}

// committed is one entry in a Game's undo stack: the underlying undoable
// command(s) and the public Move record(s) it produced.
type committed struct {
	undo  func(b *board.Board)
	moves []Move
	// manualPositionCount is true for deploy sub-moves, whose underlying
	// internal/deploy command never touches Board.PositionCount itself
	// (unlike apply.Command's PushHistoryAction, which does). Undo only
	// needs to reverse the increment here for entries where it applied it.
	manualPositionCount bool
}

// Game wraps a *board.Board and exposes the engine's full public contract:
// position queries, move/undo, deployment, notation, and game-end
// detection, plus conveniences like Clone and LastMove.
type Game struct {
	board   *board.Board
	applied []committed
}

// New returns a Game at the standard starting position, or loaded from an
// optional FEN string.
func New(fen ...string) (*Game, error) {
	f := board.StartFEN
	if len(fen) > 0 && fen[0] != "" {
		f = fen[0]
	}
	return Load(f, false)
}

// Load parses fen into a fresh Game. skipValidation has no effect:
// ParseFEN always checks terrain/stack placement through Board.Put.
func Load(fen string, skipValidation bool) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	_ = skipValidation // ParseFEN always validates via Board.Put; the flag changes nothing.
	cache, err := board.NewMoveCache(defaultCacheCapacity)
	if err != nil {
		return nil, &InternalInvariant{Detail: err.Error()}
	}
	b.Cache = cache
	b.PositionCount[board.ComputeHash(b)]++
	return &Game{board: b}, nil
}

// Clear resets the game to an empty board, same as Load("", ...) would if
// FEN allowed an empty placement field — preserveHeaders keeps the turn,
// move number and half-move clock instead of resetting them to their
// defaults.
func (g *Game) Clear(preserveHeaders bool) {
	turn, moveNum, half := g.board.Turn, g.board.MoveNumber, g.board.HalfMoves
	g.board.Clear()
	if preserveHeaders {
		g.board.Turn, g.board.MoveNumber, g.board.HalfMoves = turn, moveNum, half
	}
	g.board.PositionCount[board.ComputeHash(g.board)]++
	g.applied = nil
}

// FEN renders the current position as an extended FEN string.
func (g *Game) FEN() string {
	return g.board.ToFEN()
}

// Turn returns the color to move.
func (g *Game) Turn() board.Color {
	return g.board.Turn
}

// MoveNumber returns the current full-move number.
func (g *Game) MoveNumber() int {
	return g.board.MoveNumber
}

// HalfMoves returns the half-move clock (for the 50-move draw rule).
func (g *Game) HalfMoves() int {
	return g.board.HalfMoves
}

// Get returns the piece at sq, or nil if empty. If kind is non-nil, Get
// returns the occupant when it is of that kind, otherwise the carried
// piece of that kind, otherwise nil.
func (g *Game) Get(sq board.Square, kind *board.PieceKind) *board.Piece {
	p := g.board.Get(sq)
	if p == nil || kind == nil {
		return p
	}
	if p.Kind == *kind {
		return p
	}
	for i := range p.Carrying {
		if p.Carrying[i].Kind == *kind {
			return &p.Carrying[i]
		}
	}
	return nil
}

// CommanderSquare returns color's commander square, or board.NoSquare if
// captured.
func (g *Game) CommanderSquare(color board.Color) board.Square {
	return g.board.CommanderSquare(color)
}

// Attackers returns every piece of attackerColor whose capture pattern
// reaches sq.
func (g *Game) Attackers(sq board.Square, attackerColor board.Color) []AttackerInfo {
	atk := movegen.AttackersTo(g.board, sq, attackerColor)
	out := make([]AttackerInfo, len(atk))
	for i, a := range atk {
		out[i] = AttackerInfo{Square: a.Square, Kind: a.Piece.Kind, Heroic: a.Piece.Heroic}
	}
	return out
}

// DeployState returns the in-progress deploy session, or nil if none is
// active.
func (g *Game) DeployState() *board.DeploySession {
	return g.board.DeploySession
}

// IsCheck reports whether the side to move is in check.
func (g *Game) IsCheck() bool {
	return legality.InCheck(g.board, g.board.Turn)
}

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() (bool, error) {
	return legality.Checkmate(g.board, g.board.Turn)
}

// IsStalemate reports whether the side to move is stalemated.
func (g *Game) IsStalemate() (bool, error) {
	return legality.Stalemate(g.board, g.board.Turn)
}

// IsDraw reports whether the position is drawn by the 50-move rule or
// threefold repetition.
func (g *Game) IsDraw() bool {
	return legality.IsDraw(g.board)
}

// IsGameOver reports checkmate, stalemate, or draw for the side to move.
func (g *Game) IsGameOver() (bool, error) {
	if g.IsDraw() {
		return true, nil
	}
	mate, err := g.IsCheckmate()
	if err != nil {
		return false, err
	}
	if mate {
		return true, nil
	}
	return g.IsStalemate()
}

// History returns the moves played so far, oldest first. verbose is
// accepted for API-contract symmetry with Moves/Move, but Move records
// are always fully populated, so it currently has no effect on the
// returned slice's shape.
func (g *Game) History(verbose bool) []Move {
	var out []Move
	for _, c := range g.applied {
		out = append(out, c.moves...)
	}
	return out
}

// LastMove returns the most recently committed move, or nil if none.
func (g *Game) LastMove() *Move {
	if len(g.applied) == 0 {
		return nil
	}
	last := g.applied[len(g.applied)-1]
	if len(last.moves) == 0 {
		return nil
	}
	m := last.moves[len(last.moves)-1]
	return &m
}

// Clone returns a deep, independent copy of the game, including undo
// history.
func (g *Game) Clone() *Game {
	ng := &Game{board: g.board.Clone()}
	ng.applied = append([]committed(nil), g.applied...)
	return ng
}

// legalMoves is a small internal helper shared by Moves/Move/notation
// rendering.
func (g *Game) legalMoves() ([]board.InternalMove, error) {
	moves, err := legality.LegalMoves(g.board, g.board.Turn)
	if err != nil {
		log.Error().Err(err).Msg("legal move generation failed")
		return nil, &InternalInvariant{Detail: err.Error()}
	}
	return moves, nil
}
