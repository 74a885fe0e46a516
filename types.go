package cotulenh

import "github.com/mnoyd/cotulenh/internal/board"

// Move is the public, verbose description of one committed action: a
// single board move, or one sub-move within a deployment batch.
type Move struct {
	From     board.Square
	To       board.Square
	Piece    board.Piece
	Captured *board.Piece
	Combined *board.Piece
	Flags    board.MoveFlags
	SAN      string
	LAN      string
	Before   string // FEN before this move was applied
	After    string // FEN after this move was applied
}

// IsCapture reports whether this move removed an enemy piece.
func (m Move) IsCapture() bool {
	return m.Flags.Has(board.CAPTURE) || m.Flags.Has(board.STAY_CAPTURE) || m.Flags.Has(board.SUICIDE_CAPTURE)
}

// MovesOptions narrows the result of Game.Moves to a square and/or piece
// kind, and optionally requests verbose Move fields.
type MovesOptions struct {
	Square    *board.Square
	PieceKind *board.PieceKind
	Verbose   bool
}

// DeployRequest is one batch of deploy sub-moves submitted atomically via
// Game.Deploy. Each entry is a destination square
// for one piece kind currently sitting in the stack at Origin; Commit
// forces an explicit commit of any still-undeployed residue once the
// batch finishes, rather than leaving the session open for further calls.
type DeployRequest struct {
	Origin  board.Square
	Actions []DeployAction
	Commit  bool
}

// DeployAction names one piece kind to move out of the deploying stack and
// where to send it.
type DeployAction struct {
	Kind board.PieceKind
	To   board.Square
}

// AttackerInfo describes one piece attacking a square, for Game.Attackers.
type AttackerInfo struct {
	Square board.Square
	Kind   board.PieceKind
	Heroic bool
}
