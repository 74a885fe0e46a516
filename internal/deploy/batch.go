package deploy

import "github.com/mnoyd/cotulenh/internal/board"

// Cancel abandons an in-progress deploy session, undoing every sub-move
// dispatched so far in reverse order and restoring the board exactly to
// its state before the session began.
func Cancel(b *board.Board, dispatched []*SessionCommand) {
	for i := len(dispatched) - 1; i >= 0; i-- {
		dispatched[i].Undo(b)
	}
}

// Batch executes a sequence of DEPLOY sub-moves as one atomic unit: each
// move goes through Dispatch in order (which auto-commits the session as
// soon as the stack is empty), and if any sub-move fails, every
// previously dispatched sub-move in this batch is rolled back and the
// error is returned.
func Batch(b *board.Board, moves []board.InternalMove, isTesting bool) ([]*SessionCommand, error) {
	var dispatched []*SessionCommand
	for _, m := range moves {
		cmd, err := Dispatch(b, m, isTesting)
		if err != nil {
			Cancel(b, dispatched)
			return nil, err
		}
		dispatched = append(dispatched, cmd)
	}
	return dispatched, nil
}
