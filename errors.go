package cotulenh

import "fmt"

// IllegalMove reports a syntactically valid move rejected by the legality
// filter, with a Cause string so callers can distinguish why.
type IllegalMove struct {
	Text  string
	Cause string
}

func (e *IllegalMove) Error() string {
	return fmt.Sprintf("cotulenh: illegal move %q: %s", e.Text, e.Cause)
}

// DeployError reports a failure within the deployment sub-turn: ambiguous
// residue, a sub-move absent from the legal list, or a residue that
// cannot form a valid stack.
type DeployError struct {
	Cause string
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("cotulenh: deploy error: %s", e.Cause)
}

// GameOver reports an attempt to move after the game has already ended.
type GameOver struct {
	Reason string
}

func (e *GameOver) Error() string {
	return fmt.Sprintf("cotulenh: game is over: %s", e.Reason)
}

// InternalInvariant reports a bug-class condition that should never occur
// in a correct implementation — logged and returned rather than panicking
// in release builds.
type InternalInvariant struct {
	Detail string
}

func (e *InternalInvariant) Error() string {
	return fmt.Sprintf("cotulenh: internal invariant violated: %s", e.Detail)
}
