package board

import (
	"strconv"
	"strings"
)

// separatorFor returns the notation separator for a move's primary action
// kind: empty normal, 'x' capture, '_' stay-capture, '@' suicide-capture,
// '&' combination. The deploy marker '>' is a prefix applied by ToSAN, not
// a separator returned here.
func separatorFor(m InternalMove) byte {
	switch {
	case m.Flags.Has(STAY_CAPTURE):
		return '_'
	case m.Flags.Has(SUICIDE_CAPTURE):
		return '@'
	case m.Flags.Has(COMBINATION):
		return '&'
	case m.Flags.Has(CAPTURE):
		return 'x'
	default:
		return 0
	}
}

// ToSAN renders m as Standard Algebraic Notation. legalMoves is the full
// legal move list in the position m was generated from, used only for
// disambiguation; givesCheck/givesCheckmate are supplied by the caller
// since package board performs no legality analysis itself (that lives in
// internal/legality, a higher layer, to keep the dependency graph
// acyclic).
func ToSAN(m InternalMove, legalMoves []InternalMove, givesCheck, givesCheckmate bool) string {
	if m.IsNoMove() {
		return "-"
	}

	var sb strings.Builder
	if m.Flags.Has(DEPLOY) {
		sb.WriteByte('>')
	}
	sb.WriteString(MakeSanPiece(m.Piece))
	sb.WriteString(getDisambiguation(m, legalMoves))
	if sep := separatorFor(m); sep != 0 {
		sb.WriteByte(sep)
	}
	sb.WriteString(m.To.String())
	if m.Flags.Has(COMBINATION) && m.Combined != nil {
		sb.WriteString(combinationSuffix(*m.Combined))
	}

	if givesCheckmate {
		sb.WriteByte('#')
	} else if givesCheck {
		sb.WriteByte('+')
	}

	return sb.String()
}

// combinationSuffix renders the resulting stack of a COMBINATION move in
// parentheses, carrier first then each carried piece, for the
// combination-suffix that follows the destination square.
func combinationSuffix(combined Piece) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range combined.Flatten() {
		if p.Heroic {
			sb.WriteByte('+')
		}
		sb.WriteByte(p.Kind.Char())
	}
	sb.WriteByte(')')
	return sb.String()
}

// getDisambiguation scans legalMoves for other moves of the same piece
// kind and color landing on the same destination, and returns the
// smallest disambiguation string (file, then rank, then full square) that
// distinguishes m from all of them.
func getDisambiguation(m InternalMove, legalMoves []InternalMove) string {
	var candidates []Square
	for _, other := range legalMoves {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if other.Piece.Kind != m.Piece.Kind || other.Piece.Color != m.Piece.Color {
			continue
		}
		candidates = append(candidates, other.From)
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return m.From.String()[1:]
	}
	return m.From.String()
}

// ParseSAN matches san against legalMoves and returns the unique match, or
// a MoveParseError if none or more than one candidate matches. It tolerates
// a trailing '+' or '#' and an optional disambiguation segment between the
// piece letter and the separator.
func ParseSAN(san string, legalMoves []InternalMove) (InternalMove, error) {
	s := strings.TrimSpace(san)
	s = strings.TrimSuffix(s, "#")
	s = strings.TrimSuffix(s, "+")
	if s == "" {
		return NoMove, &MoveParseError{Text: san, Cause: "empty move text"}
	}

	isDeploy := false
	if s[0] == '>' {
		isDeploy = true
		s = s[1:]
	}

	heroic := false
	if len(s) > 0 && s[0] == '+' {
		heroic = true
		s = s[1:]
	}
	if len(s) < 2 {
		return NoMove, &MoveParseError{Text: san, Cause: "too short"}
	}
	kind, ok := KindFromChar(s[0])
	if !ok {
		return NoMove, &MoveParseError{Text: san, Cause: "unknown piece letter"}
	}
	rest := s[1:]

	// A stacked mover renders as carrier(carried…) — strip that group before
	// looking for the separator; matching is by kind/color/heroic only, so
	// the carried letters themselves aren't needed to find the move.
	if len(rest) > 0 && rest[0] == '(' {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return NoMove, &MoveParseError{Text: san, Cause: "unmatched '(' in mover stack"}
		}
		rest = rest[end+1:]
	}

	sepIdx := strings.IndexAny(rest, "x_@&")
	var disambig, dest string
	var sep byte
	if sepIdx < 0 {
		// no separator present: a plain normal move. The destination is the
		// trailing square; anything before it is disambiguation.
		split := strings.LastIndexAny(rest, "abcdefghijk")
		if split < 0 {
			split = 0
		}
		disambig, dest = rest[:split], rest[split:]
	} else {
		disambig, dest, sep = rest[:sepIdx], rest[sepIdx+1:], rest[sepIdx]
	}

	// A combination move's destination is followed by the resulting
	// stack's (carried…) suffix; strip it before parsing the square.
	if paren := strings.IndexByte(dest, '('); paren >= 0 {
		dest = dest[:paren]
	}

	to, err := ParseSquare(dest)
	if err != nil {
		return NoMove, &MoveParseError{Text: san, Cause: "invalid destination square"}
	}

	var disambigFile, disambigRank = -1, -1
	switch {
	case len(disambig) == 0:
	case len(disambig) == 1 && disambig[0] >= 'a' && disambig[0] <= 'k':
		disambigFile = int(disambig[0] - 'a')
	case disambig[0] >= 'a' && disambig[0] <= 'k':
		sq, err := ParseSquare(disambig)
		if err != nil {
			return NoMove, &MoveParseError{Text: san, Cause: "invalid disambiguation square"}
		}
		disambigFile, disambigRank = sq.File(), sq.Rank()
	default:
		n, err := strconv.Atoi(disambig)
		if err != nil || n < 1 || n > NumRanks {
			return NoMove, &MoveParseError{Text: san, Cause: "invalid disambiguation"}
		}
		disambigRank = n - 1
	}

	var match *InternalMove
	for i := range legalMoves {
		m := legalMoves[i]
		if m.To != to || m.Piece.Kind != kind || m.Piece.Heroic != heroic {
			continue
		}
		if m.Flags.Has(DEPLOY) != isDeploy || separatorFor(m) != sep {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if match != nil {
			return NoMove, &MoveParseError{Text: san, Cause: "ambiguous move"}
		}
		match = &legalMoves[i]
	}
	if match == nil {
		return NoMove, &MoveParseError{Text: san, Cause: "no legal move matches"}
	}
	return *match, nil
}

// ToSANDeploy renders a DeployMove as a comma-joined sequence of each
// action's SAN, preceded by "<residue><" when StayResidue is non-nil — the
// carrier (or other piece) left behind on From once the batch completes.
func ToSANDeploy(dm DeployMove, legalMoves []InternalMove, givesCheck, givesCheckmate bool) string {
	parts := make([]string, len(dm.Actions))
	for i, a := range dm.Actions {
		check, mate := false, false
		if i == len(dm.Actions)-1 {
			check, mate = givesCheck, givesCheckmate
		}
		parts[i] = ToSAN(a, legalMoves, check, mate)
	}
	joined := strings.Join(parts, ",")
	if dm.StayResidue != nil {
		return MakeSanPiece(*dm.StayResidue) + "<" + joined
	}
	return joined
}

// ParseSANDeploy parses deploy-batch notation back into its ordered
// sub-moves and, if present, the stay-residue piece from the "<residue><"
// prefix. Each comma-separated segment is resolved against legalMoves the
// same way a single ParseSAN call would.
func ParseSANDeploy(s string, legalMoves []InternalMove) ([]InternalMove, *Piece, error) {
	s = strings.TrimSpace(s)

	var residue *Piece
	if idx := strings.IndexByte(s, '<'); idx >= 0 {
		residueText := s[:idx]
		heroic := false
		if len(residueText) > 0 && residueText[0] == '+' {
			heroic = true
			residueText = residueText[1:]
		}
		if len(residueText) != 1 {
			return nil, nil, &MoveParseError{Text: s, Cause: "invalid stay-residue prefix"}
		}
		kind, ok := KindFromChar(residueText[0])
		if !ok {
			return nil, nil, &MoveParseError{Text: s, Cause: "unknown residue piece letter"}
		}
		residue = &Piece{Kind: kind, Heroic: heroic}
		s = s[idx+1:]
	}

	parts := strings.Split(s, ",")
	moves := make([]InternalMove, 0, len(parts))
	for _, p := range parts {
		m, err := ParseSAN(p, legalMoves)
		if err != nil {
			return nil, nil, err
		}
		moves = append(moves, m)
	}
	if residue != nil && len(moves) > 0 {
		residue.Color = moves[0].Piece.Color
	}
	return moves, residue, nil
}
