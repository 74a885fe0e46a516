package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the CoTuLenh starting position.
const StartFEN = "6c4/1n2fh1hf2/3a2s2a1/2n1gt1tg2/2ie2m2ei/11/11/2IE2M2EI/2N1GT1TG2/3A2S2A1/1N2FH1HF2/6C4 r - - 0 1"

// ParseFEN parses an extended FEN string into a fresh Board: piece
// placement / side to move / castling placeholder / en-passant placeholder
// / half-move clock / full-move number, with an optional trailing deploy
// tag field.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, &FenParseError{Field: "fen", Value: fen, Cause: "need at least 4 fields"}
	}

	b := NewBoard()

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "r":
		b.Turn = Red
	case "b":
		b.Turn = Blue
	default:
		return nil, &FenParseError{Field: "turn", Value: parts[1], Cause: "must be 'r' or 'b'"}
	}

	if parts[2] != "-" {
		return nil, &FenParseError{Field: "castling", Value: parts[2], Cause: "must be '-', this variant has no castling"}
	}
	if parts[3] != "-" {
		return nil, &FenParseError{Field: "en_passant", Value: parts[3], Cause: "must be '-', this variant has no en passant"}
	}

	if len(parts) > 4 {
		hm, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, &FenParseError{Field: "halfmove", Value: parts[4], Cause: "not an integer"}
		}
		b.HalfMoves = hm
	}
	if len(parts) > 5 {
		mn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, &FenParseError{Field: "fullmove", Value: parts[5], Cause: "not an integer"}
		}
		b.MoveNumber = mn
	}

	if len(parts) > 6 {
		if err := parseDeployTag(b, parts[6]); err != nil {
			return nil, err
		}
	}

	b.Hash = ComputeHash(b)
	return b, nil
}

// parseDeployTag parses the optional "D:<square>:<letters>" field recording
// an in-progress deploy session across a FEN save/reload boundary.
func parseDeployTag(b *Board, tag string) error {
	fields := strings.Split(tag, ":")
	if len(fields) != 3 || fields[0] != "D" {
		return &FenParseError{Field: "deploy", Value: tag, Cause: "expected D:<square>:<letters>"}
	}
	origin, err := ParseSquare(fields[1])
	if err != nil {
		return &FenParseError{Field: "deploy", Value: tag, Cause: "invalid origin square"}
	}
	p := b.Get(origin)
	if p == nil {
		return &FenParseError{Field: "deploy", Value: tag, Cause: "no stack at deploy origin"}
	}
	var remaining []Piece
	for i := 0; i < len(fields[2]); i++ {
		heroic := false
		c := fields[2][i]
		if c == '+' {
			heroic = true
			i++
			if i >= len(fields[2]) {
				return &FenParseError{Field: "deploy", Value: tag, Cause: "dangling heroic marker"}
			}
			c = fields[2][i]
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		k, ok := KindFromChar(c)
		if !ok {
			return &FenParseError{Field: "deploy", Value: tag, Cause: fmt.Sprintf("unknown kind letter %q", c)}
		}
		remaining = append(remaining, Piece{Kind: k, Color: p.Color, Heroic: heroic})
	}
	b.DeploySession = &DeploySession{Origin: origin, Color: p.Color, Original: p.Clone(), Remaining: remaining}
	return nil
}

// parsePiecePlacement parses the 12-rank placement section, supporting
// parenthesized stacks "(CF)" (carrier letter first, carried letters
// following) and a leading '+' heroic marker on any letter.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return &FenParseError{Field: "placement", Value: placement, Cause: fmt.Sprintf("need %d ranks, got %d", NumRanks, len(ranks))}
	}

	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i
		file := 0
		runes := []rune(rankStr)
		for pos := 0; pos < len(runes); pos++ {
			if file >= NumFiles {
				return &FenParseError{Field: "placement", Value: placement, Cause: fmt.Sprintf("too many squares in rank %d", rank+1)}
			}
			c := runes[pos]
			if c >= '0' && c <= '9' {
				n := 0
				for pos < len(runes) && runes[pos] >= '0' && runes[pos] <= '9' {
					n = n*10 + int(runes[pos]-'0')
					pos++
				}
				pos--
				file += n
				continue
			}
			if c == '(' {
				end := strings.IndexRune(string(runes[pos:]), ')')
				if end < 0 {
					return &FenParseError{Field: "placement", Value: placement, Cause: "unterminated stack group"}
				}
				group := string(runes[pos+1 : pos+end])
				pos += end
				piece, err := parseStackGroup(group)
				if err != nil {
					return err
				}
				sq := NewSquare(file, rank)
				if err := b.Put(sq, piece); err != nil {
					return err
				}
				file++
				continue
			}
			piece, consumed, err := parsePieceLetter(runes, pos)
			if err != nil {
				return err
			}
			pos += consumed - 1
			sq := NewSquare(file, rank)
			if err := b.Put(sq, piece); err != nil {
				return err
			}
			file++
		}
		if file != NumFiles {
			return &FenParseError{Field: "placement", Value: placement, Cause: fmt.Sprintf("rank %d has %d files, want %d", rank+1, file, NumFiles)}
		}
	}
	return nil
}

// parsePieceLetter parses a single (possibly heroic-prefixed) piece letter
// starting at runes[pos], returning the piece and how many runes it
// consumed. Color is determined by case: uppercase Red, lowercase Blue.
func parsePieceLetter(runes []rune, pos int) (Piece, int, error) {
	heroic := false
	consumed := 0
	c := runes[pos]
	if c == '+' {
		heroic = true
		pos++
		consumed++
		if pos >= len(runes) {
			return Piece{}, 0, &FenParseError{Cause: "dangling heroic marker"}
		}
		c = runes[pos]
	}
	consumed++
	color := Red
	upper := byte(c)
	if c >= 'a' && c <= 'z' {
		color = Blue
		upper = byte(c) - ('a' - 'A')
	}
	k, ok := KindFromChar(upper)
	if !ok {
		return Piece{}, 0, &FenParseError{Cause: fmt.Sprintf("unknown piece letter %q", string(c))}
	}
	return Piece{Kind: k, Color: color, Heroic: heroic}, consumed, nil
}

// parseStackGroup parses the contents of a "(...)" stack group: the first
// letter (with optional heroic prefix) is the carrier, the rest are
// carried pieces in order.
func parseStackGroup(group string) (Piece, error) {
	runes := []rune(group)
	carrier, consumed, err := parsePieceLetter(runes, 0)
	if err != nil {
		return Piece{}, err
	}
	pos := consumed
	for pos < len(runes) {
		p, n, err := parsePieceLetter(runes, pos)
		if err != nil {
			return Piece{}, err
		}
		if p.Color != carrier.Color {
			return Piece{}, &StackError{Carrier: carrier.Kind, Incoming: p.Kind, Cause: "mixed colors in one stack"}
		}
		carrier.Carrying = append(carrier.Carrying, p)
		pos += n
	}
	if !ValidStack(carrier) {
		return Piece{}, &StackError{Carrier: carrier.Kind, Cause: "stack exceeds carrier capacity"}
	}
	return carrier, nil
}

// ToFEN renders the board back to extended FEN, including a trailing
// deploy tag if a session is active.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for r := NumRanks - 1; r >= 0; r-- {
		empty := 0
		for f := 0; f < NumFiles; f++ {
			sq := NewSquare(f, r)
			p := b.Squares[sq]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(renderPiece(*p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.Turn == Red {
		sb.WriteByte('r')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteString(" - - ")
	sb.WriteString(strconv.Itoa(b.HalfMoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.MoveNumber))

	if b.DeploySession != nil {
		sb.WriteString(" D:")
		sb.WriteString(b.DeploySession.Origin.String())
		sb.WriteByte(':')
		for _, p := range b.DeploySession.Remaining {
			sb.WriteString(renderPieceLetter(p))
		}
	}

	return sb.String()
}

func renderPieceLetter(p Piece) string {
	s := string(p.Kind.Char())
	if p.Color == Blue {
		s = strings.ToLower(s)
	}
	if p.Heroic {
		s = "+" + s
	}
	return s
}

func renderPiece(p Piece) string {
	if !p.IsStack() {
		return renderPieceLetter(p)
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(renderPieceLetter(Piece{Kind: p.Kind, Color: p.Color, Heroic: p.Heroic}))
	for _, c := range p.Carrying {
		sb.WriteString(renderPieceLetter(c))
	}
	sb.WriteByte(')')
	return sb.String()
}
