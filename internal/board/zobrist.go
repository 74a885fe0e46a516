package board

// Zobrist-style position hashing, built on a fixed-seed xorshift64* table
// covering every piece/stack/deploy-session state component: repetition
// detection must fold in side-to-move and deploy session state, not just
// piece placement.
var (
	zobristCarrier   [2][11][2][MailboxSize]uint64 // [Color][Kind][Heroic][Square]
	zobristCarried   [2][11][2][MaxCarried][MailboxSize]uint64
	zobristSideToMove uint64
	zobristDeploy    [MailboxSize]uint64 // XORed in once per square with an active deploy session
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm.
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := 0; c < 2; c++ {
		for k := 0; k < 11; k++ {
			for h := 0; h < 2; h++ {
				for sq := 0; sq < MailboxSize; sq++ {
					zobristCarrier[c][k][h][sq] = rng.next()
				}
				for slot := 0; slot < MaxCarried; slot++ {
					for sq := 0; sq < MailboxSize; sq++ {
						zobristCarried[c][k][h][slot][sq] = rng.next()
					}
				}
			}
		}
	}

	for sq := 0; sq < MailboxSize; sq++ {
		zobristDeploy[sq] = rng.next()
	}

	zobristSideToMove = rng.next()
}

func heroicIdx(h bool) int {
	if h {
		return 1
	}
	return 0
}

// ZobristSideToMove returns the key XORed in when it is Blue to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// pieceKey returns the key for a single occupant (carrier or a specific
// carried slot) of the given kind/color/heroic at sq. slot < 0 means the
// carrier itself; slot >= 0 indexes a carried piece.
func pieceKey(color Color, kind PieceKind, heroic bool, slot int, sq Square) uint64 {
	h := heroicIdx(heroic)
	if slot < 0 {
		return zobristCarrier[color][kind][h][sq]
	}
	return zobristCarried[color][kind][h][slot][sq]
}

// ComputeHash computes the full position key from scratch: every square's
// occupant (carrier plus each carried piece by slot), side to move, and
// the active deploy session's origin square, if any. Every caller
// recomputes the key this way; there is no incremental update.
func ComputeHash(b *Board) uint64 {
	var h uint64
	for sq := 0; sq < MailboxSize; sq++ {
		p := b.Squares[sq]
		if p == nil {
			continue
		}
		h ^= pieceKey(p.Color, p.Kind, p.Heroic, -1, Square(sq))
		for slot, c := range p.Carrying {
			h ^= pieceKey(c.Color, c.Kind, c.Heroic, slot, Square(sq))
		}
	}
	if b.Turn == Blue {
		h ^= zobristSideToMove
	}
	if b.DeploySession != nil {
		h ^= zobristDeploy[b.DeploySession.Origin]
	}
	return h
}
