package board

// Zobrist hash keys for position hashing. Search never reads these —
// they exist only so package oracle can log which positions it has
// already cross-checked in a verification run, not as a transposition
// table (there isn't one).
var (
	zobristPiece [NumColors][6][NumSquares]uint64
	zobristTurn  [NumColors]uint64
)

func init() {
	initZobrist()
}

// prng is a small reproducible xorshift64* generator, used only to seed
// the Zobrist tables deterministically at process start.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)
	for c := Color(0); c < NumColors; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
		zobristTurn[c] = rng.next()
	}
}

// Hash computes a Zobrist hash of s's piece placement and turn color.
// It ignores GameOver/Utility/Eliminated: two states with identical
// pieces and turn but different terminal bookkeeping still hash equal,
// which is what a "have I already cross-checked this position" log
// needs.
func (s *State) Hash() uint64 {
	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		p := s.Pieces[sq]
		if !p.Present() {
			continue
		}
		h ^= zobristPiece[p.ColorOf()][p.Type()][sq]
	}
	h ^= zobristTurn[s.Turn]
	return h
}
