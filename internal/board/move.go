package board

// Kind tags which of the catalogue's move variants a Move is. All
// variants share one kernel (enumerate/apply); Kind selects the
// per-variant validation and the extra immutable fields that ride along
// with From/To.
type Kind uint8

const (
	KindPawnSingle Kind = iota
	KindPawnDouble
	KindPawnCapture
	KindKnight
	KindSlider
	KindKingStep
	KindCastle
)

// Move is an immutable catalogued move, keyed by (From,To) plus
// per-variant metadata. A Move knows how to validate itself against a
// State, given only that the destination does not hold a same-color
// piece (that filter is applied by the caller, once, before dispatch).
type Move struct {
	Kind  Kind
	Color Color // color this catalogued move was generated for
	From  Square
	To    Square

	// Pawn-specific.
	PromoteToQueen bool
	Intermediate   Square // double-step: square that must be empty

	// Slider-specific. Intermediates excludes the destination square;
	// ordered from nearest to farthest along the ray.
	Intermediates []Square
	// SkipIndex is the catalogue index one past the last move of this
	// move's ray (rays are catalogued nearest destination first): the
	// index the move-generation loop jumps to when this move's
	// destination holds a same-color piece.
	SkipIndex int

	// Castle-specific.
	CastleRookFrom  Square
	CastleRookTo    Square
	CastleRookPiece Piece
}

// IsValidMove checks the move-specific legality predicate: intermediate
// squares empty for sliders and the double pawn step, the destination
// holding (or not holding) a piece as the variant requires, and the
// castle preconditions. It does not check "destination not same-color"
// (the caller already filtered that) nor whether the move leaves the
// mover's own king in check (enforced by state machinery above this
// layer).
func (m *Move) IsValidMove(st *State) bool {
	switch m.Kind {
	case KindPawnSingle:
		return !st.PieceAt(m.To).Present()
	case KindPawnDouble:
		return !st.PieceAt(m.Intermediate).Present() && !st.PieceAt(m.To).Present()
	case KindPawnCapture:
		dst := st.PieceAt(m.To)
		return dst.Present() && dst.ColorOf() != m.Color
	case KindKnight, KindKingStep:
		return true
	case KindSlider:
		for _, sq := range m.Intermediates {
			if st.PieceAt(sq).Present() {
				return false
			}
		}
		return true
	case KindCastle:
		if st.PieceAt(m.CastleRookFrom) != m.CastleRookPiece {
			return false
		}
		for _, sq := range rookPath(m.From, m.CastleRookFrom) {
			if st.PieceAt(sq).Present() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// rookPath lists the squares strictly between the king's origin and the
// castling rook's origin, which must all be empty for the castle to be
// legal.
func rookPath(kingFrom, rookFrom Square) []Square {
	if kingFrom.Segment() != rookFrom.Segment() || kingFrom.Row() != rookFrom.Row() {
		return nil
	}
	row, seg := kingFrom.Row(), kingFrom.Segment()
	lo, hi := kingFrom.Col(), rookFrom.Col()
	if lo > hi {
		lo, hi = hi, lo
	}
	squares := make([]Square, 0, hi-lo-1)
	for c := lo + 1; c < hi; c++ {
		squares = append(squares, NewSquare(seg, row, c))
	}
	return squares
}

// NoMoveIndex marks an empty MoveList slot / absent move reference.
const NoMoveIndex = -1

// MoveList is a fixed-capacity list of catalogue indices, reused across
// plies to avoid per-move allocation in the search hot path.
type MoveList struct {
	idx   [256]int32
	count int
}

// Reset empties the list for reuse.
func (ml *MoveList) Reset() {
	ml.count = 0
}

// Add appends a catalogue index.
func (ml *MoveList) Add(catalogueIndex int) {
	ml.idx[ml.count] = int32(catalogueIndex)
	ml.count++
}

// Len returns the number of entries.
func (ml *MoveList) Len() int {
	return ml.count
}

// At returns the catalogue index stored at position i.
func (ml *MoveList) At(i int) int {
	return int(ml.idx[i])
}
