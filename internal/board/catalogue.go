package board

import "fmt"

// kingHomeCol and the rook files flank it; castling is only catalogued
// from a color's canonical king square — castle entries exist only at
// the square a king would actually start from.
const (
	kingHomeCol       = 4
	rookQueensideCol  = 0
	rookKingsideCol   = SegCols - 1
)

func kingHomeSquare(c Color) Square {
	return NewSquare(int(c), 0, kingHomeCol)
}

// Catalogue is the precomputed, immutable set of geometrically possible
// moves for every (square, color, piece-type) triple. It
// is built once at process start and shared freely across threads.
type Catalogue struct {
	// Moves is the single flat buffer all (square,color,type) move lists
	// are sliced from.
	Moves []Move
	// Directive packs (offset<<8)|length for each (square,color,type)
	// triple, indexed by DirectiveIndex.
	Directive [NumSquares * NumColors * 6]uint32
}

// DirectiveIndex computes the flat index into Directive for a
// (square,color,type) triple.
func DirectiveIndex(sq Square, c Color, pt PieceType) int {
	return (int(sq)*NumColors+int(c))*6 + int(pt)
}

// Lookup returns the offset and length of the move sub-slice for the
// given (square,color,type) triple.
func (cat *Catalogue) Lookup(sq Square, c Color, pt PieceType) (offset, length int) {
	d := cat.Directive[DirectiveIndex(sq, c, pt)]
	return int(d >> 8), int(d & 0xFF)
}

// Slice returns the move sub-slice for the given (square,color,type)
// triple directly.
func (cat *Catalogue) Slice(sq Square, c Color, pt PieceType) []Move {
	offset, length := cat.Lookup(sq, c, pt)
	return cat.Moves[offset : offset+length]
}

// BuildCatalogue constructs the full move catalogue. It panics on
// catalogue-length overflow (more than 255 moves for one triple) — a
// geometry bug that should never survive past process init.
func BuildCatalogue() *Catalogue {
	cat := &Catalogue{}
	for sq := Square(0); sq < NumSquares; sq++ {
		for c := Color(0); c < NumColors; c++ {
			for pt := PieceType(0); pt < 6; pt++ {
				local := generateMoves(sq, c, pt)
				if len(local) > 255 {
					panic(fmt.Sprintf("catalogue length overflow at square=%v color=%v type=%v: %d moves", sq, c, pt, len(local)))
				}
				offset := len(cat.Moves)
				for i := range local {
					if local[i].Kind == KindSlider {
						local[i].SkipIndex += offset
					}
				}
				cat.Moves = append(cat.Moves, local...)
				cat.Directive[DirectiveIndex(sq, c, pt)] = uint32(offset<<8) | uint32(len(local))
			}
		}
	}
	return cat
}

func generateMoves(sq Square, c Color, pt PieceType) []Move {
	switch pt {
	case Pawn:
		return pawnMoves(sq, c)
	case Knight:
		return knightMoves(sq, c)
	case Bishop:
		return sliderMoves(sq, c, BishopDirections[:])
	case Rook:
		return sliderMoves(sq, c, RookDirections[:])
	case Queen:
		return sliderMoves(sq, c, QueenDirections[:])
	case King:
		return kingMoves(sq, c)
	default:
		return nil
	}
}

// pawnForwardDir returns the direction a color's pawn currently advances
// in from sq. A pawn only ever walks forward through its own home
// segment and then, after one center crossing, through the next
// segment in turn order — rays and pawns crossing the center are
// reflected; squares in the third segment are unreachable by forward
// motion and carry no pawn catalogue entries.
func pawnForwardDir(sq Square, c Color) (Direction, bool) {
	switch sq.Segment() {
	case int(c):
		return North, true
	case int(c.Next()):
		return South, true
	default:
		return Direction{}, false
	}
}

// isPromotionSquare reports whether sq is the "far row" for color c: row
// 0 of a segment other than c's own.
func isPromotionSquare(sq Square, c Color) bool {
	return sq.Row() == 0 && sq.Segment() != int(c)
}

func pawnMoves(sq Square, c Color) []Move {
	fwd, ok := pawnForwardDir(sq, c)
	if !ok {
		return nil
	}

	var moves []Move

	single, _ := Step(sq, fwd)
	if single != NoSquare {
		moves = append(moves, Move{
			Kind: KindPawnSingle, Color: c, From: sq, To: single,
			PromoteToQueen: isPromotionSquare(single, c),
		})

		// Row 1 of the home segment is a pawn's starting rank: row 0 is
		// the back rank held by the other piece types.
		if sq.Segment() == int(c) && sq.Row() == 1 {
			double, _ := Step(single, fwd)
			if double != NoSquare {
				moves = append(moves, Move{
					Kind: KindPawnDouble, Color: c, From: sq, To: double,
					Intermediate:   single,
					PromoteToQueen: isPromotionSquare(double, c),
				})
			}
		}
	}

	diag1, diag2 := NE, NW
	if fwd.DRow < 0 {
		diag1, diag2 = SE, SW
	}
	for _, d := range [2]Direction{diag1, diag2} {
		dst, _ := Step(sq, d)
		if dst != NoSquare {
			moves = append(moves, Move{
				Kind: KindPawnCapture, Color: c, From: sq, To: dst,
				PromoteToQueen: isPromotionSquare(dst, c),
			})
		}
	}

	return moves
}

func knightMoves(sq Square, c Color) []Move {
	var moves []Move
	seen := make(map[Square]bool, 8)
	for _, off := range knightOffsets {
		dst := KnightStep(sq, off[0], off[1])
		if dst == NoSquare || seen[dst] {
			continue
		}
		seen[dst] = true
		moves = append(moves, Move{Kind: KindKnight, Color: c, From: sq, To: dst})
	}
	return moves
}

func kingMoves(sq Square, c Color) []Move {
	var moves []Move
	seen := make(map[Square]bool, 8)
	for _, dir := range KingDirections {
		dst, _ := Step(sq, dir)
		if dst == NoSquare || seen[dst] {
			continue
		}
		seen[dst] = true
		moves = append(moves, Move{Kind: KindKingStep, Color: c, From: sq, To: dst})
	}
	if sq == kingHomeSquare(c) {
		moves = append(moves, castleMoves(c)...)
	}
	return moves
}

func castleMoves(c Color) []Move {
	seg := int(c)
	kingFrom := NewSquare(seg, 0, kingHomeCol)
	rookQ := NewSquare(seg, 0, rookQueensideCol)
	rookK := NewSquare(seg, 0, rookKingsideCol)
	rookPiece := NewPiece(Rook, c)
	return []Move{
		{
			Kind: KindCastle, Color: c, From: kingFrom, To: NewSquare(seg, 0, kingHomeCol-2),
			CastleRookFrom: rookQ, CastleRookTo: NewSquare(seg, 0, kingHomeCol-1), CastleRookPiece: rookPiece,
		},
		{
			Kind: KindCastle, Color: c, From: kingFrom, To: NewSquare(seg, 0, kingHomeCol+2),
			CastleRookFrom: rookK, CastleRookTo: NewSquare(seg, 0, kingHomeCol+1), CastleRookPiece: rookPiece,
		},
	}
}

// sliderMoves emits every prefix of every ray in dirs as a separate
// move, nearest destination first. Each move's SkipIndex (set here to a
// ray-local offset, patched to a global one by BuildCatalogue) is the
// index one past the ray's farthest move: the move-generation loop
// (internal/board.State.Enumerate) jumps straight there the instant a
// same-color occupant blocks any destination on the ray, since a piece
// at that square blocks every farther destination too.
func sliderMoves(sq Square, c Color, dirs []Direction) []Move {
	var moves []Move
	for _, dir := range dirs {
		squares := Ray(sq, dir, maxRaySteps)
		if len(squares) == 0 {
			continue
		}
		rayStart := len(moves)
		for i, dst := range squares {
			var intermediates []Square
			if i > 0 {
				intermediates = append([]Square(nil), squares[:i]...)
			}
			moves = append(moves, Move{
				Kind: KindSlider, Color: c, From: sq, To: dst,
				Intermediates: intermediates,
			})
		}
		rayEnd := len(moves)
		for i := rayStart; i < rayEnd; i++ {
			moves[i].SkipIndex = rayEnd
		}
	}
	return moves
}
