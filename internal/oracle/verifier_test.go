package oracle

import (
	"testing"
	"time"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

func trivialModel() *board.UtilityModel {
	m := &board.UtilityModel{SelfWeight: 1}
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		for c := board.Color(0); c < board.NumColors; c++ {
			for pt := board.PieceType(0); pt < 6; pt++ {
				m.Table[board.DirectiveIndex(sq, c, pt)] = int16(board.PieceValues[pt])
			}
		}
	}
	return m
}

func threeKingsState() *board.State {
	st := &board.State{Turn: board.Red}
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.RecomputeUtility(trivialModel())
	return st
}

func TestCheckIncrementalUtilityPasses(t *testing.T) {
	cat := board.BuildCatalogue()
	v := NewVerifier(cat, nil)
	if err := v.CheckIncrementalUtility(threeKingsState(), trivialModel()); err != nil {
		t.Fatalf("unexpected failure on a freshly recomputed state: %v", err)
	}
}

func TestCheckIncrementalUtilityCatchesStaleVector(t *testing.T) {
	cat := board.BuildCatalogue()
	v := NewVerifier(cat, nil)
	st := threeKingsState()
	st.Utility[board.Red] += 1 // corrupt the incremental bookkeeping

	if err := v.CheckIncrementalUtility(st, trivialModel()); err == nil {
		t.Fatal("expected a stale utility vector to be caught")
	}
}

func TestCheckSkipIndexMonotonePasses(t *testing.T) {
	cat := board.BuildCatalogue()
	v := NewVerifier(cat, nil)

	st := &board.State{Turn: board.Red}
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.Pieces[board.NewSquare(0, 1, 4)] = board.NewPiece(board.Rook, board.Red)
	st.Pieces[board.NewSquare(0, 3, 4)] = board.NewPiece(board.Pawn, board.Red)

	if err := v.CheckSkipIndexMonotone(st); err != nil {
		t.Fatalf("unexpected skip-index violation: %v", err)
	}
}

// refBoardOverCatalogue is a RefBoard whose TryMove answers exactly what
// the catalogue itself would say, used to check CheckMoveParity's own
// plumbing (a real external board is out of scope here).
type refBoardOverCatalogue struct {
	cat *board.Catalogue
	st  *board.State
}

func (r *refBoardOverCatalogue) SquareCount() int { return board.NumSquares }
func (r *refBoardOverCatalogue) TurnColor() board.Color { return r.st.Turn }
func (r *refBoardOverCatalogue) MoveCount() int { return 0 }
func (r *refBoardOverCatalogue) TimeRemaining(board.Color) time.Duration { return 0 }
func (r *refBoardOverCatalogue) GameOver() (bool, board.Color, board.Color) {
	return r.st.IsGameOver()
}
func (r *refBoardOverCatalogue) PieceAt(seg, row, col int) (board.PieceType, board.Color, bool) {
	p := r.st.PieceAt(board.NewSquare(seg, row, col))
	if !p.Present() {
		return 0, 0, false
	}
	return p.Type(), p.ColorOf(), true
}
func (r *refBoardOverCatalogue) TryMove(from, to board.Square) bool {
	var moves board.MoveList
	r.st.Enumerate(r.cat, &moves)
	for i := 0; i < moves.Len(); i++ {
		mv := r.cat.Moves[moves.At(i)]
		if mv.From == from && mv.To == to {
			return true
		}
	}
	return false
}

func TestCheckMoveParityPasses(t *testing.T) {
	cat := board.BuildCatalogue()
	v := NewVerifier(cat, nil)
	st := threeKingsState()
	rb := &refBoardOverCatalogue{cat: cat, st: st}

	if err := v.CheckMoveParity(st, rb); err != nil {
		t.Fatalf("unexpected move-parity mismatch: %v", err)
	}
}
