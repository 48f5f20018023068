package search

import (
	"testing"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

func TestPVSZeroDepthReturnsRootUtility(t *testing.T) {
	k := newKernel()
	p := NewPVS(k, board.Red)
	st := threeKingsState()

	res := p.Decide(st, trivialModel(), 0)
	if res.MoveIndex != board.NoMoveIndex {
		t.Fatalf("expected NoMoveIndex at depth 0, got %d", res.MoveIndex)
	}
	if res.Value != st.Utility[board.Red] {
		t.Fatalf("expected root utility %d at depth 0, got %d", st.Utility[board.Red], res.Value)
	}
}

func TestPVSTakesFreeQueenCapture(t *testing.T) {
	k := newKernel()
	p := NewPVS(k, board.Blue)
	model := trivialModel()

	st := &board.State{Turn: board.Blue}
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.Pieces[board.NewSquare(2, 1, 4)] = board.NewPiece(board.Rook, board.Blue)
	st.Pieces[board.NewSquare(2, 3, 4)] = board.NewPiece(board.Queen, board.Red)
	st.RecomputeUtility(model)

	res := p.Decide(st, model, 1)
	mv := k.Catalogue.Moves[res.MoveIndex]
	if mv.To != board.NewSquare(2, 3, 4) {
		t.Fatalf("expected Blue's rook to capture the undefended red queen, got move to %v", mv.To)
	}
}

// TestPVSMatchesMinimaxValue checks the parity every depth up to 4 must
// hold: PVS's alpha-beta pruning must never change the chosen value
// relative to an unpruned Minimax search of the same position.
func TestPVSMatchesMinimaxValue(t *testing.T) {
	model := trivialModel()
	positions := []*board.State{threeKingsState(), capturePosition()}

	for _, st := range positions {
		for depth := 1; depth <= 4; depth++ {
			km := NewKernel(board.BuildCatalogue(), depth+1, 1, 1)
			kp := NewKernel(board.BuildCatalogue(), depth+1, 1, 1)
			m := NewMinimax(km, board.Red)
			p := NewPVS(kp, board.Red)

			rm := m.Decide(st, model, depth)
			rp := p.Decide(st, model, depth)
			if rm.Value != rp.Value {
				t.Fatalf("depth %d: Minimax value %d != PVS value %d", depth, rm.Value, rp.Value)
			}
		}
	}
}

func capturePosition() *board.State {
	st := &board.State{Turn: board.Red}
	model := trivialModel()
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.Pieces[board.NewSquare(0, 1, 4)] = board.NewPiece(board.Rook, board.Red)
	st.Pieces[board.NewSquare(0, 3, 4)] = board.NewPiece(board.Pawn, board.Green)
	st.Pieces[board.NewSquare(2, 1, 1)] = board.NewPiece(board.Bishop, board.Blue)
	st.RecomputeUtility(model)
	return st
}
