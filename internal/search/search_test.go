package search

import (
	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// trivialModel builds a UtilityModel directly from board.PieceValues, with
// no pawn-rank or mobility terms — enough to drive deterministic,
// hand-checkable search comparisons.
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

// threeKingsState is the minimal always-legal position: one king per
// color, none adjacent enough to threaten an immediate capture at depth 1.
func threeKingsState() *board.State {
	st := &board.State{Turn: board.Red}
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.RecomputeUtility(trivialModel())
	return st
}

// oneMoveWinState gives Red a queen one step from capturing Green's king,
// with Red to move — exercises the instant-win short-circuit.
func oneMoveWinState() *board.State {
	st := &board.State{Turn: board.Red}
	st.Pieces[board.NewSquare(0, 0, 4)] = board.NewPiece(board.King, board.Red)
	st.Pieces[board.NewSquare(1, 0, 4)] = board.NewPiece(board.King, board.Green)
	st.Pieces[board.NewSquare(2, 0, 4)] = board.NewPiece(board.King, board.Blue)
	st.Pieces[board.NewSquare(1, 1, 4)] = board.NewPiece(board.Queen, board.Red)
	st.RecomputeUtility(trivialModel())
	return st
}

func newKernel() *Kernel {
	cat := board.BuildCatalogue()
	return NewKernel(cat, 6, 4, 1)
}
