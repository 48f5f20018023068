// Command threeplayer-agent is a thin smoke-test binary: it builds one
// Agent with default parameters and a fixed per-turn time budget, feeds
// it a starting position, and prints the move it decides. It does not
// implement any protocol loop — there is no external reference board
// wired in here, only a fixture standing in for one.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/Sothatsit/ThreePlayerChess/agent"
	"github.com/Sothatsit/ThreePlayerChess/internal/board"
	"github.com/Sothatsit/ThreePlayerChess/internal/eval"
	"github.com/Sothatsit/ThreePlayerChess/internal/timectl"
)

var turnBudget = flag.Duration("turn-budget", 5*time.Second, "per-turn time budget handed to the controller")

func main() {
	flag.Parse()

	cat := board.BuildCatalogue()
	a := agent.New(board.Red, cat, defaultSchedule(), agent.PVS, time.Now().UnixNano())

	rb := newStartingPosition()
	// Decide takes the remaining game time and spends 1/ExpectedGameTurns
	// of it on this turn, so scale the per-turn budget up accordingly.
	from, to, err := a.Decide(rb, *turnBudget*timectl.ExpectedGameTurns)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}
	log.Printf("Red plays %v -> %v", from, to)
}

// defaultSchedule is a placeholder evaluation-parameter schedule; a real
// deployment would load one from internal/paramstore instead.
func defaultSchedule() eval.Combined {
	start := eval.Parameters{
		SelfWeight:     1,
		TypeValues:     [6]float64{100, 320, 330, 500, 900, 0},
		PawnRowValue:   5,
		MoveCountValue: 1,
	}
	end := eval.Parameters{
		SelfWeight:     1.5,
		TypeValues:     [6]float64{100, 300, 300, 550, 950, 0},
		PawnRowValue:   15,
		MoveCountValue: 0.5,
	}
	return eval.Combined{Start: start, End: end}
}

// startingPosition is a minimal board.RefBoard fixture holding a
// standard-complement starting position for all three colors. A real
// deployment supplies its own reference board implementation; this
// stands in only so the binary has something to decide about.
type startingPosition struct {
	pieces map[board.Square]board.Piece
}

func newStartingPosition() *startingPosition {
	sp := &startingPosition{pieces: map[board.Square]board.Piece{}}
	backRank := [8]board.PieceType{
		board.Rook, board.Knight, board.Bishop, board.Queen,
		board.King, board.Bishop, board.Knight, board.Rook,
	}
	for c := board.Color(0); c < board.NumColors; c++ {
		for col, pt := range backRank {
			sp.pieces[board.NewSquare(int(c), 0, col)] = board.NewPiece(pt, c)
			sp.pieces[board.NewSquare(int(c), 1, col)] = board.NewPiece(board.Pawn, c)
		}
	}
	return sp
}

func (sp *startingPosition) SquareCount() int       { return board.NumSquares }
func (sp *startingPosition) TurnColor() board.Color { return board.Red }
func (sp *startingPosition) MoveCount() int         { return 0 }
func (sp *startingPosition) TimeRemaining(board.Color) time.Duration {
	return 10 * time.Minute
}
func (sp *startingPosition) GameOver() (bool, board.Color, board.Color) {
	return false, board.NoColor, board.NoColor
}
func (sp *startingPosition) PieceAt(seg, row, col int) (board.PieceType, board.Color, bool) {
	p, ok := sp.pieces[board.NewSquare(seg, row, col)]
	if !ok {
		return 0, 0, false
	}
	return p.Type(), p.ColorOf(), true
}
func (sp *startingPosition) TryMove(board.Square, board.Square) bool { return false }
