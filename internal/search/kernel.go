// Package search implements the move-decision strategies that share one
// move-generation kernel: Minimax, Maximax, Quiescence,
// Restricted Quiescence, and Principal Variation Search. Every strategy
// is built on a Kernel, which owns the pre-allocated scratch-state fleet,
// per-depth move-list buffers, and the owned RNG used for fair-coin
// tie-breaking — each strategy instance gets its own seedable RNG so
// tests stay deterministic.
package search

import (
	"math/rand"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Kernel holds everything every search strategy needs to recurse without
// allocating: a scratch board.State per ply depth, a board.MoveList per
// ply depth, and a quiescence-extension scratch pool indexed separately.
type Kernel struct {
	Catalogue *board.Catalogue

	scratch  []board.State
	moveBufs []board.MoveList

	qScratch  []board.State
	qMoveBufs []board.MoveList

	rng *rand.Rand
}

// NewKernel builds a Kernel whose scratch fleet covers maxDepth main plies
// and maxQDepth quiescence-extension plies, seeded for reproducible
// tie-breaking.
func NewKernel(cat *board.Catalogue, maxDepth, maxQDepth int, seed int64) *Kernel {
	return &Kernel{
		Catalogue: cat,
		scratch:   make([]board.State, maxDepth+1),
		moveBufs:  make([]board.MoveList, maxDepth+1),
		qScratch:  make([]board.State, maxQDepth+1),
		qMoveBufs: make([]board.MoveList, maxQDepth+1),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (k *Kernel) stateAt(depth int) *board.State     { return &k.scratch[depth] }
func (k *Kernel) movesAt(depth int) *board.MoveList  { return &k.moveBufs[depth] }
func (k *Kernel) qStateAt(depth int) *board.State    { return &k.qScratch[depth] }
func (k *Kernel) qMovesAt(depth int) *board.MoveList { return &k.qMoveBufs[depth] }

// randomCatalogued is the root "no legal move available" fallback: it
// returns a uniformly-random catalogued move for the side to
// move, ignoring legality, rather than ever reporting "no move."
func (k *Kernel) randomCatalogued(st *board.State) int {
	var candidates []int
	turn := st.Turn
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		p := st.PieceAt(sq)
		if !p.Present() || p.ColorOf() != turn {
			continue
		}
		offset, length := k.Catalogue.Lookup(sq, turn, p.Type())
		for i := 0; i < length; i++ {
			candidates = append(candidates, offset+i)
		}
	}
	if len(candidates) == 0 {
		return board.NoMoveIndex
	}
	return candidates[k.rng.Intn(len(candidates))]
}

// isCapture reports whether mv, applied to st, would capture a piece
// (used by Quiescence's selective-deepening trigger).
func isCapture(st *board.State, mv board.Move) bool {
	return st.PieceAt(mv.To).Present()
}

// Result is the outcome of a root-level Decide call: the chosen move's
// catalogue index and its value from the deciding agent's perspective.
type Result struct {
	MoveIndex int
	Value     int64
}
