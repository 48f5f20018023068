package search

import (
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// PVS is Principal Variation Search adapted to the three-player minimax
// semantics of Minimax: the agent maximizes its own
// utility, both opponents minimize it. Every value threaded through the
// recursion is `mul` times the agent's utility; mul flips sign only when
// the ply transitions between an agent turn and a non-agent turn, never
// between the two opponents in a row (the keepAlphaBeta condition below).
// That asymmetry — two "minimize" plies back to back before the next
// "maximize" ply — is exactly why a plain per-ply-alternating negamax
// fold would be wrong here and a transition-gated one is used instead.
type PVS struct {
	*Kernel
	Agent board.Color
}

// NewPVS builds a PVS strategy sharing k's scratch fleet.
func NewPVS(k *Kernel, agent board.Color) *PVS {
	return &PVS{Kernel: k, Agent: agent}
}

const (
	negInf = int64(math.MinInt64 / 2)
	posInf = int64(math.MaxInt64 / 2)
)

// Decide searches root to depth plies: the first root move with the full
// (alpha,beta) window, later moves with a null window re-searched on
// failing high.
func (p *PVS) Decide(root *board.State, model *board.UtilityModel, depth int) Result {
	if depth <= 0 {
		return Result{board.NoMoveIndex, root.Utility[p.Agent]}
	}

	moves := p.movesAt(depth)
	root.Enumerate(p.Catalogue, moves)
	if moves.Len() == 0 {
		idx := p.randomCatalogued(root)
		return Result{idx, root.Utility[p.Agent]}
	}

	child := p.stateAt(depth - 1)
	alpha, beta := negInf, posInf
	bestIdx := board.NoMoveIndex
	bestVal := negInf

	for i := 0; i < moves.Len(); i++ {
		idx := moves.At(i)
		root.CopyInto(child)
		child.ApplyMove(model, p.Catalogue.Moves[idx])

		v := p.searchChild(root, child, model, depth-1, alpha, beta, 1, i == 0)

		if bestIdx == board.NoMoveIndex || v > bestVal {
			bestVal, bestIdx = v, idx
		}
		if v > alpha {
			alpha = v
		}
	}
	return Result{bestIdx, bestVal}
}

// searchChild applies the agent/non-agent transition rule (the
// mul/keepAlphaBeta convention) once and runs the PVS null-window-then-
// research procedure for one child.
func (p *PVS) searchChild(parent, child *board.State, model *board.UtilityModel, depth int, alpha, beta, mul int64, first bool) int64 {
	keep := (parent.Turn == p.Agent) == (child.Turn == p.Agent)
	childMul := mul
	lo, hi := alpha, beta
	sign := int64(1)
	if !keep {
		childMul = -mul
		lo, hi = -beta, -alpha
		sign = -1
	}

	if first {
		return sign * p.search(child, model, depth, lo, hi, childMul)
	}

	nullHi := lo + 1
	v := sign * p.search(child, model, depth, lo, nullHi, childMul)
	if v > alpha && v < beta {
		v = sign * p.search(child, model, depth, lo, hi, childMul)
	}
	return v
}

// search is the internal alpha-beta recursion, always returning mul times
// the agent's utility of st under optimal continued play, breaking as
// soon as alpha >= beta.
func (p *PVS) search(st *board.State, model *board.UtilityModel, depth int, alpha, beta, mul int64) int64 {
	if over, _, _ := st.IsGameOver(); over || depth == 0 {
		return mul * st.Utility[p.Agent]
	}

	moves := p.movesAt(depth)
	st.Enumerate(p.Catalogue, moves)
	if moves.Len() == 0 {
		return mul * st.Utility[p.Agent]
	}

	child := p.stateAt(depth - 1)
	best := negInf
	a := alpha
	for i := 0; i < moves.Len(); i++ {
		st.CopyInto(child)
		child.ApplyMove(model, p.Catalogue.Moves[moves.At(i)])

		v := p.searchChild(st, child, model, depth-1, a, beta, mul, i == 0)

		if v > best {
			best = v
		}
		if v > a {
			a = v
		}
		if a >= beta {
			break
		}
	}
	return best
}
