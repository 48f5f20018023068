package search

import (
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Minimax implements the true 2-opponent-minimize variant:
// the agent maximizes its own utility; at every other color's turn, that
// color is treated as minimizing the agent's utility.
type Minimax struct {
	*Kernel
	Agent board.Color
}

// NewMinimax builds a Minimax strategy sharing k's scratch fleet.
func NewMinimax(k *Kernel, agent board.Color) *Minimax {
	return &Minimax{Kernel: k, Agent: agent}
}

// Decide searches root to depth plies and returns the agent's chosen move.
func (m *Minimax) Decide(root *board.State, model *board.UtilityModel, depth int) Result {
	if depth <= 0 {
		return Result{board.NoMoveIndex, root.Utility[m.Agent]}
	}

	moves := m.movesAt(depth)
	root.Enumerate(m.Catalogue, moves)
	if moves.Len() == 0 {
		idx := m.randomCatalogued(root)
		return Result{idx, root.Utility[m.Agent]}
	}

	child := m.stateAt(depth - 1)
	bestIdx := board.NoMoveIndex
	bestVal := int64(math.MinInt64)
	for i := 0; i < moves.Len(); i++ {
		idx := moves.At(i)
		root.CopyInto(child)
		child.ApplyMove(model, m.Catalogue.Moves[idx])
		v := m.search(child, model, depth-1)
		if bestIdx == board.NoMoveIndex || v > bestVal {
			bestVal, bestIdx = v, idx
		}
	}
	return Result{bestIdx, bestVal}
}

// search returns the agent-perspective utility of st under optimal play to
// the given remaining depth: maximized at the agent's own turns, minimized
// at every other color's turn.
func (m *Minimax) search(st *board.State, model *board.UtilityModel, depth int) int64 {
	if over, _, _ := st.IsGameOver(); over || depth == 0 {
		return st.Utility[m.Agent]
	}

	moves := m.movesAt(depth)
	st.Enumerate(m.Catalogue, moves)
	if moves.Len() == 0 {
		return st.Utility[m.Agent]
	}

	maximize := st.Turn == m.Agent
	child := m.stateAt(depth - 1)
	var best int64
	have := false
	for i := 0; i < moves.Len(); i++ {
		st.CopyInto(child)
		child.ApplyMove(model, m.Catalogue.Moves[moves.At(i)])
		v := m.search(child, model, depth-1)
		switch {
		case !have:
			best, have = v, true
		case maximize && v > best:
			best = v
		case !maximize && v < best:
			best = v
		}
	}
	return best
}
