package search

import (
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Maximax implements the three-player-native variant: every
// color is modeled as playing greedily for itself. rollout propagates a
// full per-color utility vector up the tree; at each node the selector
// picks, among its legal moves, whichever child vector maximizes the
// *mover's own* component, then the whole vector (including the root
// agent's component) passes up unchanged. This single mechanism picks
// the move that maximizes turnColor's own utility while still
// propagating the resulting state's rootColor-utility, without needing
// two separate recursions.
type Maximax struct {
	*Kernel
	Agent board.Color
}

// NewMaximax builds a Maximax strategy sharing k's scratch fleet.
func NewMaximax(k *Kernel, agent board.Color) *Maximax {
	return &Maximax{Kernel: k, Agent: agent}
}

// Decide searches root to depth plies. It detects an instant win at the
// root (a move whose resulting state is terminal with the agent as
// winner) and returns it immediately without evaluating remaining root
// moves.
func (mx *Maximax) Decide(root *board.State, model *board.UtilityModel, depth int) Result {
	if depth <= 0 {
		return Result{board.NoMoveIndex, root.Utility[mx.Agent]}
	}

	moves := mx.movesAt(depth)
	root.Enumerate(mx.Catalogue, moves)
	if moves.Len() == 0 {
		idx := mx.randomCatalogued(root)
		return Result{idx, root.Utility[mx.Agent]}
	}

	child := mx.stateAt(depth - 1)
	bestOwn := int64(math.MinInt64)
	var tiedIdx []int
	var tiedVal []int64

	for i := 0; i < moves.Len(); i++ {
		idx := moves.At(i)
		root.CopyInto(child)
		child.ApplyMove(model, mx.Catalogue.Moves[idx])

		if over, winner, _ := child.IsGameOver(); over && winner == mx.Agent {
			return Result{idx, board.WinnerUtility}
		}

		vec := mx.rollout(child, model, depth-1)
		switch {
		case vec[mx.Agent] > bestOwn:
			bestOwn = vec[mx.Agent]
			tiedIdx = append(tiedIdx[:0], idx)
			tiedVal = append(tiedVal[:0], vec[mx.Agent])
		case vec[mx.Agent] == bestOwn:
			tiedIdx = append(tiedIdx, idx)
			tiedVal = append(tiedVal, vec[mx.Agent])
		}
	}

	choice := 0
	if len(tiedIdx) > 1 {
		choice = mx.rng.Intn(len(tiedIdx))
	}
	return Result{tiedIdx[choice], tiedVal[choice]}
}

// rollout returns the full per-color utility vector reached by having
// every color play the maximax rule for the given remaining depth.
func (mx *Maximax) rollout(st *board.State, model *board.UtilityModel, depth int) [board.NumColors]int64 {
	if over, _, _ := st.IsGameOver(); over || depth == 0 {
		return st.Utility
	}

	moves := mx.movesAt(depth)
	st.Enumerate(mx.Catalogue, moves)
	if moves.Len() == 0 {
		return st.Utility
	}

	turn := st.Turn
	child := mx.stateAt(depth - 1)
	var tiedVec [][board.NumColors]int64
	bestOwn := int64(math.MinInt64)

	for i := 0; i < moves.Len(); i++ {
		st.CopyInto(child)
		child.ApplyMove(model, mx.Catalogue.Moves[moves.At(i)])
		vec := mx.rollout(child, model, depth-1)
		switch {
		case vec[turn] > bestOwn:
			bestOwn = vec[turn]
			tiedVec = append(tiedVec[:0], vec)
		case vec[turn] == bestOwn:
			tiedVec = append(tiedVec, vec)
		}
	}

	if len(tiedVec) == 1 {
		return tiedVec[0]
	}
	return tiedVec[mx.rng.Intn(len(tiedVec))]
}
