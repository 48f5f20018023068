package search

import (
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Quiescence extends Maximax with a selective-deepening tail applied only
// at leaves whose parent move was a capture. QDepth is the
// tail's own ply budget (default 1).
type Quiescence struct {
	*Kernel
	Agent  board.Color
	QDepth int
}

// NewQuiescence builds a Quiescence strategy with tail depth qDepth.
func NewQuiescence(k *Kernel, agent board.Color, qDepth int) *Quiescence {
	return &Quiescence{Kernel: k, Agent: agent, QDepth: qDepth}
}

type quiesceCandidate struct {
	vec     [board.NumColors]int64
	capture bool
}

// Decide mirrors Maximax.Decide (instant-win shortcut, fair-coin among
// ties) but additionally prefers a capturing move over a non-capturing
// one when their values tie.
func (q *Quiescence) Decide(root *board.State, model *board.UtilityModel, depth int) Result {
	if depth <= 0 {
		return Result{board.NoMoveIndex, root.Utility[q.Agent]}
	}

	moves := q.movesAt(depth)
	root.Enumerate(q.Catalogue, moves)
	if moves.Len() == 0 {
		idx := q.randomCatalogued(root)
		return Result{idx, root.Utility[q.Agent]}
	}

	child := q.stateAt(depth - 1)
	bestOwn := int64(math.MinInt64)
	var tiedIdx []int
	var tied []quiesceCandidate

	for i := 0; i < moves.Len(); i++ {
		idx := moves.At(i)
		mv := q.Catalogue.Moves[idx]
		capture := isCapture(root, mv)
		root.CopyInto(child)
		child.ApplyMove(model, mv)

		if over, winner, _ := child.IsGameOver(); over && winner == q.Agent {
			return Result{idx, board.WinnerUtility}
		}

		vec := q.rollout(child, model, depth-1, capture)
		cand := quiesceCandidate{vec, capture}
		switch {
		case vec[q.Agent] > bestOwn:
			bestOwn = vec[q.Agent]
			tiedIdx = append(tiedIdx[:0], idx)
			tied = append(tied[:0], cand)
		case vec[q.Agent] == bestOwn:
			tiedIdx = append(tiedIdx, idx)
			tied = append(tied, cand)
		}
	}

	choice := q.pickTieBreak(tied)
	return Result{tiedIdx[choice], tied[choice].vec[q.Agent]}
}

// pickTieBreak prefers captures among tied candidates, falling back to a
// fair coin within whichever subset (captures, or all) is non-empty.
func (q *Quiescence) pickTieBreak(tied []quiesceCandidate) int {
	if len(tied) == 1 {
		return 0
	}
	var captureIdx []int
	for i, c := range tied {
		if c.capture {
			captureIdx = append(captureIdx, i)
		}
	}
	pool := captureIdx
	if len(pool) == 0 {
		for i := range tied {
			pool = append(pool, i)
		}
	}
	if len(pool) == 1 {
		return pool[0]
	}
	return pool[q.rng.Intn(len(pool))]
}

// rollout is Maximax's rollout, extended with the quiescence tail at the
// main search's leaves.
func (q *Quiescence) rollout(st *board.State, model *board.UtilityModel, depth int, lastWasCapture bool) [board.NumColors]int64 {
	if over, _, _ := st.IsGameOver(); over {
		return st.Utility
	}
	if depth == 0 {
		if !lastWasCapture || q.QDepth <= 0 {
			return st.Utility
		}
		return q.quiesce(st, model, q.QDepth, st.Utility)
	}

	moves := q.movesAt(depth)
	st.Enumerate(q.Catalogue, moves)
	if moves.Len() == 0 {
		return st.Utility
	}

	turn := st.Turn
	child := q.stateAt(depth - 1)
	bestOwn := int64(math.MinInt64)
	var tied []quiesceCandidate

	for i := 0; i < moves.Len(); i++ {
		mv := q.Catalogue.Moves[moves.At(i)]
		capture := isCapture(st, mv)
		st.CopyInto(child)
		child.ApplyMove(model, mv)
		vec := q.rollout(child, model, depth-1, capture)
		cand := quiesceCandidate{vec, capture}
		switch {
		case vec[turn] > bestOwn:
			bestOwn = vec[turn]
			tied = append(tied[:0], cand)
		case vec[turn] == bestOwn:
			tied = append(tied, cand)
		}
	}
	return tied[q.pickTieBreak(tied)].vec
}

// quiesce walks only capturing moves, up to qRemaining further plies,
// extending past a leaf reached by a capture and only replacing the
// leaf value when a further capture is worth making. If no capture
// exists, it returns the pre-quiescence fallback unchanged.
func (q *Quiescence) quiesce(st *board.State, model *board.UtilityModel, qRemaining int, fallback [board.NumColors]int64) [board.NumColors]int64 {
	if qRemaining == 0 {
		return fallback
	}

	moves := q.qMovesAt(qRemaining)
	st.Enumerate(q.Catalogue, moves)

	turn := st.Turn
	child := q.qStateAt(qRemaining - 1)
	haveBest := false
	var best [board.NumColors]int64

	for i := 0; i < moves.Len(); i++ {
		mv := q.Catalogue.Moves[moves.At(i)]
		if !isCapture(st, mv) {
			continue
		}
		st.CopyInto(child)
		child.ApplyMove(model, mv)

		var vec [board.NumColors]int64
		if over, _, _ := child.IsGameOver(); over {
			vec = child.Utility
		} else {
			vec = q.quiesce(child, model, qRemaining-1, child.Utility)
		}
		if !haveBest || vec[turn] > best[turn] {
			best, haveBest = vec, true
		}
	}

	if !haveBest || best[turn] <= fallback[turn] {
		return fallback
	}
	return best
}
