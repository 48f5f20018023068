package search

import (
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// RestrictedQuiescence is Quiescence with a recency filter on which
// captures the quiescence tail is allowed to consider: a
// capturing move that was already available three plies ago is "known
// about" by the opposing side and is no longer a quiescence surprise, so
// it is excluded from the tail. Three capture-move windows are threaded
// down the main recursion (cMoves1Up/2Up/3Up); this implementation
// represents each window as the set of (from,to) keys of captures
// available at that ancestor ply.
type RestrictedQuiescence struct {
	*Kernel
	Agent  board.Color
	QDepth int
}

// NewRestrictedQuiescence builds a RestrictedQuiescence strategy with
// tail depth qDepth.
func NewRestrictedQuiescence(k *Kernel, agent board.Color, qDepth int) *RestrictedQuiescence {
	return &RestrictedQuiescence{Kernel: k, Agent: agent, QDepth: qDepth}
}

func moveKey(mv board.Move) int {
	return int(mv.From)<<8 | int(mv.To)
}

// captureKeys returns the set of (from,to) keys of every capturing move
// in moves, evaluated against st (the state the moves were enumerated
// from, i.e. before any of them is applied).
func captureKeys(st *board.State, cat *board.Catalogue, moves *board.MoveList) map[int]bool {
	keys := make(map[int]bool, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		mv := cat.Moves[moves.At(i)]
		if isCapture(st, mv) {
			keys[moveKey(mv)] = true
		}
	}
	return keys
}

// Decide mirrors Quiescence.Decide, seeding the nearest recency window
// from the root's own available captures before descending; the two
// older windows start empty.
func (r *RestrictedQuiescence) Decide(root *board.State, model *board.UtilityModel, depth int) Result {
	if depth <= 0 {
		return Result{board.NoMoveIndex, root.Utility[r.Agent]}
	}

	moves := r.movesAt(depth)
	root.Enumerate(r.Catalogue, moves)
	if moves.Len() == 0 {
		idx := r.randomCatalogued(root)
		return Result{idx, root.Utility[r.Agent]}
	}

	w1 := captureKeys(root, r.Catalogue, moves)

	child := r.stateAt(depth - 1)
	bestOwn := int64(math.MinInt64)
	var tiedIdx []int
	var tied []quiesceCandidate

	for i := 0; i < moves.Len(); i++ {
		idx := moves.At(i)
		mv := r.Catalogue.Moves[idx]
		capture := isCapture(root, mv)
		root.CopyInto(child)
		child.ApplyMove(model, mv)

		if over, winner, _ := child.IsGameOver(); over && winner == r.Agent {
			return Result{idx, board.WinnerUtility}
		}

		vec := r.rollout(child, model, depth-1, capture, w1, nil, nil)
		cand := quiesceCandidate{vec, capture}
		switch {
		case vec[r.Agent] > bestOwn:
			bestOwn = vec[r.Agent]
			tiedIdx = append(tiedIdx[:0], idx)
			tied = append(tied[:0], cand)
		case vec[r.Agent] == bestOwn:
			tiedIdx = append(tiedIdx, idx)
			tied = append(tied, cand)
		}
	}

	choice := r.pickTieBreak(tied)
	return Result{tiedIdx[choice], tied[choice].vec[r.Agent]}
}

func (r *RestrictedQuiescence) pickTieBreak(tied []quiesceCandidate) int {
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
	return pool[r.rng.Intn(len(pool))]
}

// rollout mirrors Quiescence.rollout, shifting the capture-recency windows
// one ply deeper on every recursive call.
func (r *RestrictedQuiescence) rollout(st *board.State, model *board.UtilityModel, depth int, lastWasCapture bool, w1, w2, w3 map[int]bool) [board.NumColors]int64 {
	if over, _, _ := st.IsGameOver(); over {
		return st.Utility
	}
	if depth == 0 {
		if !lastWasCapture || r.QDepth <= 0 {
			return st.Utility
		}
		return r.quiesce(st, model, r.QDepth, w1, w2, w3, st.Utility)
	}

	moves := r.movesAt(depth)
	st.Enumerate(r.Catalogue, moves)
	if moves.Len() == 0 {
		return st.Utility
	}

	nextW1 := captureKeys(st, r.Catalogue, moves)
	turn := st.Turn
	child := r.stateAt(depth - 1)
	bestOwn := int64(math.MinInt64)
	var tied []quiesceCandidate

	for i := 0; i < moves.Len(); i++ {
		mv := r.Catalogue.Moves[moves.At(i)]
		capture := isCapture(st, mv)
		st.CopyInto(child)
		child.ApplyMove(model, mv)
		vec := r.rollout(child, model, depth-1, capture, nextW1, w1, w2)
		cand := quiesceCandidate{vec, capture}
		switch {
		case vec[turn] > bestOwn:
			bestOwn = vec[turn]
			tied = append(tied[:0], cand)
		case vec[turn] == bestOwn:
			tied = append(tied, cand)
		}
	}
	return tied[r.pickTieBreak(tied)].vec
}

// quiesce is Quiescence.quiesce restricted to captures not already known
// about three plies up: w3 holds the keys of captures available three
// plies before this node, and any candidate capture appearing there is
// skipped as "not a quiescence surprise."
func (r *RestrictedQuiescence) quiesce(st *board.State, model *board.UtilityModel, qRemaining int, w1, w2, w3 map[int]bool, fallback [board.NumColors]int64) [board.NumColors]int64 {
	if qRemaining == 0 {
		return fallback
	}

	moves := r.qMovesAt(qRemaining)
	st.Enumerate(r.Catalogue, moves)

	turn := st.Turn
	child := r.qStateAt(qRemaining - 1)
	haveBest := false
	var best [board.NumColors]int64

	for i := 0; i < moves.Len(); i++ {
		mv := r.Catalogue.Moves[moves.At(i)]
		if !isCapture(st, mv) {
			continue
		}
		if w3 != nil && w3[moveKey(mv)] {
			continue
		}
		st.CopyInto(child)
		child.ApplyMove(model, mv)

		var vec [board.NumColors]int64
		if over, _, _ := child.IsGameOver(); over {
			vec = child.Utility
		} else {
			vec = r.quiesce(child, model, qRemaining-1, nil, w1, w2, child.Utility)
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
