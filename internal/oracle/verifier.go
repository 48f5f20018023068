// Package oracle implements an optional cross-checking verifier: given a
// packed board.State and a reference board.RefBoard built from the
// same position, it confirms the packed representation's incremental
// utility, move generation, and slider skip-index all agree with an
// independent recomputation. It is meant for tests, not the hot search
// path.
package oracle

import (
	"fmt"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Verifier bundles the pieces a cross-check needs and remembers which
// position hashes it has already checked in this run, purely to avoid
// redundant log noise across a long test sweep. The position hash is
// used only as a logging dedup key here, never consulted by search as
// a transposition table.
type Verifier struct {
	Catalogue *board.Catalogue
	Log       func(format string, args ...any)

	seen map[uint64]bool
}

// NewVerifier builds a Verifier. log may be nil, in which case checks run
// silently.
func NewVerifier(cat *board.Catalogue, log func(format string, args ...any)) *Verifier {
	return &Verifier{Catalogue: cat, Log: log, seen: map[uint64]bool{}}
}

func (v *Verifier) logf(format string, args ...any) {
	if v.Log != nil {
		v.Log(format, args...)
	}
}

// notedOnce reports whether h has already been logged as checked in this
// run, recording it for next time.
func (v *Verifier) notedOnce(h uint64) bool {
	if v.seen[h] {
		return true
	}
	v.seen[h] = true
	return false
}

// CheckIncrementalUtility verifies that st's incrementally
// maintained utility vector equals a full recompute. It mutates a
// scratch copy, never st itself.
func (v *Verifier) CheckIncrementalUtility(st *board.State, model *board.UtilityModel) error {
	var scratch board.State
	st.CopyInto(&scratch)
	got := scratch.Utility
	scratch.RecomputeUtility(model)
	if got != scratch.Utility {
		return fmt.Errorf("oracle: incremental utility %v does not match recompute %v", got, scratch.Utility)
	}
	if !v.notedOnce(st.Hash()) {
		v.logf("oracle: incremental utility held for position %016x", st.Hash())
	}
	return nil
}

// CheckMoveParity verifies that enumerateMoves(st) produces exactly the
// (from,to) pairs rb admits as legal for st.Turn. rb must have
// been built from the same position as st.
func (v *Verifier) CheckMoveParity(st *board.State, rb board.RefBoard) error {
	var moves board.MoveList
	st.Enumerate(v.Catalogue, &moves)

	catalogued := make(map[[2]board.Square]bool, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		mv := v.Catalogue.Moves[moves.At(i)]
		catalogued[[2]board.Square{mv.From, mv.To}] = true
	}

	refLegal := map[[2]board.Square]bool{}
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		pt, c, present := rb.PieceAt(sq.Segment(), sq.Row(), sq.Col())
		if !present || c != st.Turn {
			continue
		}
		_ = pt
		for to := board.Square(0); to < board.NumSquares; to++ {
			if rb.TryMove(sq, to) {
				refLegal[[2]board.Square{sq, to}] = true
			}
		}
	}

	for pair := range catalogued {
		if !refLegal[pair] {
			return fmt.Errorf("oracle: catalogue admits %v->%v which the reference board rejects", pair[0], pair[1])
		}
	}
	for pair := range refLegal {
		if !catalogued[pair] {
			return fmt.Errorf("oracle: reference board admits %v->%v which the catalogue never produced", pair[0], pair[1])
		}
	}

	if !v.notedOnce(st.Hash()) {
		v.logf("oracle: move parity held for position %016x (%d moves)", st.Hash(), len(catalogued))
	}
	return nil
}

// laterPassesThrough reports whether blocker lies on the path to mv's
// own destination, making mv unreachable once blocker is occupied —
// either blocker is one of mv's intermediate squares, or blocker is
// mv's destination itself.
func laterPassesThrough(mv board.Move, blocker board.Square) bool {
	if mv.To == blocker {
		return true
	}
	for _, sq := range mv.Intermediates {
		if sq == blocker {
			return true
		}
	}
	return false
}

// CheckSkipIndexMonotone verifies the skip-index invariant: for
// every slider move whose destination is blocked by a same-color piece,
// every later move in the same ray must be unreachable — its path runs
// through the blocking square — not merely that its own destination
// happens to be occupied too.
func (v *Verifier) CheckSkipIndexMonotone(st *board.State) error {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		p := st.PieceAt(sq)
		if !p.Present() {
			continue
		}
		offset, length := v.Catalogue.Lookup(sq, p.ColorOf(), p.Type())
		for i := offset; i < offset+length; i++ {
			mv := v.Catalogue.Moves[i]
			if mv.Kind != board.KindSlider {
				continue
			}
			dest := st.PieceAt(mv.To)
			if !dest.Present() || dest.ColorOf() != p.ColorOf() {
				continue
			}
			for j := i + 1; j < mv.SkipIndex; j++ {
				later := v.Catalogue.Moves[j]
				if later.Kind != board.KindSlider {
					continue
				}
				if !laterPassesThrough(later, mv.To) {
					return fmt.Errorf("oracle: move %d (%v->%v) is same-color-blocked but later move %d (%v->%v) in the same ray does not path through the blocking square", i, mv.From, mv.To, j, later.From, later.To)
				}
			}
		}
	}
	return nil
}
