package board

import (
	"fmt"
	"time"
)

// UtilityModel bundles the derived per-(square,color,type) utility
// table with the selfWeight scalar needed to apply the incremental
// utility update in ApplyMove. Built and owned by
// package eval; State only ever reads it.
type UtilityModel struct {
	Table      [NumSquares * NumColors * 6]int16
	SelfWeight int
}

// Value looks up the derived table entry for (square,color,type).
func (m *UtilityModel) Value(sq Square, c Color, pt PieceType) int {
	return int(m.Table[DirectiveIndex(sq, c, pt)])
}

// Terminal utility constants.
const (
	WinnerUtility    = 1_000_000
	LoserUtility     = -1_000_000
	ThirdSideUtility = -500_000
)

// otherWeight is the coefficient applied to the other colors' material
// in the utility formula u(c) = selfWeight*own - otherWeight*others.
const otherWeight = 10

// State is the packed game state: one byte per square, turn color, a
// packed game-over word, and a length-3 utility vector. It is
// exclusively owned by one agent-thread at a time; search strategies
// pre-allocate a small fixed fleet of these and reuse them across plies
// (no per-move allocation).
type State struct {
	Pieces     [NumSquares]Piece
	Turn       Color
	GameOver   uint32 // 0 == in progress; see packGameOver/unpackGameOver
	Utility    [NumColors]int64
	Eliminated [NumColors]bool
}

// packGameOver / unpackGameOver pack winner+loser into one nonzero
// word so the zero value unambiguously means "in progress."
func packGameOver(winner, loser Color) uint32 {
	return 1 + uint32(winner) + uint32(loser)*NumColors
}

func unpackGameOver(word uint32) (winner, loser Color, over bool) {
	if word == 0 {
		return NoColor, NoColor, false
	}
	word--
	return Color(word % NumColors), Color(word / NumColors), true
}

// IsGameOver reports whether the state is terminal and, if so, who won
// and who lost their king to end it.
func (s *State) IsGameOver() (over bool, winner, loser Color) {
	winner, loser, over = unpackGameOver(s.GameOver)
	return over, winner, loser
}

// PieceAt returns the piece occupying sq (Empty if none).
func (s *State) PieceAt(sq Square) Piece {
	return s.Pieces[sq]
}

// CopyInto performs a zero-allocation copy of s into dst; State has no
// pointers or slices, so this is a single value assignment. Search
// strategies use this to populate a scratch buffer before recursing.
func (s *State) CopyInto(dst *State) {
	*dst = *s
}

// RefBoard is the reference-board contract this core consumes: the
// minimal surface an external three-player-chess board must expose so
// InitFromRefBoard can copy it into a packed State. The reference
// board itself is an out-of-scope external collaborator — this is
// only the interface, never implemented here.
type RefBoard interface {
	SquareCount() int
	TurnColor() Color
	PieceAt(segment, row, col int) (pt PieceType, c Color, present bool)
	GameOver() (over bool, winner, loser Color)
	TimeRemaining(c Color) time.Duration
	MoveCount() int
	TryMove(from, to Square) bool
}

// InitFromRefBoard copies turn, game-over and piece bytes from an
// external reference board and rebuilds the utility vector from scratch.
// It returns an error, never a panic, if the reference board reports a
// square manifold other than 96 or an out-of-range piece — that's a
// version mismatch to be reported, not a programmer bug to abort on.
func InitFromRefBoard(rb RefBoard, model *UtilityModel) (*State, error) {
	if n := rb.SquareCount(); n != NumSquares {
		return nil, fmt.Errorf("board: reference board reports %d squares, want %d (version mismatch)", n, NumSquares)
	}

	st := &State{Turn: rb.TurnColor()}

	if over, winner, loser := rb.GameOver(); over {
		st.GameOver = packGameOver(winner, loser)
		st.Eliminated[loser] = true
		st.setTerminalUtility(winner, loser)
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		pt, c, present := rb.PieceAt(sq.Segment(), sq.Row(), sq.Col())
		if !present {
			continue
		}
		if pt >= NoPieceType || c >= NoColor {
			return nil, fmt.Errorf("board: impossible piece at %v (type=%v color=%v)", sq, pt, c)
		}
		st.Pieces[sq] = NewPiece(pt, c)
	}

	st.RecomputeUtility(model)
	return st, nil
}

// RecomputeUtility rebuilds the utility vector from a full scan of the
// board; this must always equal the incrementally maintained vector
// after any sequence of ApplyMove calls. Terminal states keep their
// already-set win/loss/third-side utilities, since those aren't derived
// from material.
func (s *State) RecomputeUtility(model *UtilityModel) {
	if over, _, _ := s.IsGameOver(); over {
		return
	}

	var totals [NumColors]int64
	for sq := Square(0); sq < NumSquares; sq++ {
		p := s.Pieces[sq]
		if !p.Present() {
			continue
		}
		totals[p.ColorOf()] += int64(model.Value(sq, p.ColorOf(), p.Type()))
	}

	for c := Color(0); c < NumColors; c++ {
		var others int64
		for oc := Color(0); oc < NumColors; oc++ {
			if oc != c {
				others += totals[oc]
			}
		}
		s.Utility[c] = int64(model.SelfWeight)*totals[c] - otherWeight*others
	}
}

// relocatePiece moves whatever piece sits on `from` to `to`, applying
// the same-mover / other-colors incremental utility delta shared by a
// normal move and a castling rook's relocation.
func (s *State) relocatePiece(model *UtilityModel, from, to Square) {
	p := s.Pieces[from]
	color, pt := p.ColorOf(), p.Type()

	delta := int64(model.Value(to, color, pt)) - int64(model.Value(from, color, pt))
	s.Utility[color] += int64(model.SelfWeight) * delta
	for oc := Color(0); oc < NumColors; oc++ {
		if oc != color {
			s.Utility[oc] -= otherWeight * delta
		}
	}

	s.Pieces[to] = p
	s.Pieces[from] = Empty
}

// applyCaptureDelta applies the material-loss/gain delta for a captured
// non-king piece.
func (s *State) applyCaptureDelta(model *UtilityModel, sq Square, captured Piece) {
	color, pt := captured.ColorOf(), captured.Type()
	value := int64(model.Value(sq, color, pt))
	s.Utility[color] -= int64(model.SelfWeight) * value
	for oc := Color(0); oc < NumColors; oc++ {
		if oc != color {
			s.Utility[oc] += otherWeight * value
		}
	}
}

// setTerminalUtility applies the fixed terminal scores.
func (s *State) setTerminalUtility(winner, loser Color) {
	for c := Color(0); c < NumColors; c++ {
		switch c {
		case winner:
			s.Utility[c] = WinnerUtility
		case loser:
			s.Utility[c] = LoserUtility
		default:
			s.Utility[c] = ThirdSideUtility
		}
	}
}

// NextTurn advances play forward from `from`, skipping eliminated
// colors. Bounded to NumColors steps: with every
// color eliminated the game is necessarily already terminal and
// NextTurn is never called again.
func (s *State) NextTurn(from Color) Color {
	c := from.Next()
	for i := 0; i < NumColors && s.Eliminated[c]; i++ {
		c = c.Next()
	}
	return c
}

// ApplyMove mutates s in place to reflect playing mv, incrementally
// updating s.Utility rather than recomputing it. mv must
// have come from the Catalogue and already passed IsValidMove.
func (s *State) ApplyMove(model *UtilityModel, mv Move) {
	mover := mv.Color

	if mv.Kind == KindCastle {
		s.relocatePiece(model, mv.CastleRookFrom, mv.CastleRookTo)
	}

	captured := s.Pieces[mv.To]
	movingType := s.Pieces[mv.From].Type()

	s.relocatePiece(model, mv.From, mv.To)

	if captured.Present() {
		capColor, capType := captured.ColorOf(), captured.Type()
		if capType == King {
			s.GameOver = packGameOver(mover, capColor)
			s.Eliminated[capColor] = true
			s.setTerminalUtility(mover, capColor)
			return
		}
		s.applyCaptureDelta(model, mv.To, captured)
	}

	if mv.PromoteToQueen && movingType == Pawn {
		s.promote(model, mv.To, mover)
	}

	s.Turn = s.NextTurn(mover)
}

// promote changes the pawn sitting on sq to a queen, applying the same
// incremental-delta procedure as a piece move.
func (s *State) promote(model *UtilityModel, sq Square, color Color) {
	delta := int64(model.Value(sq, color, Queen)) - int64(model.Value(sq, color, Pawn))
	s.Utility[color] += int64(model.SelfWeight) * delta
	for oc := Color(0); oc < NumColors; oc++ {
		if oc != color {
			s.Utility[oc] -= otherWeight * delta
		}
	}
	s.Pieces[sq] = NewPiece(Queen, color)
}

// Enumerate produces the list of currently-legal moves for the side to
// move, writing catalogue indices into out. It applies the
// same-color-skip / slider skip-index jump before ever calling a move's
// IsValidMove predicate.
func (s *State) Enumerate(cat *Catalogue, out *MoveList) {
	out.Reset()
	turn := s.Turn

	for sq := Square(0); sq < NumSquares; sq++ {
		p := s.Pieces[sq]
		if !p.Present() || p.ColorOf() != turn {
			continue
		}

		offset, length := cat.Lookup(sq, turn, p.Type())
		for i := 0; i < length; {
			idx := offset + i
			mv := &cat.Moves[idx]

			dst := s.Pieces[mv.To]
			if dst.Present() && dst.ColorOf() == turn {
				if mv.Kind == KindSlider {
					i = mv.SkipIndex - offset
					continue
				}
				i++
				continue
			}

			if mv.IsValidMove(s) {
				out.Add(idx)
			}
			i++
		}
	}
}
