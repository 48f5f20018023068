package eval

import (
	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// MeanMovesTable is the "meanMovesPerPosition" empirical table: a
// per-(square,color,type) average count of geometrically
// possible moves, used as the mobility term of the derived utility table.
//
// A from-scratch Monte-Carlo sampled table (averaged over many random
// games) was not available, so this module derives a table from the one
// thing that is known exactly and deterministically: the move catalogue
// itself. BuildMeanMovesTable uses
// each (square,color,type)'s catalogued move-list length directly as its
// mobility figure. This is a geometric upper bound on real average
// mobility (it ignores board occupancy) rather than a Monte-Carlo sample,
// but it is deterministic, reproducible from the catalogue alone, and
// varies across squares/types the same way the sampled figure would
// (edge and corner squares score lower than central ones, sliders score
// far higher than pawns).
type MeanMovesTable [board.NumSquares * board.NumColors * 6]float64

// BuildMeanMovesTable derives a MeanMovesTable from cat.
func BuildMeanMovesTable(cat *board.Catalogue) *MeanMovesTable {
	var t MeanMovesTable
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		for c := board.Color(0); c < board.NumColors; c++ {
			for pt := board.PieceType(0); pt < 6; pt++ {
				_, length := cat.Lookup(sq, c, pt)
				t[board.DirectiveIndex(sq, c, pt)] = float64(length)
			}
		}
	}
	return &t
}

// pawnRank computes ρ(square,color): rank+1 when square is
// in color's home segment, else 8−rank. "rank" here is the square's row
// within its segment (0..3); the formula is written against an 8-row
// board and is preserved literally rather than rescaled, since it is
// only ever multiplied by PawnRowValue as a monotone bonus.
func pawnRank(sq board.Square, c board.Color) float64 {
	rank := sq.Row()
	if sq.Segment() == int(c) {
		return float64(rank + 1)
	}
	return float64(8 - rank)
}

// BuildUtilityModel builds the derived utility table for
// one resolved parameter triple, combining type values, the pawn-rank
// bonus, and the mobility term. It returns an error instead of panicking
// on overflow: this is config data the caller may want to report rather
// than crash on.
func BuildUtilityModel(p Parameters, cat *board.Catalogue, mean *MeanMovesTable) (*board.UtilityModel, error) {
	model := &board.UtilityModel{SelfWeight: int(roundHalfAwayFromZero(p.SelfWeight))}

	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		for c := board.Color(0); c < board.NumColors; c++ {
			for pt := board.PieceType(0); pt < 6; pt++ {
				idx := board.DirectiveIndex(sq, c, pt)
				v := p.TypeValues[pt]
				if pt == board.Pawn {
					v += p.PawnRowValue * pawnRank(sq, c)
				}
				v += p.MoveCountValue * mean[idx]

				short, err := roundToShort(v)
				if err != nil {
					return nil, err
				}
				model.Table[idx] = short
			}
		}
	}
	return model, nil
}

func roundHalfAwayFromZero(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}

// Model ties a parameter schedule to the immutable catalogue and mean-
// moves table so a caller can rebuild the derived utility table for a
// state with one call — the interpolation update is meant to run at
// most once per ply decision. agent.Agent.Decide calls Build exactly
// once per turn and hands the resulting *board.UtilityModel to the
// controller, which passes it to every search of that turn.
type Model struct {
	Schedule  Combined
	Catalogue *board.Catalogue
	Mean      *MeanMovesTable
}

// NewModel constructs a Model from a catalogue, deriving its mean-moves
// table from the same catalogue.
func NewModel(schedule Combined, cat *board.Catalogue) *Model {
	return &Model{
		Schedule:  schedule,
		Catalogue: cat,
		Mean:      BuildMeanMovesTable(cat),
	}
}

// Build interpolates m.Schedule by st's material fraction and returns the
// resulting derived utility table.
func (m *Model) Build(st *board.State) (*board.UtilityModel, error) {
	r := MaterialFraction(st)
	p := m.Schedule.Interpolate(r)
	return BuildUtilityModel(p, m.Catalogue, m.Mean)
}
