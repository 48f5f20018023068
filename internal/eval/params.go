// Package eval builds the derived per-(square,color,type) utility table
// that internal/board.State.ApplyMove reads for its incremental update.
// It owns the start/end parameter vectors and the
// material-based interpolation between them; it never touches a State's
// utility vector directly — board.State.RecomputeUtility and ApplyMove do
// that, reading only the table this package builds.
package eval

import (
	"fmt"
	"math"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
)

// Parameters is one evaluation-parameter triple: a weight on the
// mover's own material, a per-type value vector, a per-rank pawn-advance
// bonus, and a per-square mobility weight. Held as float64 throughout so
// Combined.Interpolate can linearly blend every field without separate
// int/float code paths; BuildUtilityModel rounds to the table's int16 and
// to an integer selfWeight at the point of use.
type Parameters struct {
	SelfWeight     float64
	TypeValues     [6]float64
	PawnRowValue   float64
	MoveCountValue float64
}

// Combined holds the start-game and end-game parameter triples; the
// active triple is linearly interpolated between them by remaining
// material.
type Combined struct {
	Start Parameters
	End   Parameters
}

// lerp blends a and b by fraction r, r=0 returning a and r=1 returning b.
func lerp(a, b, r float64) float64 {
	return a + (b-a)*r
}

// Interpolate blends Start and End by r ∈ [0,1]. r is
// typically MaterialFraction's output: 0 at full starting material, 1 with
// none left.
func (c Combined) Interpolate(r float64) Parameters {
	var p Parameters
	p.SelfWeight = lerp(c.Start.SelfWeight, c.End.SelfWeight, r)
	for i := range p.TypeValues {
		p.TypeValues[i] = lerp(c.Start.TypeValues[i], c.End.TypeValues[i], r)
	}
	p.PawnRowValue = lerp(c.Start.PawnRowValue, c.End.PawnRowValue, r)
	p.MoveCountValue = lerp(c.Start.MoveCountValue, c.End.MoveCountValue, r)
	return p
}

// startingPieceCounts is the per-color complement this module assumes a
// game starts with: 8 pawns, 2 knights, 2 bishops, 2 rooks, 1 queen, 1
// king — the standard chess complement per segment, since moves stay
// within a segment until a piece crosses to the next one.
var startingPieceCounts = [6]int{8, 2, 2, 2, 1, 1}

// startingTotalValue is Σ alive-piece-values over all three colors at game
// start, the denominator of the material-fraction formula. Computed
// from board.PieceValues (the static base values, not the interpolated
// ones) so it has no dependency on any Parameters instance.
var startingTotalValue = func() float64 {
	perColor := 0
	for pt, count := range startingPieceCounts {
		perColor += count * board.PieceValues[pt]
	}
	return float64(board.NumColors * perColor)
}()

// MaterialFraction computes r = 1 − (Σ alive-piece-values / startingTotalValue)
// for st. Piece values are the static board.PieceValues table,
// matching startingTotalValue's denominator.
func MaterialFraction(st *board.State) float64 {
	var remaining int
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		p := st.PieceAt(sq)
		if p.Present() {
			remaining += p.Value()
		}
	}
	r := 1 - float64(remaining)/startingTotalValue
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// minTableValue and maxTableValue bound the derived-table short's
// representable range.
const (
	minTableValue = math.MinInt16
	maxTableValue = math.MaxInt16
)

// roundToShort rounds v to the nearest int16, returning an error if it
// falls outside the representable range — a programmer/config error,
// reported rather than silently clamped.
func roundToShort(v float64) (int16, error) {
	rounded := math.Round(v)
	if rounded < minTableValue || rounded > maxTableValue {
		return 0, fmt.Errorf("eval: derived utility %v overflows int16 range", rounded)
	}
	return int16(rounded), nil
}
