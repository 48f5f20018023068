// Package timectl implements the time-budgeted iterative-deepening
// controller: given the remaining game time, it derives a per-turn
// nanosecond budget and launches successive fixed-depth searches
// starting at InitialPly, stopping when
// the predicted cost of the next depth would exceed what remains of the
// turn's budget. It never blocks past a depth's completion — cancellation
// is cooperative, by simply not starting the next depth.
package timectl

import (
	"math"
	"time"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
	"github.com/Sothatsit/ThreePlayerChess/internal/search"
)

// Tuning constants.
const (
	ExpectedGameTurns = 20
	FutureTurnBudget  = 12
	InitialPly        = 2
	MaxPly            = 12
)

// depthEstimateSafetyMargin is a fixed safety margin added to the
// predicted next-depth cost, chosen in milliseconds: a margin measured
// in nanoseconds would be negligible against any real search depth's
// duration, making it pointless.
const depthEstimateSafetyMargin = 4 * time.Millisecond

// Strategy is the subset of every search.* strategy's surface the
// controller needs: run a fixed-depth search from root and report the
// chosen move.
type Strategy interface {
	Decide(root *board.State, model *board.UtilityModel, depth int) search.Result
}

// Controller drives one agent's iterative-deepening loop across turns. It
// tracks the longest remaining-time reading it has ever observed
// (gameLengthNanos) to estimate a steady per-turn allocation even before
// the game clock has ticked down much.
type Controller struct {
	Strategy  Strategy
	Catalogue *board.Catalogue
	Agent     board.Color

	gameLengthNanos int64

	scratch board.State
	moves   board.MoveList
}

// NewController builds a Controller for strategy, used by agent.
func NewController(strategy Strategy, cat *board.Catalogue, agent board.Color) *Controller {
	return &Controller{Strategy: strategy, Catalogue: cat, Agent: agent}
}

// Decide runs the iterative-deepening loop for one turn, given how much
// time remains in the whole game. It returns the deepest completed
// depth's move, after first checking every root move for an instant win
// shortcut.
func (c *Controller) Decide(root *board.State, model *board.UtilityModel, remainingGame time.Duration) search.Result {
	if remainingGame > time.Duration(c.gameLengthNanos) {
		c.gameLengthNanos = int64(remainingGame)
	}

	if idx, ok := c.instantWin(root, model); ok {
		return search.Result{MoveIndex: idx, Value: board.WinnerUtility}
	}

	budget := c.turnBudget(remainingGame)
	deadline := time.Now().Add(budget)

	var best search.Result
	var prevDur, lastDur int64

	for depth := InitialPly; depth <= MaxPly; depth++ {
		start := time.Now()
		best = c.Strategy.Decide(root, model, depth)
		lastDur, prevDur = time.Since(start).Nanoseconds(), lastDur

		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if predictNextDepthCost(prevDur, lastDur) > remaining.Nanoseconds() {
			break
		}
	}

	return best
}

// turnBudget computes this turn's nanosecond allocation:
// nanosPerTurn from the longest-observed game length, throttled down if
// the remaining game clock can't sustain it for FutureTurnBudget more
// turns.
func (c *Controller) turnBudget(remainingGame time.Duration) time.Duration {
	nanosPerTurn := c.gameLengthNanos / ExpectedGameTurns
	throttled := remainingGame.Nanoseconds() / FutureTurnBudget
	if throttled < nanosPerTurn {
		nanosPerTurn = throttled
	}
	if nanosPerTurn < 0 {
		nanosPerTurn = 0
	}
	return time.Duration(nanosPerTurn)
}

// predictNextDepthCost estimates the next depth's duration from the two
// most recently completed depths' durations: their ratio,
// raised to the 0.4 power, clamped to at least 1, applied to the latest
// duration, plus the safety margin. With fewer than two completed depths
// a multiplier of 1 is used — no growth-rate data yet.
func predictNextDepthCost(prevDur, lastDur int64) int64 {
	mult := 1.0
	if prevDur > 0 {
		ratio := float64(lastDur) / float64(prevDur)
		mult = math.Pow(ratio, 0.4)
		if mult < 1 {
			mult = 1
		}
	}
	return int64(float64(lastDur)*mult) + depthEstimateSafetyMargin.Nanoseconds()
}

// instantWin tries every root move for a one-move win, using
// the controller's own single scratch state — independent of whichever
// strategy's scratch fleet is plugged in, since this check runs before
// any depth of the real search loop.
func (c *Controller) instantWin(root *board.State, model *board.UtilityModel) (int, bool) {
	root.Enumerate(c.Catalogue, &c.moves)
	for i := 0; i < c.moves.Len(); i++ {
		idx := c.moves.At(i)
		root.CopyInto(&c.scratch)
		c.scratch.ApplyMove(model, c.Catalogue.Moves[idx])
		if over, winner, _ := c.scratch.IsGameOver(); over && winner == c.Agent {
			return idx, true
		}
	}
	return 0, false
}
