// Package agent wires the board, eval, search, and timectl packages into
// the produced "agent contract": a function from a reference-
// board snapshot to a (from,to) move, with a companion Clone that
// duplicates parameters and scratch allocations.
package agent

import (
	"fmt"
	"time"

	"github.com/Sothatsit/ThreePlayerChess/internal/board"
	"github.com/Sothatsit/ThreePlayerChess/internal/eval"
	"github.com/Sothatsit/ThreePlayerChess/internal/search"
	"github.com/Sothatsit/ThreePlayerChess/internal/timectl"
)

// defaultQDepth is the quiescence tail depth used by strategies that
// have one, matching the reference source's default.
const defaultQDepth = 1

// StrategyFactory builds a timectl.Strategy over k for the given color.
// Kept as a factory, not a built strategy, so Clone can give the cloned
// agent its own scratch Kernel instead of sharing the original's.
type StrategyFactory func(k *search.Kernel, color board.Color) timectl.Strategy

// Minimax, Maximax, Quiescence, RestrictedQuiescence, and PVS are the
// StrategyFactory values for each strategy this core implements.
func Minimax(k *search.Kernel, color board.Color) timectl.Strategy {
	return search.NewMinimax(k, color)
}

func Maximax(k *search.Kernel, color board.Color) timectl.Strategy {
	return search.NewMaximax(k, color)
}

func Quiescence(k *search.Kernel, color board.Color) timectl.Strategy {
	return search.NewQuiescence(k, color, defaultQDepth)
}

func RestrictedQuiescence(k *search.Kernel, color board.Color) timectl.Strategy {
	return search.NewRestrictedQuiescence(k, color, defaultQDepth)
}

func PVS(k *search.Kernel, color board.Color) timectl.Strategy {
	return search.NewPVS(k, color)
}

// Agent owns one evaluation-parameter schedule, one search strategy, and
// the scratch allocations both need. It is not safe for concurrent use
// by multiple goroutines; Clone builds an independent copy for that.
type Agent struct {
	Color      board.Color
	Catalogue  *board.Catalogue
	Model      *eval.Model
	Factory    StrategyFactory
	Seed       int64
	Controller *timectl.Controller
}

// New builds an Agent for color, using factory to build its search
// strategy and schedule as its evaluation-parameter vectors.
func New(color board.Color, cat *board.Catalogue, schedule eval.Combined, factory StrategyFactory, seed int64) *Agent {
	k := search.NewKernel(cat, timectl.MaxPly, defaultQDepth, seed)
	strat := factory(k, color)
	return &Agent{
		Color:      color,
		Catalogue:  cat,
		Model:      eval.NewModel(schedule, cat),
		Factory:    factory,
		Seed:       seed,
		Controller: timectl.NewController(strat, cat, color),
	}
}

// Clone duplicates a's parameters and allocates a fresh scratch fleet,
// sharing only the immutable catalogue; the clone's model derives its
// own mean-moves table from that catalogue.
func (a *Agent) Clone() *Agent {
	return New(a.Color, a.Catalogue, a.Model.Schedule, a.Factory, a.Seed)
}

// Decide translates rb into a packed board.State, rebuilds the derived
// utility table for this turn's material balance, and runs the time-
// budgeted search to pick a move.
//
// Building the packed state needs a *board.UtilityModel up front (to
// fill in its initial utility vector), but the real model depends on the
// state's own material fraction — so this copies pieces in with a bare
// placeholder model first, then builds the real model from the now-
// populated state and overwrites the utility vector with it. Only the
// second build counts as this ply's interpolation update; the
// placeholder never touches the schedule.
func (a *Agent) Decide(rb board.RefBoard, remainingGame time.Duration) (from, to board.Square, err error) {
	st, err := board.InitFromRefBoard(rb, &board.UtilityModel{})
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}

	model, err := a.Model.Build(st)
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	st.RecomputeUtility(model)

	res := a.Controller.Decide(st, model, remainingGame)
	if res.MoveIndex == board.NoMoveIndex {
		return board.NoSquare, board.NoSquare, fmt.Errorf("agent: no move available for %v", a.Color)
	}

	mv := a.Catalogue.Moves[res.MoveIndex]
	return mv.From, mv.To, nil
}
