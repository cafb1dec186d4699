// Package agents provides stock agent implementations for permit auction
// simulations.
package agents

import (
	"math/rand"

	"github.com/airmarket-io/airmarket/core"
	"github.com/airmarket-io/airmarket/sim"
)

// defaultLookahead bounds how far past the current tick a GoalSeeker will
// search for a time step at which all of its goals are open.
const defaultLookahead = 64

// GoalSeeker tries to acquire a permit for every region in its goal set,
// all at the same time step. Each bid phase it searches forward, in
// randomized steps, for a time at which all goals are available and bids on
// each; the steps can skip over an earlier open time. While the set is
// incomplete it re-lists everything it holds, since partial holdings at
// mismatched times are worthless to it. It stops once it holds a permit for
// every goal.
type GoalSeeker[R comparable] struct {
	goals     []R
	lookahead uint64
	owned     map[core.Permit[R]]struct{}
	cost      float64
}

// NewGoalSeeker builds a seeker for the given goal regions.
func NewGoalSeeker[R comparable](goals []R) *GoalSeeker[R] {
	return &GoalSeeker[R]{
		goals:     goals,
		lookahead: defaultLookahead,
		owned:     make(map[core.Permit[R]]struct{}),
	}
}

// SetLookahead overrides the forward search bound. Under a configured time
// window, steps past the window are out of limits and never open, so a
// lookahead beyond the window only adds steps the search cannot use.
func (g *GoalSeeker[R]) SetLookahead(n uint64) { g.lookahead = n }

// Stop reports completion: a permit held for every goal.
func (g *GoalSeeker[R]) Stop(_ uint64, _ int64) bool {
	return len(g.owned) == len(g.goals)
}

// BidPhase searches forward from t+1 for a time step at which every goal is
// available and bids on each. The step size and bid values derive from the
// seed the engine hands in, so a seeded run replays exactly.
func (g *GoalSeeker[R]) BidPhase(t uint64, bid sim.BidFunc[R], observe sim.ObserveFunc[R], seed int64) {
	rng := rand.New(rand.NewSource(seed))

	target := t + 1
	for {
		if target > t+g.lookahead {
			return // nothing open within reach this tick
		}
		open := true
		for _, goal := range g.goals {
			if observe(goal, target).Kind != core.PublicAvailable {
				open = false
				break
			}
		}
		if open {
			break
		}
		target += 1 + uint64(rng.Intn(5))
	}

	for _, goal := range g.goals {
		bid(goal, target, rng.Float64())
	}
}

// AskPhase re-lists every held permit at a zero floor while the goal set is
// incomplete.
func (g *GoalSeeker[R]) AskPhase(_ uint64, ask sim.AskFunc[R], _ sim.ObserveFunc[R], _ int64) {
	if len(g.owned) == len(g.goals) {
		return
	}
	for p := range g.owned {
		ask(p.Region, p.Time, 0)
	}
	clear(g.owned)
}

// OnBought records the acquisition and its cost.
func (g *GoalSeeker[R]) OnBought(r R, t uint64, v float64) {
	g.owned[core.Permit[R]{Region: r, Time: t}] = struct{}{}
	g.cost += v
}

// OnSold books the revenue. The permit itself was already dropped from the
// owned set when it was asked away.
func (g *GoalSeeker[R]) OnSold(_ R, _ uint64, v float64) {
	g.cost -= v
}

// Cost is the net amount spent so far: purchases minus resale revenue.
func (g *GoalSeeker[R]) Cost() float64 { return g.cost }

// Holdings is the number of permits currently held.
func (g *GoalSeeker[R]) Holdings() int { return len(g.owned) }
