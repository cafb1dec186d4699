package sim

import (
	"github.com/airmarket-io/airmarket/core"
)

// TradeInfo describes one cleared trade. From is NoOwner for primary-market
// sales, where the permit had never been owned.
type TradeInfo[R comparable] struct {
	TransactionTime uint64
	From            core.AgentID
	To              core.AgentID
	Location        R
	Time            uint64
	Value           float64
}

// BookReader is the read-only order-book accessor handed to the status
// callback. The returned entry shares no storage with the engine.
type BookReader[R comparable] func(r R, t uint64) core.Entry

// TradeCallback receives every trade as it clears, in clearing order.
type TradeCallback[R comparable] func(TradeInfo[R])

// StatusCallback observes the simulation at the top of each tick, before
// admission. It must not retain reg or book past its return.
type StatusCallback[R comparable] func(t0 uint64, reg *Registry[R], book BookReader[R])

// StopCriterion decides when the main loop terminates. It is evaluated
// after the window has advanced at the end of each tick.
type StopCriterion interface {
	met(t0 uint64, activeCount int) bool
}

// NoAgents terminates the run once no agent remains active. This is the
// default criterion.
type NoAgents struct{}

func (NoAgents) met(_ uint64, activeCount int) bool { return activeCount == 0 }

// TimeThreshold terminates the run once the tick counter passes T.
type TimeThreshold struct {
	T uint64
}

func (c TimeThreshold) met(t0 uint64, _ int) bool { return t0 > c.T }

// Options configures a simulation run. The zero value is valid: unbounded
// look-ahead, NoAgents termination, no callbacks and a nondeterministic
// seed.
type Options[R comparable] struct {
	// TimeWindow bounds look-ahead: bids and asks beyond t0+1+window are
	// rejected. Nil means unbounded.
	TimeWindow *uint64

	// Stop is the global termination criterion. Nil defaults to NoAgents.
	Stop StopCriterion

	// TradeCallback, when set, receives every cleared trade.
	TradeCallback TradeCallback[R]

	// StatusCallback, when set, observes each tick before admission.
	StatusCallback StatusCallback[R]

	// Seed initializes the engine PRNG. Nil draws a nondeterministic seed;
	// set it to make runs reproducible.
	Seed *int64
}
