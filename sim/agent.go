package sim

import (
	"github.com/airmarket-io/airmarket/core"
)

// BidFunc submits a bid of v on permit (r, t) during the bid phase. It
// returns true when the call was legal (the permit is on sale and not owned
// by the caller), regardless of whether the bid outbid the current leader;
// false distinguishes an illegal key from a merely losing bid.
type BidFunc[R comparable] func(r R, t uint64, v float64) bool

// AskFunc lists permit (r, t), which the caller must own, for sale at
// exclusive floor v during the ask phase. Listings are applied only after
// every agent has run its ask phase, so an ask is never visible to later
// agents within the same phase.
type AskFunc[R comparable] func(r R, t uint64, v float64) bool

// ObserveFunc reports the public status of permit (r, t) as seen by the
// calling agent. Observation is side-effect free with respect to permit
// state and may be called for any time, including the current tick.
type ObserveFunc[R comparable] func(r R, t uint64) core.PublicStatus

// Factory produces the agents admitted at the start of each tick. Returning
// an empty slice admits no one; combined with the NoAgents stop criterion
// that eventually terminates the run.
type Factory[R comparable] func(t uint64, seed int64) []Agent[R]

// Agent is the minimal contract the engine requires. Everything else is an
// optional capability detected per call: Bidder, Asker, BuyListener,
// SellListener and FinishListener.
//
// Agent methods run synchronously on the driver's goroutine and must not
// block or retain references to engine-owned data past their return.
type Agent[R comparable] interface {
	// Stop reports whether the agent is finished. An agent whose Stop
	// returns true is deactivated at the end of the tick and eventually
	// destroyed by registry compaction.
	Stop(t uint64, seed int64) bool
}

// Bidder is implemented by agents that participate in the bid phase.
type Bidder[R comparable] interface {
	BidPhase(t uint64, bid BidFunc[R], observe ObserveFunc[R], seed int64)
}

// Asker is implemented by agents that re-list permits in the ask phase.
type Asker[R comparable] interface {
	AskPhase(t uint64, ask AskFunc[R], observe ObserveFunc[R], seed int64)
}

// BuyListener is notified once for every trade the agent wins.
type BuyListener[R comparable] interface {
	OnBought(r R, t uint64, v float64)
}

// SellListener is notified once for every trade that clears against one of
// the agent's listings, provided the agent has not already been compacted
// out of the registry.
type SellListener[R comparable] interface {
	OnSold(r R, t uint64, v float64)
}

// FinishListener is notified when the agent's Stop returns true, before
// compaction can destroy it. The callback receives the agent's own ID and
// the tick it finished on.
type FinishListener interface {
	OnFinished(id core.AgentID, t uint64)
}
