package sim

import (
	"math/rand"
	"slices"

	"github.com/airmarket-io/airmarket/core"
)

// pendingAsk is a deferred re-listing collected during the ask phase and
// applied only after every agent has run.
type pendingAsk[R comparable] struct {
	region R
	t      uint64
	owner  core.AgentID
	value  float64
}

// Simulate runs a first-price sealed-bid permit auction until the stop
// criterion is met. Each tick runs, in order: status callback, admission,
// bid phase, trade clearing, ask phase, deferred listing application, stop
// evaluation with registry compaction, and window advance.
//
// The engine consumes exactly one PRNG draw per factory invocation and per
// agent bid phase, ask phase and stop evaluation, in that textual order.
// Draws happen whether or not the agent implements the optional phase, so
// runs with the same seed, factory and deterministic agents replay the same
// trade sequence.
//
// Agent panics are not trapped; they propagate to the caller with the
// order-book and registry in whatever state the interrupted tick reached.
func Simulate[R comparable](factory Factory[R], opts Options[R]) {
	seed := nondeterministicSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	stop := opts.Stop
	if stop == nil {
		stop = NoAgents{}
	}

	book := core.NewBook[R](opts.TimeWindow)
	reg := &Registry[R]{}

	observe := func(id core.AgentID) ObserveFunc[R] {
		return func(r R, t uint64) core.PublicStatus {
			return book.Touch(r, t).Project(id)
		}
	}

	for {
		t0 := book.T0()

		if opts.StatusCallback != nil {
			opts.StatusCallback(t0, reg, book.Peek)
		}

		// Admission
		for _, a := range factory(t0, rng.Int63()) {
			reg.Insert(a)
		}

		// Bid phase. The snapshot fixes the participant set and order
		// before the first agent runs.
		var bids []core.Permit[R]
		snapshot := slices.Clone(reg.Active())
		for _, id := range snapshot {
			agentSeed := rng.Int63()
			bidder, ok := reg.At(id).(Bidder[R])
			if !ok {
				continue
			}

			bid := func(r R, t uint64, v float64) bool {
				if t < t0 {
					return false
				}
				entry := book.Touch(r, t)
				status := &entry.Current
				if status.Kind != core.StatusOnSale {
					return false
				}
				if status.Owner == id {
					// A listing is not biddable by its own owner.
					return false
				}
				if core.BidExceeds(v, status.MinValue) && core.BidExceeds(v, status.HighestBid) {
					if status.HighestBidder == core.NoOwner {
						bids = append(bids, core.Permit[R]{Region: r, Time: t})
					}
					status.HighestBidder = id
					status.HighestBid = v
				}
				return true
			}

			bidder.BidPhase(t0, bid, observe(id), agentSeed)
		}

		// Trade clearing, in bid-insertion order.
		if len(bids) > 0 {
			firstActive := reg.Active()[0]
			for _, k := range bids {
				entry := book.Touch(k.Region, k.Time)
				status := entry.Current

				if opts.TradeCallback != nil {
					opts.TradeCallback(TradeInfo[R]{
						TransactionTime: t0,
						From:            status.Owner,
						To:              status.HighestBidder,
						Location:        k.Region,
						Time:            k.Time,
						Value:           status.HighestBid,
					})
				}

				if l, ok := reg.At(status.HighestBidder).(BuyListener[R]); ok {
					l.OnBought(k.Region, k.Time, status.HighestBid)
				}
				// Sellers compacted out in an earlier tick no longer exist
				// and cannot be notified.
				if status.Owner != core.NoOwner && status.Owner >= firstActive {
					if l, ok := reg.At(status.Owner).(SellListener[R]); ok {
						l.OnSold(k.Region, k.Time, status.HighestBid)
					}
				}

				entry.Current = core.InUse(status.HighestBidder)
				entry.History = append(entry.History, core.TradeValue{
					MinValue:   status.MinValue,
					HighestBid: status.HighestBid,
				})
			}
		}

		// Ask phase. Listings are queued and applied afterwards so no ask
		// is visible to later agents within the phase.
		var asks []pendingAsk[R]
		snapshot = slices.Clone(reg.Active())
		for _, id := range snapshot {
			agentSeed := rng.Int63()
			asker, ok := reg.At(id).(Asker[R])
			if !ok {
				continue
			}

			ask := func(r R, t uint64, v float64) bool {
				if t < t0 {
					return false
				}
				switch entry := book.Touch(r, t); entry.Current.Kind {
				case core.StatusOnSale, core.StatusInUse:
					if entry.Current.Owner != id {
						return false
					}
					asks = append(asks, pendingAsk[R]{region: r, t: t, owner: id, value: v})
					return true
				default:
					return false
				}
			}

			asker.AskPhase(t0, ask, observe(id), agentSeed)
		}
		for _, a := range asks {
			book.Touch(a.region, a.t).Current = core.OnSale(a.owner, a.value)
		}

		// Stop evaluation and compaction.
		keepActive := make([]core.AgentID, 0, reg.ActiveCount())
		snapshot = slices.Clone(reg.Active())
		for _, id := range snapshot {
			agentSeed := rng.Int63()
			a := reg.At(id)
			if a.Stop(t0, agentSeed) {
				if f, ok := a.(FinishListener); ok {
					f.OnFinished(id, t0)
				}
				continue
			}
			keepActive = append(keepActive, id)
		}
		reg.UpdateActive(keepActive)

		book.Advance()

		if stop.met(book.T0(), reg.ActiveCount()) {
			return
		}
	}
}
