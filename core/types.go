package core

import (
	"math"
	"slices"
)

// AgentID identifies an agent within a single simulation run.
// IDs are allocated strictly monotonically and never reused.
type AgentID uint64

// NoOwner marks a permit with no owning agent (primary market) or a
// listing that has received no bid yet.
const NoOwner AgentID = math.MaxUint64

// Permit names a unit of tradable airspace occupancy: the exclusive right
// to occupy Region at time step Time. The region type is opaque to the
// engine; any comparable type works as a permit component.
type Permit[R comparable] struct {
	Region R
	Time   uint64
}

// TradeValue records one cleared trade on a permit: the exclusive floor the
// listing carried and the winning bid that cleared it.
type TradeValue struct {
	MinValue   float64 `json:"min_value"`
	HighestBid float64 `json:"highest_bid"`
}

// StatusKind discriminates the variants of PrivateStatus.
type StatusKind uint8

const (
	// StatusOnSale means the permit is listed; bids strictly above both
	// MinValue and HighestBid may take the lead.
	StatusOnSale StatusKind = iota

	// StatusInUse means the permit is held by Owner and not tradable.
	StatusInUse

	// StatusOutOfLimits means the permit's time lies outside the active
	// window. Never stored in the book; returned as a shared sentinel.
	StatusOutOfLimits
)

// PrivateStatus is the engine-side state of a permit. Exactly one variant
// is active at a time, selected by Kind; fields not belonging to the active
// variant are zero.
type PrivateStatus struct {
	Kind          StatusKind
	Owner         AgentID
	MinValue      float64
	HighestBidder AgentID
	HighestBid    float64
}

// OnSale builds a listing owned by owner with the given exclusive floor.
// Use NoOwner for a primary-market listing.
func OnSale(owner AgentID, minValue float64) PrivateStatus {
	return PrivateStatus{
		Kind:          StatusOnSale,
		Owner:         owner,
		MinValue:      minValue,
		HighestBidder: NoOwner,
	}
}

// InUse builds the held state for a permit won by owner.
func InUse(owner AgentID) PrivateStatus {
	return PrivateStatus{Kind: StatusInUse, Owner: owner}
}

// NewListing is the default state a permit enters the book with: a
// primary-market listing with a zero floor and no bids.
func NewListing() PrivateStatus {
	return OnSale(NoOwner, 0.0)
}

// Entry pairs a permit's current private status with the ordered history of
// trades that have cleared on it.
type Entry struct {
	Current PrivateStatus
	History []TradeValue
}

// PublicKind discriminates the variants of PublicStatus.
type PublicKind uint8

const (
	// PublicUnavailable covers foreign holdings, the observer's own
	// listing, and anything outside the window.
	PublicUnavailable PublicKind = iota

	// PublicAvailable means the observer may bid; MinValue and Trades are
	// populated.
	PublicAvailable

	// PublicOwned means the observer currently holds the permit.
	PublicOwned
)

// PublicStatus is the projection of a permit entry visible to one agent.
// Trades is the observer's own copy of the trade history; mutating it does
// not affect the book.
type PublicStatus struct {
	Kind     PublicKind
	MinValue float64
	Trades   []TradeValue
}

// Project maps the entry to the view visible to observer id.
//
// The owner of a listing sees it as unavailable rather than owned or
// available: once listed, the permit is no longer usable by the owner, and
// the owner must not be offered its own floor to bid against.
func (e *Entry) Project(id AgentID) PublicStatus {
	switch e.Current.Kind {
	case StatusInUse:
		if e.Current.Owner == id {
			return PublicStatus{Kind: PublicOwned}
		}
		return PublicStatus{Kind: PublicUnavailable}
	case StatusOnSale:
		if e.Current.Owner == id {
			return PublicStatus{Kind: PublicUnavailable}
		}
		return PublicStatus{
			Kind:     PublicAvailable,
			MinValue: e.Current.MinValue,
			Trades:   slices.Clone(e.History),
		}
	default:
		return PublicStatus{Kind: PublicUnavailable}
	}
}
