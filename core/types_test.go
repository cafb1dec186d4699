package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestProject_OutOfLimits(t *testing.T) {
	entry := Entry{Current: PrivateStatus{Kind: StatusOutOfLimits}}

	check.Equal(t, PublicUnavailable, entry.Project(0).Kind)
}

func TestProject_InUse(t *testing.T) {
	entry := Entry{Current: InUse(3)}

	check.Equal(t, PublicOwned, entry.Project(3).Kind)
	check.Equal(t, PublicUnavailable, entry.Project(4).Kind)
}

func TestProject_OnSale_ForeignObserver(t *testing.T) {
	entry := Entry{
		Current: OnSale(3, 1.5),
		History: []TradeValue{{MinValue: 0.0, HighestBid: 1.0}},
	}

	status := entry.Project(4)

	check.Equal(t, PublicAvailable, status.Kind)
	check.Equal(t, 1.5, status.MinValue)
	check.Equal(t, 1, len(status.Trades))
	check.Equal(t, 1.0, status.Trades[0].HighestBid)
}

func TestProject_OnSale_OwnerSeesUnavailable(t *testing.T) {
	// The owner of a listing must neither be offered its own floor nor see
	// the permit as still usable.
	entry := Entry{Current: OnSale(3, 1.5)}

	check.Equal(t, PublicUnavailable, entry.Project(3).Kind)
}

func TestProject_PrimaryListing(t *testing.T) {
	entry := Entry{Current: NewListing()}

	// A never-sold permit is available to everyone.
	check.Equal(t, PublicAvailable, entry.Project(0).Kind)
	check.Equal(t, PublicAvailable, entry.Project(NoOwner-1).Kind)
}

func TestProject_HistoryIsACopy(t *testing.T) {
	entry := Entry{
		Current: NewListing(),
		History: []TradeValue{{MinValue: 0.0, HighestBid: 1.0}},
	}

	status := entry.Project(0)
	status.Trades[0].HighestBid = 42.0

	check.Equal(t, 1.0, entry.History[0].HighestBid)
}

func TestProject_IsIdempotent(t *testing.T) {
	entry := Entry{
		Current: OnSale(3, 1.5),
		History: []TradeValue{{MinValue: 0.5, HighestBid: 1.0}},
	}

	first := entry.Project(4)
	second := entry.Project(4)

	check.Equal(t, first, second)
}
