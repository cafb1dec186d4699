package sim

import (
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/airmarket-io/airmarket/core"
)

// inert is the minimal agent: it only knows how to stop.
type inert struct{ done bool }

func (a *inert) Stop(_ uint64, _ int64) bool { return a.done }

func TestRegistryInsert_MonotonicIDs(t *testing.T) {
	reg := &Registry[int]{}

	check.Equal(t, core.AgentID(0), reg.Insert(&inert{}))
	check.Equal(t, core.AgentID(1), reg.Insert(&inert{}))
	check.Equal(t, core.AgentID(2), reg.Insert(&inert{}))

	check.Equal(t, 3, reg.ActiveCount())
	check.Equal(t, []core.AgentID{0, 1, 2}, reg.Active())
}

func TestRegistryUpdateActive_CompactsFront(t *testing.T) {
	reg := &Registry[int]{}
	a0, a1, a2 := &inert{}, &inert{}, &inert{}
	reg.Insert(a0)
	reg.Insert(a1)
	reg.Insert(a2)

	reg.UpdateActive([]core.AgentID{1, 2})

	check.Equal(t, []core.AgentID{1, 2}, reg.Active())
	check.True(t, reg.At(1) == Agent[int](a1))
	check.True(t, reg.At(2) == Agent[int](a2))
}

func TestRegistryUpdateActive_EmptyKeepsStorage(t *testing.T) {
	reg := &Registry[int]{}
	reg.Insert(&inert{})
	a1 := &inert{}
	reg.Insert(a1)

	// An empty active list deactivates everyone but compacts nothing, so
	// the existing slots remain addressable.
	reg.UpdateActive(nil)

	check.Equal(t, 0, reg.ActiveCount())
	check.True(t, reg.At(1) == Agent[int](a1))
}

func TestRegistryInsert_IDsContinueAfterCompaction(t *testing.T) {
	reg := &Registry[int]{}
	reg.Insert(&inert{})
	reg.Insert(&inert{})
	reg.UpdateActive([]core.AgentID{1})

	// IDs are never reused, even after the front of the deque is gone.
	check.Equal(t, core.AgentID(2), reg.Insert(&inert{}))
	check.Equal(t, []core.AgentID{1, 2}, reg.Active())
}

func TestRegistryAt_PanicsBelowFirstID(t *testing.T) {
	reg := &Registry[int]{}
	reg.Insert(&inert{})
	reg.Insert(&inert{})
	reg.UpdateActive([]core.AgentID{1})

	check.True(t, panics(func() { reg.At(0) }))
	check.True(t, panics(func() { reg.At(2) }))
}

func TestRegistryUpdateActive_PanicsOnUnsorted(t *testing.T) {
	reg := &Registry[int]{}
	reg.Insert(&inert{})
	reg.Insert(&inert{})

	check.True(t, panics(func() { reg.UpdateActive([]core.AgentID{1, 0}) }))
}

func panics(fn func()) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	fn()
	return false
}
