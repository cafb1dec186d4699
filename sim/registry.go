package sim

import (
	"fmt"
	"slices"

	"github.com/airmarket-io/airmarket/core"
)

// Registry holds the agent population. Agents are appended with strictly
// monotonic IDs and destroyed from the front once no active ID references
// them, so the backing storage stays tight to the live range.
type Registry[R comparable] struct {
	firstID core.AgentID
	agents  []Agent[R]
	active  []core.AgentID
}

// Insert appends a and activates it under the next ID. Admissions within a
// tick land after all existing actives in ID order, keeping the active list
// sorted.
func (g *Registry[R]) Insert(a Agent[R]) core.AgentID {
	id := g.firstID + core.AgentID(len(g.agents))
	g.active = append(g.active, id)
	g.agents = append(g.agents, a)
	return id
}

// UpdateActive replaces the active-ID list with newActive, which must be
// sorted ascending, and compacts the front of the population: every agent
// whose ID falls below the new smallest active ID is destroyed. Panics on
// an unsorted list.
func (g *Registry[R]) UpdateActive(newActive []core.AgentID) {
	if !slices.IsSorted(newActive) {
		panic("sim: UpdateActive requires a sorted ID list")
	}
	g.active = newActive
	if len(newActive) == 0 {
		return
	}

	first := newActive[0]
	for g.firstID < first {
		g.agents[0] = nil
		g.agents = g.agents[1:]
		g.firstID++
	}
}

// At returns the agent with the given ID. Panics when id has been compacted
// away or was never allocated.
func (g *Registry[R]) At(id core.AgentID) Agent[R] {
	if id < g.firstID || id-g.firstID >= core.AgentID(len(g.agents)) {
		panic(fmt.Sprintf("sim: agent %d outside registry range [%d, %d)",
			id, g.firstID, g.firstID+core.AgentID(len(g.agents))))
	}
	return g.agents[id-g.firstID]
}

// Active returns the sorted list of active agent IDs. The slice is owned by
// the registry; callers must not mutate it.
func (g *Registry[R]) Active() []core.AgentID { return g.active }

// ActiveCount is the number of active agents.
func (g *Registry[R]) ActiveCount() int { return len(g.active) }
