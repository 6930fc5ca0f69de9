package engine

import (
	"github.com/talgya/wealth-sim/internal/agents"
	"github.com/talgya/wealth-sim/internal/entropy"
)

// RandomActivation visits every agent once per tick in a freshly shuffled
// order. Transfers happen immediately, so an agent activated late in a tick
// may already hold wealth it received earlier in the same tick.
type RandomActivation struct {
	agents []*agents.Agent
	order  []int
}

// NewRandomActivation creates a schedule over agentList. The slice is shared,
// not copied.
func NewRandomActivation(agentList []*agents.Agent) *RandomActivation {
	order := make([]int, len(agentList))
	for i := range order {
		order[i] = i
	}
	return &RandomActivation{agents: agentList, order: order}
}

// Step shuffles the activation order with rng and calls fn for each agent.
func (s *RandomActivation) Step(rng entropy.Source, fn func(a *agents.Agent)) {
	// Reset to identity so the order depends only on the stream, not on the
	// previous tick's permutation.
	for i := range s.order {
		s.order[i] = i
	}
	rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	for _, idx := range s.order {
		fn(s.agents[idx])
	}
}

// Order returns the agent IDs in the order of the last Step, or in
// population order before the first one.
func (s *RandomActivation) Order() []agents.AgentID {
	ids := make([]agents.AgentID, len(s.order))
	for i, idx := range s.order {
		ids[i] = s.agents[idx].ID
	}
	return ids
}
