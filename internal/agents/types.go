// Package agents provides the agent data model and its wealth-transfer rule.
package agents

// AgentID is a unique identifier for an agent within one model.
type AgentID uint64

// InitialWealth is the wealth every agent is created with.
const InitialWealth uint64 = 1

// Agent is the core entity of the simulation: a wealth counter with a step
// rule that may hand one unit to a peer.
type Agent struct {
	ID     AgentID `json:"id"`
	Wealth uint64  `json:"wealth"` // Never negative; only moved, never created
}

// IsBroke reports whether the agent has nothing left to give.
func (a *Agent) IsBroke() bool {
	return a.Wealth == 0
}

// WealthOf returns the wealth vector of agentList in slice order.
func WealthOf(agentList []*Agent) []uint64 {
	out := make([]uint64, len(agentList))
	for i, a := range agentList {
		out[i] = a.Wealth
	}
	return out
}

// TotalWealth sums the wealth of agentList.
func TotalWealth(agentList []*Agent) uint64 {
	var total uint64
	for _, a := range agentList {
		total += a.Wealth
	}
	return total
}
