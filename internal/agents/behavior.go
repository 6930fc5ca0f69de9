// Agent behavior: every tick an agent with wealth hands one unit to a peer
// picked uniformly from the whole population, itself included.
package agents

import (
	"github.com/talgya/wealth-sim/internal/entropy"
)

// Transfer records what an agent did on its step.
type Transfer struct {
	From  AgentID
	To    AgentID
	Moved bool // False when the agent was broke and did nothing
}

// Self reports whether the agent picked itself, leaving wealth unchanged.
func (t Transfer) Self() bool {
	return t.Moved && t.From == t.To
}

// Step runs the agent's update rule against peers, the full population.
// A broke agent is a no-op. Self-selection is allowed and still counts as a
// transfer.
func (a *Agent) Step(peers []*Agent, rng entropy.Source) Transfer {
	if a.Wealth == 0 || len(peers) == 0 {
		return Transfer{From: a.ID}
	}

	other := peers[rng.Intn(len(peers))]
	other.Wealth++
	a.Wealth--

	return Transfer{From: a.ID, To: other.ID, Moved: true}
}
