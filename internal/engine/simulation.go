// Model ties the agent population to its schedule and runs one tick per Step.
package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/wealth-sim/internal/agents"
	"github.com/talgya/wealth-sim/internal/entropy"
)

var (
	// ErrEmptyPopulation is returned when a model is asked for fewer than one agent.
	ErrEmptyPopulation = errors.New("population must be positive")
	// ErrNilSource is returned when a model is built without a random source.
	ErrNilSource = errors.New("random source is nil")
	// ErrNegativeSteps is returned for a negative tick or step count.
	ErrNegativeSteps = errors.New("step count must not be negative")
)

// Model owns the agent population of one trial.
type Model struct {
	Agents    []*agents.Agent // Ordered by ID; owned exclusively by the model
	StepCount uint64          // Ticks processed so far

	rng      entropy.Source
	schedule *RandomActivation
}

// TickResult summarizes one Step.
type TickResult struct {
	Tick          uint64 `json:"tick"`
	Transfers     int    `json:"transfers"`      // Units handed over, self-transfers included
	SelfTransfers int    `json:"self_transfers"` // Agents that picked themselves
}

// NewModel creates a model of n agents, each holding one unit of wealth,
// drawing all randomness from rng.
func NewModel(n int, rng entropy.Source) (*Model, error) {
	if n <= 0 {
		return nil, fmt.Errorf("new model with %d agents: %w", n, ErrEmptyPopulation)
	}
	if rng == nil {
		return nil, ErrNilSource
	}

	population := agents.NewSpawner().SpawnPopulation(n)
	return &Model{
		Agents:   population,
		rng:      rng,
		schedule: NewRandomActivation(population),
	}, nil
}

// Step activates every agent exactly once in a freshly shuffled order.
func (m *Model) Step() TickResult {
	m.StepCount++
	res := TickResult{Tick: m.StepCount}

	m.schedule.Step(m.rng, func(a *agents.Agent) {
		tr := a.Step(m.Agents, m.rng)
		if !tr.Moved {
			return
		}
		res.Transfers++
		if tr.Self() {
			res.SelfTransfers++
		}
	})

	return res
}

// Order returns the activation order of the last Step.
func (m *Model) Order() []agents.AgentID {
	return m.schedule.Order()
}

// Wealth reads out the wealth vector in agent-ID order.
func (m *Model) Wealth() []uint64 {
	return agents.WealthOf(m.Agents)
}

// TotalWealth returns the wealth held by the whole population.
func (m *Model) TotalWealth() uint64 {
	return agents.TotalWealth(m.Agents)
}

// Stats computes aggregate statistics over the current wealth vector.
func (m *Model) Stats() Stats {
	return ComputeStats(m.Wealth())
}
