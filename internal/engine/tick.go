// Package engine provides the tick-based simulation loop: the model and its
// random-activation schedule, the tick engine that drives it, and the trials
// driver that aggregates independent runs.
package engine

import (
	"context"
	"fmt"
)

// Engine drives a simulation forward a fixed number of ticks.
type Engine struct {
	Tick        uint64 // Current tick counter (monotonic, never resets)
	ReportEvery uint64 // OnReport cadence in ticks; 0 disables reports

	// Callbacks, populated during setup.
	OnTick   func(tick uint64) // Every tick
	OnReport func(tick uint64) // Every ReportEvery ticks
}

// NewEngine creates an engine at tick 0 with reports disabled.
func NewEngine() *Engine {
	return &Engine{}
}

// Run advances the simulation by ticks steps. It stops early and returns the
// context error if ctx is cancelled between ticks.
func (e *Engine) Run(ctx context.Context, ticks int) error {
	if ticks < 0 {
		return fmt.Errorf("run %d ticks: %w", ticks, ErrNegativeSteps)
	}

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.step()
	}
	return nil
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}
