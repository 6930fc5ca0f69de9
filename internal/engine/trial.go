// Trials driver: runs independent models and aggregates their final wealth.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/wealth-sim/internal/entropy"
)

// ErrNoTrials is returned when a batch is asked for fewer than one trial.
var ErrNoTrials = errors.New("trial count must be positive")

// RunTrial builds a model of nAgents, steps it nSteps times and returns the
// final wealth vector in agent-ID order.
func RunTrial(nAgents, nSteps int, rng entropy.Source) ([]uint64, error) {
	m, err := NewModel(nAgents, rng)
	if err != nil {
		return nil, err
	}

	eng := NewEngine()
	eng.OnTick = func(uint64) { m.Step() }
	if err := eng.Run(context.Background(), nSteps); err != nil {
		return nil, err
	}
	return m.Wealth(), nil
}

// TrialConfig controls a batch of trials.
type TrialConfig struct {
	Agents      int   `json:"agents" yaml:"agents"`
	Steps       int   `json:"steps" yaml:"steps"`
	Trials      int   `json:"trials" yaml:"trials"`
	Seed        int64 `json:"seed" yaml:"seed"` // 0 draws a seed from crypto/rand
	ReportEvery int   `json:"-" yaml:"-"`       // Debug report cadence in ticks; 0 disables
}

// DefaultTrialConfig returns 100 trials of 10 agents for 10 steps.
func DefaultTrialConfig() TrialConfig {
	return TrialConfig{
		Agents: 10,
		Steps:  10,
		Trials: 100,
	}
}

// Validate checks the configuration before any model is built.
func (c TrialConfig) Validate() error {
	if c.Agents <= 0 {
		return fmt.Errorf("agents=%d: %w", c.Agents, ErrEmptyPopulation)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps=%d: %w", c.Steps, ErrNegativeSteps)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials=%d: %w", c.Trials, ErrNoTrials)
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf("report every %d ticks: %w", c.ReportEvery, ErrNegativeSteps)
	}
	return nil
}

// Sample is the aggregated readout of a batch: every agent's final wealth
// from every trial, trial by trial.
type Sample struct {
	RunID  string   `json:"run_id" yaml:"run_id"`
	Agents int      `json:"agents" yaml:"agents"`
	Steps  int      `json:"steps" yaml:"steps"`
	Trials int      `json:"trials" yaml:"trials"`
	Seed   int64    `json:"seed" yaml:"seed"`
	Wealth []uint64 `json:"wealth" yaml:"wealth"`
}

// Trial returns the wealth vector of the i-th trial.
func (s *Sample) Trial(i int) []uint64 {
	return s.Wealth[i*s.Agents : (i+1)*s.Agents]
}

// Stats summarizes the whole sample.
func (s *Sample) Stats() Stats {
	return ComputeStats(s.Wealth)
}

// Histogram counts samples per wealth value.
func (s *Sample) Histogram() []Bin {
	return Histogram(s.Wealth)
}

// Option configures RunTrials.
type Option func(*trialRunner)

type trialRunner struct {
	logger  *slog.Logger
	metrics *Metrics
}

// WithLogger sets the logger for run reports. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *trialRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records ticks, transfers and trials into m.
func WithMetrics(m *Metrics) Option {
	return func(r *trialRunner) {
		r.metrics = m
	}
}

// RunTrials runs cfg.Trials independent trials sequentially. Each trial owns
// a model and a random stream derived from the batch seed, so a batch with a
// fixed seed is reproducible.
func RunTrials(ctx context.Context, cfg TrialConfig, opts ...Option) (*Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &trialRunner{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}

	sample := &Sample{
		RunID:  uuid.NewString(),
		Agents: cfg.Agents,
		Steps:  cfg.Steps,
		Trials: cfg.Trials,
		Seed:   entropy.Seed(cfg.Seed),
		Wealth: make([]uint64, 0, cfg.Agents*cfg.Trials),
	}
	log := r.logger.With("run_id", sample.RunID)
	log.Info("trials started",
		"agents", cfg.Agents,
		"steps", cfg.Steps,
		"trials", cfg.Trials,
		"seed", sample.Seed,
	)

	for i := 0; i < cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}

		wealth, err := r.runOne(ctx, log.With("trial", i), cfg, entropy.Derive(sample.Seed, i))
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		sample.Wealth = append(sample.Wealth, wealth...)
	}

	st := sample.Stats()
	log.Info("trials finished",
		"samples", humanize.Comma(int64(len(sample.Wealth))),
		"total_wealth", humanize.Comma(int64(st.TotalWealth)),
		"max_wealth", st.MaxWealth,
		"broke", st.Broke,
		"gini", fmt.Sprintf("%.3f", st.Gini),
	)
	return sample, nil
}

func (r *trialRunner) runOne(ctx context.Context, log *slog.Logger, cfg TrialConfig, rng entropy.Source) ([]uint64, error) {
	m, err := NewModel(cfg.Agents, rng)
	if err != nil {
		return nil, err
	}

	eng := NewEngine()
	eng.ReportEvery = uint64(cfg.ReportEvery)
	eng.OnTick = func(uint64) {
		r.metrics.ObserveTick(m.Step())
	}
	eng.OnReport = func(tick uint64) {
		st := m.Stats()
		log.Debug("tick report",
			"tick", tick,
			"max_wealth", st.MaxWealth,
			"broke", st.Broke,
			"gini", fmt.Sprintf("%.3f", st.Gini),
		)
	}

	if err := eng.Run(ctx, cfg.Steps); err != nil {
		return nil, err
	}

	st := m.Stats()
	r.metrics.ObserveTrial(st)
	log.Debug("trial finished", "gini", fmt.Sprintf("%.3f", st.Gini), "broke", st.Broke)
	return m.Wealth(), nil
}
