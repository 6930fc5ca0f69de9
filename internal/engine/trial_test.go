package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/wealth-sim/internal/entropy"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunTrial(t *testing.T) {
	wealth, err := RunTrial(10, 10, entropy.New(9))
	require.NoError(t, err)

	require.Len(t, wealth, 10)
	var total uint64
	for _, w := range wealth {
		total += w
	}
	assert.Equal(t, uint64(10), total)
}

func TestRunTrialDeterministic(t *testing.T) {
	a, err := RunTrial(10, 50, entropy.New(123))
	require.NoError(t, err)
	b, err := RunTrial(10, 50, entropy.New(123))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunTrialZeroSteps(t *testing.T) {
	wealth, err := RunTrial(4, 0, entropy.New(1))
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 1, 1, 1}, wealth)
}

func TestRunTrialErrors(t *testing.T) {
	_, err := RunTrial(0, 10, entropy.New(1))
	assert.ErrorIs(t, err, ErrEmptyPopulation)

	_, err = RunTrial(10, -1, entropy.New(1))
	assert.ErrorIs(t, err, ErrNegativeSteps)
}

func TestTrialConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultTrialConfig().Validate())

	cfg := DefaultTrialConfig()
	cfg.Agents = 0
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyPopulation)

	cfg = DefaultTrialConfig()
	cfg.Steps = -1
	assert.ErrorIs(t, cfg.Validate(), ErrNegativeSteps)

	cfg = DefaultTrialConfig()
	cfg.Trials = 0
	assert.ErrorIs(t, cfg.Validate(), ErrNoTrials)

	cfg = DefaultTrialConfig()
	cfg.ReportEvery = -5
	assert.ErrorIs(t, cfg.Validate(), ErrNegativeSteps)
}

func TestRunTrialsAggregate(t *testing.T) {
	cfg := DefaultTrialConfig()
	cfg.Seed = 42
	cfg.ReportEvery = 5

	sample, err := RunTrials(context.Background(), cfg, WithLogger(nopLogger()))
	require.NoError(t, err)

	require.Len(t, sample.Wealth, 1000)
	var total uint64
	for _, w := range sample.Wealth {
		assert.LessOrEqual(t, w, uint64(10))
		total += w
	}
	assert.Equal(t, uint64(1000), total)
	assert.Equal(t, int64(42), sample.Seed)
	assert.NotEmpty(t, sample.RunID)

	for i := 0; i < sample.Trials; i++ {
		var trialTotal uint64
		for _, w := range sample.Trial(i) {
			trialTotal += w
		}
		require.Equal(t, uint64(10), trialTotal, "trial %d", i)
	}

	var binned int
	for _, b := range sample.Histogram() {
		binned += b.Count
	}
	assert.Equal(t, 1000, binned)
	assert.Equal(t, uint64(1000), sample.Stats().TotalWealth)
}

func TestRunTrialsReproducible(t *testing.T) {
	cfg := TrialConfig{Agents: 8, Steps: 20, Trials: 5, Seed: 7}

	a, err := RunTrials(context.Background(), cfg, WithLogger(nopLogger()))
	require.NoError(t, err)
	b, err := RunTrials(context.Background(), cfg, WithLogger(nopLogger()))
	require.NoError(t, err)

	assert.Equal(t, a.Wealth, b.Wealth)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunTrialsUnseeded(t *testing.T) {
	cfg := TrialConfig{Agents: 3, Steps: 3, Trials: 2}

	sample, err := RunTrials(context.Background(), cfg, WithLogger(nopLogger()))
	require.NoError(t, err)
	assert.NotZero(t, sample.Seed)
	assert.Len(t, sample.Wealth, 6)
}

func TestRunTrialsInvalidConfig(t *testing.T) {
	_, err := RunTrials(context.Background(), TrialConfig{Agents: 10, Steps: 10}, WithLogger(nopLogger()))
	assert.ErrorIs(t, err, ErrNoTrials)
}

func TestRunTrialsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunTrials(ctx, DefaultTrialConfig(), WithLogger(nopLogger()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTrialsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	cfg := TrialConfig{Agents: 10, Steps: 10, Trials: 4, Seed: 11}

	_, err := RunTrials(context.Background(), cfg, WithLogger(nopLogger()), WithMetrics(metrics))
	require.NoError(t, err)

	assert.Equal(t, 40.0, testutil.ToFloat64(metrics.Ticks))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Trials))

	transfers := testutil.ToFloat64(metrics.Transfers)
	assert.Greater(t, transfers, 0.0)
	assert.LessOrEqual(t, transfers, 400.0)
	assert.LessOrEqual(t, testutil.ToFloat64(metrics.SelfTransfers), transfers)

	gini := testutil.ToFloat64(metrics.Gini)
	assert.GreaterOrEqual(t, gini, 0.0)
	assert.Less(t, gini, 1.0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTick(TickResult{Transfers: 3})
	m.ObserveTrial(Stats{Gini: 0.5})
}
