package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/talgya/wealth-sim/internal/engine"
	"github.com/talgya/wealth-sim/internal/report"
)

func newTrialsCmd() *cobra.Command {
	var (
		cfg         = engine.DefaultTrialConfig()
		output      string
		withSamples bool
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Run many independent trials and print the aggregate wealth distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			opts := []engine.Option{engine.WithLogger(slog.Default())}
			var reg *prometheus.Registry
			if withMetrics {
				reg = prometheus.NewRegistry()
				opts = append(opts, engine.WithMetrics(engine.NewMetrics(reg)))
			}

			sample, err := engine.RunTrials(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}

			if reg != nil {
				if err := logMetrics(reg, sample.RunID); err != nil {
					return err
				}
			}

			return report.Write(cmd.OutOrStdout(), format, report.NewDistribution(sample, withSamples))
		},
	}

	cmd.Flags().IntVarP(&cfg.Agents, "agents", "n", cfg.Agents, "Number of agents per trial")
	cmd.Flags().IntVarP(&cfg.Steps, "steps", "t", cfg.Steps, "Number of ticks per trial")
	cmd.Flags().IntVar(&cfg.Trials, "trials", cfg.Trials, "Number of independent trials")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Batch seed (0 picks one at random)")
	cmd.Flags().IntVar(&cfg.ReportEvery, "report-every", cfg.ReportEvery, "Log a debug stats report every N ticks (0 disables)")
	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&withSamples, "samples", false, "Include every raw wealth sample in the output")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Log a snapshot of the run's counters when done")
	return cmd
}

// logMetrics logs every counter and gauge gathered from reg.
func logMetrics(reg *prometheus.Registry, runID string) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			slog.Info("metric", "run_id", runID, "name", mf.GetName(), "value", value)
		}
	}
	return nil
}
