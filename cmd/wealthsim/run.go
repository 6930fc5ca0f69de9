package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/talgya/wealth-sim/internal/engine"
	"github.com/talgya/wealth-sim/internal/entropy"
	"github.com/talgya/wealth-sim/internal/report"
)

func newRunCmd() *cobra.Command {
	var (
		nAgents     int
		nSteps      int
		seed        int64
		reportEvery int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single trial and print every agent's final wealth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			if reportEvery < 0 {
				return fmt.Errorf("report every %d ticks: %w", reportEvery, engine.ErrNegativeSteps)
			}

			seed = entropy.Seed(seed)
			m, err := engine.NewModel(nAgents, entropy.New(seed))
			if err != nil {
				return err
			}
			slog.Info("model ready", "agents", nAgents, "steps", nSteps, "seed", seed)

			eng := engine.NewEngine()
			eng.ReportEvery = uint64(reportEvery)
			eng.OnTick = func(tick uint64) {
				res := m.Step()
				slog.Debug("tick",
					"tick", tick,
					"transfers", res.Transfers,
					"self_transfers", res.SelfTransfers,
					"order", m.Order(),
				)
			}
			eng.OnReport = func(tick uint64) {
				st := m.Stats()
				slog.Info("tick report",
					"tick", tick,
					"max_wealth", st.MaxWealth,
					"broke", st.Broke,
					"gini", fmt.Sprintf("%.3f", st.Gini),
				)
			}

			if err := eng.Run(cmd.Context(), nSteps); err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), format, report.Trial{
				Agents: nAgents,
				Steps:  nSteps,
				Seed:   seed,
				Wealth: m.Wealth(),
				Stats:  m.Stats(),
			})
		},
	}

	def := engine.DefaultTrialConfig()
	cmd.Flags().IntVarP(&nAgents, "agents", "n", def.Agents, "Number of agents")
	cmd.Flags().IntVarP(&nSteps, "steps", "t", def.Steps, "Number of ticks to run")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 picks one at random)")
	cmd.Flags().IntVar(&reportEvery, "report-every", 0, "Log a stats report every N ticks (0 disables)")
	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format (text, json, yaml)")
	return cmd
}
