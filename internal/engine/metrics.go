package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a simulation run updates.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Ticks         prometheus.Counter
	Transfers     prometheus.Counter
	SelfTransfers prometheus.Counter
	Trials        prometheus.Counter
	Gini          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "wealthsim_ticks_total",
			Help: "Total number of model ticks processed",
		}),
		Transfers: f.NewCounter(prometheus.CounterOpts{
			Name: "wealthsim_transfers_total",
			Help: "Total units of wealth handed over, self-transfers included",
		}),
		SelfTransfers: f.NewCounter(prometheus.CounterOpts{
			Name: "wealthsim_self_transfers_total",
			Help: "Total transfers where an agent picked itself",
		}),
		Trials: f.NewCounter(prometheus.CounterOpts{
			Name: "wealthsim_trials_total",
			Help: "Total number of completed trials",
		}),
		Gini: f.NewGauge(prometheus.GaugeOpts{
			Name: "wealthsim_gini",
			Help: "Gini coefficient of the last completed trial",
		}),
	}
}

// ObserveTick records one model tick.
func (m *Metrics) ObserveTick(res TickResult) {
	if m == nil {
		return
	}
	m.Ticks.Inc()
	m.Transfers.Add(float64(res.Transfers))
	m.SelfTransfers.Add(float64(res.SelfTransfers))
}

// ObserveTrial records a completed trial.
func (m *Metrics) ObserveTrial(st Stats) {
	if m == nil {
		return
	}
	m.Trials.Inc()
	m.Gini.Set(st.Gini)
}
