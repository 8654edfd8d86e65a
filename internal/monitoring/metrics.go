// Package monitoring exposes Prometheus metrics the bot updates during
// operation:
//   - dicebot_rounds_total{outcome}      – rounds resolved, by win/lose
//   - dicebot_session_profit             – running session profit (gauge)
//   - dicebot_wager_amount               – last submitted wager (gauge)
//   - dicebot_strategy_switches_total    – strategy cycle advances
//   - dicebot_submit_failures_total      – transient submission failures
//   - dicebot_sessions_total{reason}     – finished sessions, by end reason
//
// Served at /metrics when a listen address is configured.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mtxRounds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dicebot_rounds_total",
			Help: "Rounds resolved, by outcome",
		},
		[]string{"outcome"},
	)

	mtxProfit = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dicebot_session_profit",
			Help: "Running session profit in the wager currency",
		},
	)

	mtxWager = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dicebot_wager_amount",
			Help: "Most recent submitted wager amount",
		},
	)

	mtxSwitches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dicebot_strategy_switches_total",
			Help: "Strategy cycle advances",
		},
	)

	mtxFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dicebot_submit_failures_total",
			Help: "Transient wager submission failures",
		},
	)

	mtxSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dicebot_sessions_total",
			Help: "Finished sessions, by end reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(mtxRounds, mtxProfit, mtxWager, mtxSwitches, mtxFailures, mtxSessions)
}

// ObserveRound records one resolved round.
func ObserveRound(outcome string, wager, profit float64) {
	mtxRounds.WithLabelValues(outcome).Inc()
	mtxWager.Set(wager)
	mtxProfit.Set(profit)
}

// ObserveSwitch records a strategy cycle advance.
func ObserveSwitch() { mtxSwitches.Inc() }

// ObserveSubmitFailure records a retry-worthy submission failure.
func ObserveSubmitFailure() { mtxFailures.Inc() }

// ObserveSessionEnd records a finished session.
func ObserveSessionEnd(reason string) { mtxSessions.WithLabelValues(reason).Inc() }

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler { return promhttp.Handler() }
