// Package metrics holds the Prometheus metrics for the negotiation engine.
//
//   - trade_offers_total{action}: offers created/accepted/declined/withdrawn
//   - trade_rank_runs_total: opportunity ranking computations
//   - trade_rank_cache_total{result}: ranking cache hits/misses
//   - trade_negotiations_total{status}: negotiation status transitions applied
//
// Registered in init() and served by promhttp at /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Offers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_offers_total",
			Help: "Offer transaction boundary operations by action",
		},
		[]string{"action"},
	)

	RankRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trade_rank_runs_total",
			Help: "Opportunity ranking computations",
		},
	)

	RankCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_rank_cache_total",
			Help: "Ranking cache lookups by result",
		},
		[]string{"result"},
	)

	Negotiations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_negotiations_total",
			Help: "Negotiation status transitions applied",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(Offers, RankRuns, RankCache, Negotiations)
}
