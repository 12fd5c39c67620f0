// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solpay_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "route"})

	syntaxValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_syntax_validations_total",
		Help: "Solana Pay URLs checked by the syntax engine",
	}, []string{"valid"})

	onChainValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_onchain_validations_total",
		Help: "Recipient lookups against a cluster",
	}, []string{"network", "valid", "account_exists", "executable"})

	linkOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_payment_link_operations_total",
		Help: "Payment link store operations by outcome",
	}, []string{"op", "result"})

	linkEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_payment_link_evictions_total",
		Help: "Links removed to stay within capacity",
	}, []string{"reason"})

	simulations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_simulations_total",
		Help: "Transfer simulations by outcome",
	}, []string{"network", "outcome"})

	historyRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solpay_history_records_total",
		Help: "Generated and validated URLs written to history",
	}, []string{"type"})
)

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, seconds float64) {
	httpReqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(seconds)
}

func RecordSyntaxValidation(valid bool) {
	syntaxValidations.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

func RecordOnChainValidation(network string, valid, accountExists, executable bool) {
	onChainValidations.WithLabelValues(
		network,
		strconv.FormatBool(valid),
		strconv.FormatBool(accountExists),
		strconv.FormatBool(executable),
	).Inc()
}

// RecordLinkOp counts a store operation; result is a short outcome such as
// "ok", "not_found" or "expired".
func RecordLinkOp(op, result string) {
	linkOps.WithLabelValues(op, result).Inc()
}

func RecordLinkEviction(reason string, n int) {
	if n <= 0 {
		return
	}
	linkEvictions.WithLabelValues(reason).Add(float64(n))
}

func RecordSimulation(network, outcome string) {
	simulations.WithLabelValues(network, outcome).Inc()
}

func RecordHistory(kind string) {
	historyRecords.WithLabelValues(kind).Inc()
}
