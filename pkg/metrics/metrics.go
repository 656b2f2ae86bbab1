package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notatez", Name: "store_ops_total", Help: "Number of document store operations by collection and op."},
		[]string{"collection", "op"},
	)
	StoreFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notatez", Name: "store_failures_total", Help: "Number of failed document store operations by collection and op."},
		[]string{"collection", "op"},
	)
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "notatez", Name: "store_op_duration_seconds", Help: "Latency of document store load/save operations.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notatez", Name: "login_attempts_total", Help: "Number of authentication attempts by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notatez", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter name."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "notatez", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter name."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StoreOps)
	reg.MustRegister(StoreFailures)
	reg.MustRegister(StoreDuration)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
