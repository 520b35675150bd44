package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CacheOps — операции кэша: hit|miss|expired|version_miss|remote_error|fallback.
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache client operations by outcome",
		},
		[]string{"op"},
	)
	// CacheLocalSize — размер локального фолбэк-кэша.
	CacheLocalSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_local_fallback_size",
			Help: "Number of items in the local fallback cache",
		},
	)
)

var (
	// LoaderLoads — исходы загрузки каталога: cache|backend|placeholder|timeout.
	LoaderLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Catalog load outcomes",
		},
		[]string{"source"},
	)
	// LoaderDuration — длительность полного цикла загрузки.
	LoaderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Catalog load duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	// PaymentAttempts — попытки оплаты по терминальному исходу:
	// success|pending|failed|abandoned|mock.
	PaymentAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_attempts_total",
			Help: "Payment attempts by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация метрик; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CacheOps, CacheLocalSize,
			LoaderLoads, LoaderDuration,
			PaymentAttempts,
		)
	})
}
