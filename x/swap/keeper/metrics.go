package keeper

import (
	"math/big"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricValue converts an amount for metric reporting. Amounts are not
// bounded by int64, so larger values go through big.Float.
func metricValue(v sdkmath.Int) float64 {
	if v.IsInt64() {
		return float64(v.Int64())
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// Metrics holds the Prometheus metrics for the swap module
type Metrics struct {
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec

	PoolsTotal    prometheus.Gauge
	PoolCreations prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers swap metrics (singleton pattern)
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity deposited into pools",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity withdrawn from pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "pools_total",
					Help:      "Total number of registered pools",
				},
			),
			PoolCreations: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "simpleswap",
					Subsystem: "swap",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
		}
	})
	return metrics
}
