// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once

	callbacksReceivedCounter   *prometheus.CounterVec
	callbacksDeletedCounter    *prometheus.CounterVec
	backupWritesCounter        *prometheus.CounterVec
	httpRequestsCounter        *prometheus.CounterVec
	ingestDurationMetric       prometheus.Histogram
	callbackPayloadBytesMetric prometheus.Histogram
)

// Init registers metrics on the default Prometheus registry exactly once.
func Init() {
	initOnce.Do(func() {
		callbacksReceivedCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbacks_received_total",
				Help: "Total number of inbound callbacks by ingestion outcome.",
			},
			[]string{"outcome"},
		)

		callbacksDeletedCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbacks_deleted_total",
				Help: "Total number of delete requests by outcome.",
			},
			[]string{"outcome"},
		)

		backupWritesCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callback_backup_writes_total",
				Help: "Total number of backup file appends by outcome.",
			},
			[]string{"outcome"},
		)

		httpRequestsCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		)

		ingestDurationMetric = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "callback_ingest_duration_seconds",
				Help:    "Duration of callback ingestion in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		)

		callbackPayloadBytesMetric = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "callback_payload_bytes",
				Help:    "Size of accepted callback payload blobs in bytes.",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
		)

		prometheus.MustRegister(
			callbacksReceivedCounter,
			callbacksDeletedCounter,
			backupWritesCounter,
			httpRequestsCounter,
			ingestDurationMetric,
			callbackPayloadBytesMetric,
		)

		// Ensure counter vectors are visible at /metrics before first increment.
		for _, outcome := range []string{"accepted", "rejected", "storage_error"} {
			callbacksReceivedCounter.WithLabelValues(outcome)
		}
		for _, outcome := range []string{"deleted", "not_found"} {
			callbacksDeletedCounter.WithLabelValues(outcome)
		}
		for _, outcome := range []string{"ok", "error"} {
			backupWritesCounter.WithLabelValues(outcome)
		}
	})
}

func IncCallbackReceived(outcome string) {
	Init()
	callbacksReceivedCounter.WithLabelValues(outcome).Inc()
}

func IncCallbackDeleted(outcome string) {
	Init()
	callbacksDeletedCounter.WithLabelValues(outcome).Inc()
}

func IncBackupWrite(outcome string) {
	Init()
	backupWritesCounter.WithLabelValues(outcome).Inc()
}

func IncHTTPRequest(method, route string, status int) {
	Init()
	httpRequestsCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func ObserveIngestDuration(d time.Duration) {
	Init()
	ingestDurationMetric.Observe(d.Seconds())
}

func ObservePayloadBytes(n int) {
	Init()
	callbackPayloadBytesMetric.Observe(float64(n))
}
