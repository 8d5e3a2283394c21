package sqlx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	targetLabel  = "target"
	resultLabel  = "result"
	successValue = "ok"
	failureValue = "fail"
)

var (
	flushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multisert_flush_total",
		Help: "counter of batch statements sent to the sink, by target and result",
	}, []string{targetLabel, resultLabel})

	flushedRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multisert_flushed_rows_total",
		Help: "counter of rows written by successful batch statements",
	}, []string{targetLabel})

	flushSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "multisert_flush_seconds",
		Help:    "latency of successful batch statements",
		Buckets: prometheus.DefBuckets,
	}, []string{targetLabel})
)
