package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videomind_jobs_started_total",
		Help: "Number of jobs picked up by the pipeline.",
	})

	jobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videomind_jobs_completed_total",
		Help: "Number of jobs that reached the completed state.",
	})

	jobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videomind_jobs_failed_total",
		Help: "Number of jobs that reached the failed state.",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "videomind_queue_depth",
		Help: "Jobs waiting in the dispatch queue.",
	})
)
