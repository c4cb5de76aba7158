package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// delivery outcomes
const (
	outcomeAbsent    = "absent"
	outcomeSkipped   = "skipped"
	outcomeAdvanced  = "advanced"
	outcomeCompleted = "completed"
	outcomeSuspended = "suspended"
	outcomeRetried   = "retried"
	outcomeFailed    = "failed"
	outcomeError     = "error"
)

var (
	metricDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipewright",
		Name:      "deliveries_total",
		Help:      "Task deliveries handled, by outcome",
	}, []string{"outcome"})

	metricNodeSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pipewright",
		Name:      "node_duration_seconds",
		Help:      "Time taken to execute one node of a task, by processor",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"processor"})

	metricCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipewright",
		Name:      "failure_callbacks_total",
		Help:      "Failure callbacks attempted, by result",
	}, []string{"result"})

	metricTasksSwept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pipewright",
		Name:      "tasks_swept_total",
		Help:      "Finished tasks deleted by the sweeper",
	})

	metricBoxes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pipewright",
		Name:      "boxes",
		Help:      "Worker boxes reported by the controller on the last refresh, by kind & status",
	}, []string{"kind", "status"})
)
