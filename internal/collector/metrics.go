package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pollution_collector_runs_total",
		Help: "The total number of collector ingestion runs by outcome",
	}, []string{"status"})

	readingsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pollution_collector_readings_total",
		Help: "The total number of readings persisted by dataset",
	}, []string{"dataset"})
)
