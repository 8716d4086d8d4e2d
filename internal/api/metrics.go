package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики доменных операций API.
var (
	importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowdoc_api_imports_total",
		Help: "Total scenario table imports by result.",
	}, []string{"result"})

	diffsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowdoc_api_diffs_total",
		Help: "Total version graph comparisons.",
	})
)
