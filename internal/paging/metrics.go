package paging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awsls_pages_fetched_total",
		Help: "Total number of pages fetched by operation",
	}, []string{"operation"})

	itemsReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awsls_items_received_total",
		Help: "Total number of items received by operation",
	}, []string{"operation"})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awsls_fetch_errors_total",
		Help: "Page fetch failures by operation and outcome (surfaced, suppressed)",
	}, []string{"operation", "outcome"})

	pageDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "awsls_page_duration_seconds",
		Help:    "Duration of single page requests by operation",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})
)
