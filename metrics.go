package main

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rrt-planner/planner"
)

const (
	resultLabel = "result"

	resultFound  = "found"
	resultNoPath = "no_path"
	resultFailed = "failed"
)

var (
	rrtSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rrt_searches_total",
		Help: "The number of RRT searches by result.",
	}, []string{
		resultLabel,
	})

	rrtSearchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rrt_search_iterations",
		Help:    "The number of samples drawn by an RRT search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	rrtSearchTreeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rrt_search_tree_nodes",
		Help:    "The size of the tree when an RRT search ends.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	rrtSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "rrt_search_duration_seconds",
		Help: "The time spent in an RRT search.",
	}, []string{
		resultLabel,
	})
)

// searchWithMetrics runs a search and records its outcome.
func searchWithMetrics(ctx context.Context, p *planner.Planner) ([]planner.Point, error) {
	start := time.Now()

	path, err := p.Search(ctx)

	result := searchResult(err)
	stats := p.Stats()

	rrtSearches.With(prometheus.Labels{resultLabel: result}).Inc()
	rrtSearchIterations.Observe(float64(stats.Iterations))
	rrtSearchTreeNodes.Observe(float64(stats.TreeNodes))
	rrtSearchDuration.
		With(prometheus.Labels{resultLabel: result}).
		Observe(time.Since(start).Seconds())

	return path, err
}

func searchResult(err error) string {
	switch {
	case err == nil:
		return resultFound
	case errors.IsType(err, planner.ErrTypeNoPathFound):
		return resultNoPath
	default:
		return resultFailed
	}
}
