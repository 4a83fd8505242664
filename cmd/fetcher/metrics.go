package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// fetchMetrics instruments the refresh endpoints so a scrape shows which
// collections are being pulled, how often they fail, and how long Wix takes.
type fetchMetrics struct {
	fetchTotal *prometheus.CounterVec
	fetchDur   prometheus.Summary
	cacheHits  *prometheus.CounterVec
}

func newFetchMetrics(reg prometheus.Registerer) *fetchMetrics {
	m := &fetchMetrics{}
	m.fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fetcher",
		Name:      "requests_total",
		Help:      "Number of Wix collection refreshes by status",
	}, []string{"collection", "status"})
	m.fetchDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "fetcher",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent downloading a collection from Wix",
	})
	m.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fetcher",
		Name:      "cache_hits_total",
		Help:      "Number of refreshes served from the Redis response cache",
	}, []string{"collection"})

	reg.MustRegister(m.fetchTotal, m.fetchDur, m.cacheHits)
	return m
}

func (m *fetchMetrics) observeFetch(collection, status string, elapsed time.Duration) {
	m.fetchTotal.WithLabelValues(collection, status).Inc()
	m.fetchDur.Observe(elapsed.Seconds())
}
