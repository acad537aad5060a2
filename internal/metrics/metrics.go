// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package metrics provides optional, nil-safe Prometheus instrumentation
// for parse and event-generation invocations. A *Collector is constructed
// explicitly by a caller that wants counters registered; internal/eval and
// internal/eventgen accept a nil *Collector and treat every method as a
// no-op, so the core never forces a metrics dependency on a caller that
// doesn't want one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the counters/histograms a parse or generation run
// updates. The zero value is not usable directly; use New.
type Collector struct {
	parses         *prometheus.CounterVec
	parseErrors    *prometheus.CounterVec
	parseDuration  prometheus.Histogram
	generations    *prometheus.CounterVec
	generatedEvent *prometheus.CounterVec
}

// New builds a Collector without registering it against any registry; the
// caller registers the returned metrics itself (via Collector.MustRegister)
// when it wants them exported.
func New() *Collector {
	return &Collector{
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "primalrpc",
			Subsystem: "eval",
			Name:      "parses_total",
			Help:      "Number of ParseSource invocations, by outcome.",
		}, []string{"outcome"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "primalrpc",
			Subsystem: "eval",
			Name:      "parse_errors_total",
			Help:      "Number of ParseSource failures, by diag.ErrorKind.",
		}, []string{"kind"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "primalrpc",
			Subsystem: "eval",
			Name:      "parse_duration_seconds",
			Help:      "ParseSource wall-clock duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "primalrpc",
			Subsystem: "eventgen",
			Name:      "generations_total",
			Help:      "Number of event-generation runs started, by resource kind.",
		}, []string{"resource_kind"}),
		generatedEvent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "primalrpc",
			Subsystem: "eventgen",
			Name:      "events_emitted_total",
			Help:      "Number of events emitted during generation, by event.Tag.",
		}, []string{"tag"}),
	}
}

// MustRegister registers every metric the Collector owns against reg.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	if c == nil {
		return
	}
	reg.MustRegister(c.parses, c.parseErrors, c.parseDuration, c.generations, c.generatedEvent)
}

// ObserveParse records one ParseSource invocation's outcome and duration.
// A nil Collector makes this (and every method below) a no-op, so callers
// can thread a possibly-nil *Collector through without a guard at every
// call site.
func (c *Collector) ObserveParse(seconds float64, errKind string) {
	if c == nil {
		return
	}
	c.parseDuration.Observe(seconds)
	if errKind == "" {
		c.parses.WithLabelValues("ok").Inc()
		return
	}
	c.parses.WithLabelValues("error").Inc()
	c.parseErrors.WithLabelValues(errKind).Inc()
}

// ObserveGenerationStart records that a generation run began for the given
// resource kind label.
func (c *Collector) ObserveGenerationStart(resourceKind string) {
	if c == nil {
		return
	}
	c.generations.WithLabelValues(resourceKind).Inc()
}

// ObserveEvent records one emitted event's tag.
func (c *Collector) ObserveEvent(tag string) {
	if c == nil {
		return
	}
	c.generatedEvent.WithLabelValues(tag).Inc()
}
