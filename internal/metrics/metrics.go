// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus instrumentation of the sync engine.
//
// All collectors live in a private registry exposed through Handler, so the
// process does not publish the default Go collectors twice when embedded.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "classroom_sync"

// Pass and course outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Metrics encapsulates the sync engine collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	passTotal      *prometheus.CounterVec
	passDuration   *prometheus.HistogramVec
	courseTotal    *prometheus.CounterVec
	fetchTotal     *prometheus.CounterVec
	fetchPages     *prometheus.CounterVec
	notifyTotal    *prometheus.CounterVec
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	lastSuccess    *prometheus.GaugeVec
}

// New registers the sync engine collectors in a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	passTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passes_total",
		Help:      "Sync passes by kind and outcome",
	}, []string{"pass", "outcome"})

	passDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pass_duration_seconds",
		Help:      "Wall-clock duration of sync passes",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	}, []string{"pass"})

	courseTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_total",
		Help:      "Courses reconciled by pass and outcome",
	}, []string{"pass", "outcome"})

	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetches_total",
		Help:      "Upstream collection reads by collection and outcome",
	}, []string{"collection", "outcome"})

	fetchPages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_pages_total",
		Help:      "Upstream pages read by collection",
	}, []string{"collection"})

	notifyTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification attempts by trigger and outcome",
	}, []string{"trigger", "outcome"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Admin API requests",
	}, []string{"method", "route", "status"})

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Admin API request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful pass",
	}, []string{"pass"})

	registry.MustRegister(passTotal, passDuration, courseTotal, fetchTotal, fetchPages,
		notifyTotal, requestTotal, requestLatency, lastSuccess)

	return &Metrics{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		passTotal:      passTotal,
		passDuration:   passDuration,
		courseTotal:    courseTotal,
		fetchTotal:     fetchTotal,
		fetchPages:     fetchPages,
		notifyTotal:    notifyTotal,
		requestTotal:   requestTotal,
		requestLatency: requestLatency,
		lastSuccess:    lastSuccess,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PassDone records a finished pass.
func (m *Metrics) PassDone(pass, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.passTotal.WithLabelValues(pass, outcome).Inc()
	if outcome == OutcomeSkipped {
		return
	}
	m.passDuration.WithLabelValues(pass).Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		m.lastSuccess.WithLabelValues(pass).SetToCurrentTime()
	}
}

// CourseDone records a course whose transaction committed or rolled back.
func (m *Metrics) CourseDone(pass, outcome string) {
	if m == nil {
		return
	}
	m.courseTotal.WithLabelValues(pass, outcome).Inc()
}

// FetchDone records a finished upstream collection read.
func (m *Metrics) FetchDone(collection, outcome string, pages int) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(collection, outcome).Inc()
	if pages > 0 {
		m.fetchPages.WithLabelValues(collection).Add(float64(pages))
	}
}

// NotificationDone records one delivery attempt.
func (m *Metrics) NotificationDone(trigger, outcome string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(trigger, outcome).Inc()
}

// ObserveHTTPRequest records an admin API request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
