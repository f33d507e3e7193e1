// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassDone(t *testing.T) {
	m := New()

	m.PassDone("full", OutcomeSuccess, 2*time.Second)
	m.PassDone("full", OutcomeSuccess, time.Second)
	m.PassDone("delta", OutcomeSkipped, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.passTotal.WithLabelValues("full", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.passTotal.WithLabelValues("delta", OutcomeSkipped)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.passDuration))
	assert.Greater(t, testutil.ToFloat64(m.lastSuccess.WithLabelValues("full")), 0.0)
}

func TestCourseAndFetchDone(t *testing.T) {
	m := New()

	m.CourseDone("delta", OutcomeFailure)
	m.FetchDone("students", "ok", 3)
	m.FetchDone("students", "not_modified", 1)
	m.FetchDone("teachers", "forbidden", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.courseTotal.WithLabelValues("delta", OutcomeFailure)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.fetchPages.WithLabelValues("students")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.fetchTotal))
}

func TestNotificationAndHTTP(t *testing.T) {
	m := New()

	m.NotificationDone("late", OutcomeSuccess)
	m.ObserveHTTPRequest(http.MethodPost, "/api/sync/{pass}", http.StatusAccepted, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifyTotal.WithLabelValues("late", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodPost, "/api/sync/{pass}", "202")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.FetchDone("courses", "ok", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `classroom_sync_fetches_total{collection="courses",outcome="ok"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.PassDone("full", OutcomeSuccess, time.Second)
		m.CourseDone("full", OutcomeSuccess)
		m.FetchDone("x", "ok", 1)
		m.NotificationDone("x", OutcomeFailure)
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
