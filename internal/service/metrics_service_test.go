package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest("GET", "/api/v1/shops", 200, 20*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/shops", 200, 40*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordRentalCreated()
	m.RecordAvailabilityViolation("outside_hours")
	m.RecordNotification("JOIN_SESSION", true)
	m.RecordNotification("JOIN_SESSION", false)
	m.RecordExport("csv", "FINISHED")

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(2), snapshot.RequestsTotal)
	assert.InDelta(t, 30, snapshot.AverageRequestDurationMs, 0.001)
	assert.InDelta(t, 2.0/3.0, snapshot.CacheHitRatio, 0.001)
	assert.Equal(t, uint64(1), snapshot.RentalsCreated)
	assert.Equal(t, uint64(1), snapshot.AvailabilityRejections)
	assert.Equal(t, uint64(1), snapshot.NotificationsDelivered)
	assert.Positive(t, snapshot.Goroutines)
}

func TestMetricsServiceHandlerExposesDomainCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordRentalCreated()
	m.RecordAvailabilityViolation("closed_day")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rentals_created_total 1")
	assert.Contains(t, string(body), `availability_violations_total{kind="closed_day"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordRentalCreated()
	m.RecordCacheOperation(true, time.Millisecond)
	assert.Zero(t, m.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
