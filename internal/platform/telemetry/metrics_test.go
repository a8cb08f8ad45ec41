package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SeedRecorder(t *testing.T) {
	m := NewMetrics("test")

	m.SeedSkipped()
	m.SeedInserted(100, 250*time.Millisecond)
	m.SeedInserted(5, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeedRuns.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SeedRuns.WithLabelValues("inserted")))
	assert.Equal(t, 105.0, testutil.ToFloat64(m.PatientsSeeded))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SeedDuration))
}

func TestMetrics_Middleware(t *testing.T) {
	m := NewMetrics("test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/patients/P1", "/api/v1/patients/P2", "/api/v1/patients/missing", "/nope"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/patients/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/patients/:id", "404")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(m.HTTPRequestDuration), 1)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("test")
	m.SeedInserted(3, time.Second)

	e := echo.New()
	e.GET("/metrics", m.Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "test_seed_patients_total 3")
	assert.Contains(t, body, "go_goroutines")
}
