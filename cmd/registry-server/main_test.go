package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr/registry/internal/config"
	"github.com/ehr/registry/internal/domain/patient"
	"github.com/ehr/registry/internal/platform/middleware"
	"github.com/ehr/registry/internal/platform/telemetry"
)

// stubRepo holds a fixed set of patients and supports only lookups by ID.
type stubRepo struct {
	patient.Repository
	byID map[string]*patient.Patient
}

func (s *stubRepo) GetByPatientID(ctx context.Context, id string) (*patient.Patient, error) {
	if p, ok := s.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, patient.ErrNotFound
}

func (s *stubRepo) List(ctx context.Context, f patient.Filter) ([]*patient.Patient, error) {
	out := []*patient.Patient{}
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		Env:         "test",
		LogLevel:    "error",
		CORSOrigins: []string{"http://localhost:3000"},
		BodyLimit:   "1M",
	}
}

func testServer(t *testing.T, cfg *config.Config, metrics *telemetry.Metrics) *echo.Echo {
	t.Helper()
	repo := &stubRepo{byID: map[string]*patient.Patient{
		"P00000001": {
			ID:          1,
			PatientID:   "P00000001",
			FirstName:   "Anna",
			LastName:    "Smith",
			DateOfBirth: patient.NewDate(1980, time.July, 4),
			Gender:      patient.GenderFemale,
			Status:      patient.StatusActive,
		},
	}}
	health := func(c echo.Context) error { return c.JSON(http.StatusOK, map[string]string{"status": "ok"}) }
	return newServer(cfg, zerolog.Nop(), patient.NewService(repo), health, metrics)
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("count"))
	assert.NotNil(t, seed.Flags().Lookup("random-seed"))

	up, _, err := root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", up.Name())
	assert.NotNil(t, up.Flags().Lookup("dir"))

	status, _, err := root.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", status.Name())
}

func TestSeedOptions(t *testing.T) {
	cfg := &config.Config{SeedCount: 100, SeedRandom: 7}

	tests := []struct {
		name      string
		args      []string
		wantCount int
		wantSeed  int64
	}{
		{"config defaults", nil, 100, 7},
		{"explicit flags", []string{"--count", "25", "--random-seed", "42"}, 25, 42},
		{"explicit negative count", []string{"--count", "-5"}, -5, 7},
		{"explicit zero count", []string{"--count", "0"}, 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := seedCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			count, seed := seedOptions(cmd, cfg)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantSeed, seed)
		})
	}
}

func TestMigrationsFS_Embedded(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS(""), "001_patient.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "CREATE TABLE")
	assert.Contains(t, string(b), "patient_id")
}

func TestMigrationsFS_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("SELECT 1;"), 0o600))

	b, err := fs.ReadFile(migrationsFS(dir), "001_init.sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", string(b))
}

func TestPickDir(t *testing.T) {
	cfg := &config.Config{MigrationsDir: "/etc/registry/migrations"}
	assert.Equal(t, "/tmp/m", pickDir("/tmp/m", cfg))
	assert.Equal(t, "/etc/registry/migrations", pickDir("", cfg))
}

func TestNewRand_Seeded(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
	assert.NotNil(t, newRand(0))
}

func TestNewServer_Routes(t *testing.T) {
	e := testServer(t, testConfig(), nil)

	rec := get(e, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(e, "/api/v1/patients/P00000001")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    patient.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Anna", body.Data.FirstName)
	assert.Equal(t, "1980-07-04", body.Data.DateOfBirth.String())

	rec = get(e, "/api/v1/patients/P99999999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Patient not found with ID: P99999999")

	rec = get(e, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code, "metrics disabled")
}

func TestNewServer_Middleware(t *testing.T) {
	e := testServer(t, testConfig(), nil)

	rec := get(e, "/api/v1/patients")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"), "rate limiting disabled at 0 rps")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestNewServer_RateLimitAndMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	metrics := telemetry.NewMetrics("test")
	e := testServer(t, cfg, metrics)

	assert.Equal(t, http.StatusOK, get(e, "/api/v1/patients/P00000001").Code)

	rec := get(e, "/api/v1/patients/P00000001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	// /metrics itself is rate limited too, so use a fresh client address.
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="GET",route="/api/v1/patients/:id",status="429"} 1`)
}
