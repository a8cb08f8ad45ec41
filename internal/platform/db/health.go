package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/ehr/registry/pkg/envelope"
)

// PoolStats is the connection pool snapshot reported by the health endpoint.
type PoolStats struct {
	TotalConns      int32  `json:"totalConns"`
	IdleConns       int32  `json:"idleConns"`
	AcquiredConns   int32  `json:"acquiredConns"`
	MaxConns        int32  `json:"maxConns"`
	AcquireCount    int64  `json:"acquireCount"`
	AcquireDuration string `json:"acquireDuration"`
	Healthy         bool   `json:"healthy"`
}

func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return newPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns(), stat.MaxConns(),
		stat.AcquireCount(), stat.AcquireDuration())
}

func newPoolStats(total, idle, acquired, maxConns int32, acquireCount int64, acquireDur time.Duration) *PoolStats {
	return &PoolStats{
		TotalConns:      total,
		IdleConns:       idle,
		AcquiredConns:   acquired,
		MaxConns:        maxConns,
		AcquireCount:    acquireCount,
		AcquireDuration: acquireDur.String(),
		Healthy:         total > 0,
	}
}

// Pinger is the part of *pgxpool.Pool the health check exercises.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler pings the database and reports pool statistics. stats may
// be nil when they are not available.
func HealthHandler(p Pinger, stats func() *PoolStats) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		var ps *PoolStats
		if stats != nil {
			ps = stats()
		}

		if err := p.Ping(ctx); err != nil {
			if ps != nil {
				ps.Healthy = false
			}
			resp := envelope.Fail("database unavailable: " + err.Error())
			resp.Data = ps
			return envelope.JSON(c, http.StatusServiceUnavailable, resp)
		}
		return envelope.JSON(c, http.StatusOK, envelope.OK("healthy", ps))
	}
}
