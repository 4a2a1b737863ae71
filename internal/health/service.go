package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. If nil, the database is
// reported as disconnected.
type DBPinger interface {
	Ping() error
}

// DepStatus reports one dependency's connectivity.
type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"ping_ms"`
}

// Report is the body of GET /health/json.
type Report struct {
	Status       string               `json:"status"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

// Collect pings the database and Redis and summarizes the result. Overall
// status is "ok" only when every dependency is connected.
func Collect(ctx context.Context, db DBPinger, rdb *redis.Client) Report {
	report := Report{Dependencies: make(map[string]DepStatus)}

	report.Dependencies["database"] = ping(func() error {
		if db == nil {
			return errNotConfigured
		}
		return db.Ping()
	})
	report.Dependencies["redis"] = ping(func() error {
		if rdb == nil {
			return errNotConfigured
		}
		return rdb.Ping(ctx).Err()
	})

	report.Status = "ok"
	for _, dep := range report.Dependencies {
		if dep.Status != "connected" {
			report.Status = "degraded"
			break
		}
	}
	return report
}

type notConfiguredError struct{}

func (notConfiguredError) Error() string { return "not configured" }

var errNotConfigured = notConfiguredError{}

func ping(fn func() error) DepStatus {
	start := time.Now()
	if err := fn(); err != nil {
		return DepStatus{Status: "disconnected"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}
