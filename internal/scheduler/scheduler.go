package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/miky2184/chargeability-manager-api/internal/db"
)

// reportingViews are the materialized views behind the read-only report
// endpoints. Fixed list; names never come from request input.
var reportingViews = []string{"check_forecast", "chg_all", "time_report"}

// Start schedules a periodic refresh of the reporting views at the given cron
// expression. Returns the running cron so the caller can stop it; returns nil
// when expr is empty (scheduler disabled).
func Start(exec *db.Executor, expr string) (*cron.Cron, error) {
	if expr == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() { refreshAll(exec) })
	if err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("scheduler: view refresh scheduled", "cron", expr)
	return c, nil
}

func refreshAll(exec *db.Executor) {
	for _, view := range reportingViews {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		_, err := exec.Execute(ctx, db.SchemaChargeability,
			"REFRESH MATERIALIZED VIEW "+pq.QuoteIdentifier(view), nil, db.ModeWrite)
		cancel()
		if err != nil {
			// Executor already logged the cause.
			slog.Error("scheduler: refresh failed", "view", view)
			continue
		}
		slog.Info("scheduler: view refreshed", "view", view)
	}
}
