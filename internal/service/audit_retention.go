package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/metrics"
)

// AuditRetention periodically purges expired audit entries in the background.
type AuditRetention struct {
	audit         *AuditService
	retentionDays int
	interval      time.Duration
	log           *logrus.Logger
}

// NewAuditRetention creates an AuditRetention loop.
func NewAuditRetention(audit *AuditService, retentionDays int, interval time.Duration, log *logrus.Logger) *AuditRetention {
	if interval <= 0 {
		interval = time.Hour
	}

	return &AuditRetention{audit: audit, retentionDays: retentionDays, interval: interval, log: log}
}

// Run purges on the configured interval until the context is cancelled. A
// retention of zero days disables purging entirely.
func (r *AuditRetention) Run(ctx context.Context) {
	if r.retentionDays <= 0 {
		r.log.Info("audit retention disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.purge(ctx)
		}
	}
}

func (r *AuditRetention) purge(ctx context.Context) {
	deleted, err := r.audit.PurgeOldEntries(ctx, r.retentionDays)
	if err != nil {
		r.log.WithError(err).Warn("audit retention purge failed")
		return
	}

	if deleted > 0 {
		metrics.AuditPurgedTotal.Add(float64(deleted))
	}
}
