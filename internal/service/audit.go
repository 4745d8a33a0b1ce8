package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// AuditTrail is the list surface the trail is read through. In production it
// is the registry's audit_log guard, so audit reads carry the same
// owner-filter policy and denial accounting as any other list.
type AuditTrail interface {
	FindMany(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error)
}

// AuditMaintenance is the audit store's retention surface. Purging bypasses
// the guard: it is driven by server config, not by caller-supplied filters.
type AuditMaintenance interface {
	PurgeOldEntries(ctx context.Context, retentionDays int) (int, error)
}

// AuditService exposes a user's own audit trail and the retention purge.
type AuditService struct {
	trail AuditTrail
	store AuditMaintenance
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(trail AuditTrail, store AuditMaintenance, log *logrus.Logger) *AuditService {
	return &AuditService{trail: trail, store: store, log: log}
}

// QueryOwnAudit returns audit entries attributed to the given user, newest
// first. The user scope is forced here regardless of what the options carry;
// the trail fetches one row past the limit so a further page is detectable.
func (s *AuditService) QueryOwnAudit(
	ctx context.Context, userID string, opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultAuditQueryLimit
	}

	where := guard.Filter{guard.OwnerKey: userID, "limit": limit}
	if opts.TableName != "" {
		where["table_name"] = opts.TableName
	}
	if opts.RecordID != "" {
		where["record_id"] = opts.RecordID
	}
	if opts.Action != "" {
		where["action"] = opts.Action
	}
	if opts.Since != nil {
		where["since"] = *opts.Since
	}
	if opts.Offset > 0 {
		where["offset"] = opts.Offset
	}

	rows, err := s.trail.FindMany(ctx, where)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	entries := make([]models.AuditEntry, len(rows))
	for i, r := range rows {
		entries[i] = *r
	}

	return entries, hasMore, nil
}

// PurgeOldEntries deletes audit entries older than retentionDays and logs the result.
func (s *AuditService) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	deleted, err := s.store.PurgeOldEntries(ctx, retentionDays)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"retention_days": retentionDays,
		"deleted":        deleted,
	}).Info("audit.purge")

	return deleted, nil
}
