package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// AuditRecorder persists one audit entry. Implemented by the audit store.
type AuditRecorder interface {
	RecordEntry(ctx context.Context, e models.AuditEntry) error
}

// AuditBroadcaster pushes an audit entry to a user's live connections.
// Implemented by the WebSocket hub.
type AuditBroadcaster interface {
	Publish(userID string, entry models.AuditEntry)
}

// AuditPublisher is the guard's Auditor: it persists every entry and, when the
// entry is attributed, fans it out over the owner's WebSocket stream. The
// broadcast is best-effort; only the persist can fail the mutation's audit.
type AuditPublisher struct {
	store AuditRecorder
	hub   AuditBroadcaster // nil: no live stream
	log   *logrus.Logger
}

// NewAuditPublisher creates an AuditPublisher.
func NewAuditPublisher(store AuditRecorder, hub AuditBroadcaster, log *logrus.Logger) *AuditPublisher {
	return &AuditPublisher{store: store, hub: hub, log: log}
}

// Record persists the entry and notifies the owner's live connections.
func (p *AuditPublisher) Record(ctx context.Context, entry models.AuditEntry) error {
	if err := p.store.RecordEntry(ctx, entry); err != nil {
		return fmt.Errorf("persisting audit entry: %w", err)
	}

	if p.hub != nil && entry.UserID != nil {
		p.hub.Publish(*entry.UserID, entry)
	}

	return nil
}
