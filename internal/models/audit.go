package models

import (
	"strconv"
	"time"
)

// Audit actions recorded by the data-access guard.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditEntry is one row of the append-only audit trail. Exactly one entry is
// written per successful mutation on any audited entity. ChangedFields holds
// the full post-state snapshot of the record, not a computed diff.
type AuditEntry struct {
	ID            int64          `json:"id"`
	TableName     string         `json:"table_name"`
	RecordID      string         `json:"record_id"`
	Action        string         `json:"action"`
	ChangedFields map[string]any `json:"changed_fields,omitempty"`
	UserID        *string        `json:"user_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// GetID renders the int64 primary key as the guard's string record id.
func (e *AuditEntry) GetID() string { return strconv.FormatInt(e.ID, 10) }

// AuditPatch exists to satisfy the generic store surface; the guard never
// updates audit entries and the store rejects patches with no fields.
type AuditPatch struct{}

// DefaultAuditQueryLimit is the page size applied when a query carries none.
const DefaultAuditQueryLimit = 50

// AuditQueryOpts holds filters for querying the audit trail.
type AuditQueryOpts struct {
	TableName string
	RecordID  string
	Action    string
	UserID    string
	Since     *time.Time
	Limit     int
	Offset    int
}
