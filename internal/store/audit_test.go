package store

import (
	"testing"
	"time"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

func TestAuditOptsFromFilter_TranslatesKeys(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	opts, err := auditOptsFromFilter(guard.Filter{
		guard.OwnerKey: "u1",
		"table_name":   "clients",
		"record_id":    "c1",
		"action":       models.AuditDelete,
		"since":        since,
		"limit":        25,
		"offset":       50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.UserID != "u1" || opts.TableName != "clients" || opts.RecordID != "c1" || opts.Action != models.AuditDelete {
		t.Errorf("column predicates mistranslated: %+v", opts)
	}
	if opts.Since == nil || !opts.Since.Equal(since) {
		t.Errorf("expected since carried through, got %v", opts.Since)
	}
	if opts.Limit != 25 || opts.Offset != 50 {
		t.Errorf("expected pagination carried through, got limit=%d offset=%d", opts.Limit, opts.Offset)
	}
}

func TestAuditOptsFromFilter_RejectsBadKeys(t *testing.T) {
	t.Parallel()

	if _, err := auditOptsFromFilter(guard.Filter{"status": "draft"}); err == nil {
		t.Error("unknown filter key must be rejected")
	}

	if _, err := auditOptsFromFilter(guard.Filter{"since": "2026-02-01"}); err == nil {
		t.Error("a since value that is not a time.Time must be rejected")
	}
}

func TestBuildAuditFilter_AllFields(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args, next := buildAuditFilter(models.AuditQueryOpts{
		TableName: "clients",
		RecordID:  "c1",
		Action:    models.AuditUpdate,
		UserID:    "u1",
		Since:     &since,
	})

	want := "WHERE table_name = $1 AND record_id = $2 AND action = $3 AND user_id = $4 AND created_at >= $5"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
	if next != 6 {
		t.Errorf("expected next arg index 6, got %d", next)
	}
}

func TestBuildAuditFilter_Empty(t *testing.T) {
	t.Parallel()

	where, args, next := buildAuditFilter(models.AuditQueryOpts{})
	if where != "" || len(args) != 0 || next != 1 {
		t.Errorf("empty opts must compile to nothing, got %q %v %d", where, args, next)
	}
}
