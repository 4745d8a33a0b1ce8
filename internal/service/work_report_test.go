package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

func TestUpsertMonth_CreatesWhenAbsent(t *testing.T) {
	t.Parallel()

	store := &mockWorkReportStore{
		findFirstFn: func(_ context.Context, where guard.Filter) (*models.WorkReport, error) {
			if where["contract_id"] != "ct1" || where["year"] != 2026 || where["month"] != 8 {
				t.Errorf("unexpected lookup filter: %v", where)
			}
			return nil, models.ErrNotFound
		},
		createFn: func(_ context.Context, rec *models.WorkReport) (*models.WorkReport, error) {
			created := *rec
			created.ID = "r1"
			return &created, nil
		},
	}
	svc := NewWorkReportService(store, testLogger())

	report, err := svc.UpsertMonth(context.Background(), "u1", "ct1", 2026, 8, map[string]float64{"3": 7.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ID != "r1" {
		t.Errorf("expected created report, got %q", report.ID)
	}
	if report.Entries["3"] != 7.5 {
		t.Errorf("expected entries carried into the new report, got %v", report.Entries)
	}
}

func TestUpsertMonth_MergesIntoExisting(t *testing.T) {
	t.Parallel()

	store := &mockWorkReportStore{
		findFirstFn: func(_ context.Context, _ guard.Filter) (*models.WorkReport, error) {
			return &models.WorkReport{
				ID: "r1", UserID: "u1", ContractID: "ct1", Year: 2026, Month: 8,
				Entries: map[string]float64{"1": 8, "2": 4},
			}, nil
		},
		updateFn: func(_ context.Context, where guard.Filter, patch models.WorkReportPatch) (*models.WorkReport, error) {
			if where["id"] != "r1" {
				t.Errorf("update must target the existing report, got %v", where)
			}
			return &models.WorkReport{ID: "r1", Entries: patch.Entries}, nil
		},
	}
	svc := NewWorkReportService(store, testLogger())

	// Day 2 overwritten, day 1 cleared, day 5 added.
	report, err := svc.UpsertMonth(context.Background(), "u1", "ct1", 2026, 8, map[string]float64{
		"1": 0,
		"2": 6,
		"5": 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := report.Entries["1"]; ok {
		t.Error("zero hours must clear the day")
	}
	if report.Entries["2"] != 6 {
		t.Errorf("expected day 2 overwritten to 6, got %v", report.Entries["2"])
	}
	if report.Entries["5"] != 8 {
		t.Errorf("expected day 5 added, got %v", report.Entries["5"])
	}
}

func TestUpsertMonth_InvalidMonthRejected(t *testing.T) {
	t.Parallel()

	store := &mockWorkReportStore{}
	svc := NewWorkReportService(store, testLogger())

	_, err := svc.UpsertMonth(context.Background(), "u1", "ct1", 2026, 13, nil)
	if !errors.Is(err, models.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Error("invalid input must not reach the store")
	}
}

func TestUpdateWorkReport_InvalidStatusRejected(t *testing.T) {
	t.Parallel()

	svc := NewWorkReportService(&mockWorkReportStore{}, testLogger())

	bad := "SHIPPED"
	_, err := svc.UpdateWorkReport(context.Background(), "r1", models.WorkReportPatch{Status: &bad})
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListWorkReports_ScopesToOwner(t *testing.T) {
	t.Parallel()

	store := &mockWorkReportStore{
		findManyFn: func(_ context.Context, where guard.Filter) ([]*models.WorkReport, error) {
			if where[guard.OwnerKey] != "u1" {
				t.Errorf("list must carry the owner key, got %v", where)
			}
			if where["contract_id"] != "ct1" {
				t.Errorf("list must carry the contract filter, got %v", where)
			}
			return nil, nil
		},
	}
	svc := NewWorkReportService(store, testLogger())

	if _, err := svc.ListWorkReports(context.Background(), "u1", "ct1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
