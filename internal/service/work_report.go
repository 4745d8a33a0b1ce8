package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// WorkReportStore is the guarded data-access surface WorkReportService depends on.
type WorkReportStore interface {
	Create(ctx context.Context, rec *models.WorkReport) (*models.WorkReport, error)
	Update(ctx context.Context, where guard.Filter, patch models.WorkReportPatch) (*models.WorkReport, error)
	Delete(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	FindUnique(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	FindFirst(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	FindMany(ctx context.Context, where guard.Filter) ([]*models.WorkReport, error)
}

// WorkReportService wraps the guarded work report store with validation and
// the month-level upsert used by bulk attendance editing.
type WorkReportService struct {
	store WorkReportStore
	log   *logrus.Logger
}

// NewWorkReportService creates a WorkReportService.
func NewWorkReportService(store WorkReportStore, log *logrus.Logger) *WorkReportService {
	return &WorkReportService{store: store, log: log}
}

// ListWorkReports returns all work reports owned by the given user, optionally
// narrowed to one contract.
func (s *WorkReportService) ListWorkReports(ctx context.Context, userID, contractID string) ([]*models.WorkReport, error) {
	where := guard.Filter{guard.OwnerKey: userID}
	if contractID != "" {
		where["contract_id"] = contractID
	}

	return s.store.FindMany(ctx, where)
}

// GetWorkReport returns a single work report by ID.
func (s *WorkReportService) GetWorkReport(ctx context.Context, id string) (*models.WorkReport, error) {
	return s.store.FindUnique(ctx, guard.Filter{"id": id})
}

// CreateWorkReport validates and creates a work report.
func (s *WorkReportService) CreateWorkReport(ctx context.Context, w *models.WorkReport) (*models.WorkReport, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, w)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"report_id":   created.ID,
		"contract_id": created.ContractID,
		"year":        created.Year,
		"month":       created.Month,
	}).Info("work_report.create")

	return created, nil
}

// UpdateWorkReport validates and applies a patch to a work report.
func (s *WorkReportService) UpdateWorkReport(ctx context.Context, id string, patch models.WorkReportPatch) (*models.WorkReport, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, guard.Filter{"id": id}, patch)
}

// DeleteWorkReport removes a work report and logs the destructive operation.
func (s *WorkReportService) DeleteWorkReport(ctx context.Context, id string) (*models.WorkReport, error) {
	deleted, err := s.store.Delete(ctx, guard.Filter{"id": id})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"report_id": id}).Info("work_report.delete")

	return deleted, nil
}

// UpsertMonth merges attendance entries into the report for one
// contract/year/month, creating it when absent. Entry keys are day numbers;
// incoming values overwrite per key, and a zero value clears the day.
func (s *WorkReportService) UpsertMonth(
	ctx context.Context, userID, contractID string, year, month int, entries map[string]float64,
) (*models.WorkReport, error) {
	draft := &models.WorkReport{UserID: userID, ContractID: contractID, Year: year, Month: month}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.FindFirst(ctx, guard.Filter{
		"contract_id": contractID,
		"year":        year,
		"month":       month,
	})

	switch {
	case errors.Is(err, models.ErrNotFound):
		draft.Entries = mergeEntries(nil, entries)
		return s.CreateWorkReport(ctx, draft)
	case err != nil:
		return nil, err
	}

	merged := mergeEntries(existing.Entries, entries)

	updated, err := s.store.Update(ctx, guard.Filter{"id": existing.ID}, models.WorkReportPatch{Entries: merged})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"report_id":   existing.ID,
		"contract_id": contractID,
		"year":        year,
		"month":       month,
		"days":        len(entries),
	}).Info("work_report.upsert_month")

	return updated, nil
}

// mergeEntries applies incoming day entries over a base map. Zero hours
// removes the day rather than storing it.
func mergeEntries(base, incoming map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(base)+len(incoming))
	for k, v := range base {
		merged[k] = v
	}

	for k, v := range incoming {
		if v == 0 {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	return merged
}
