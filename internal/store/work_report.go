package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/models"
)

const workReportColumns = "id, user_id, contract_id, year, month, status, entries, created_at, updated_at"

// WorkReportStore handles work report CRUD operations.
type WorkReportStore struct {
	table[*models.WorkReport, models.WorkReportPatch]
}

// NewWorkReportStore creates a new WorkReportStore.
func NewWorkReportStore(base Base) *WorkReportStore {
	s := &WorkReportStore{}
	s.table = table[*models.WorkReport, models.WorkReportPatch]{
		Base:     base,
		name:     "work_reports",
		columns:  workReportColumns,
		scanRow:  scanWorkReport,
		insert:   insertWorkReport,
		patch:    patchWorkReport,
		sortable: "year DESC, month DESC, id",
		filters: map[string]bool{
			"id": true, "user_id": true, "contract_id": true,
			"year": true, "month": true, "status": true,
		},
		unique: []string{"id"},
		touch:  true,
	}

	return s
}

func scanWorkReport(row pgx.Row) (*models.WorkReport, error) {
	var (
		w           models.WorkReport
		entriesJSON []byte
	)

	if err := row.Scan(&w.ID, &w.UserID, &w.ContractID, &w.Year, &w.Month, &w.Status, &entriesJSON, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	if len(entriesJSON) > 0 {
		if err := json.Unmarshal(entriesJSON, &w.Entries); err != nil {
			return nil, fmt.Errorf("unmarshaling work report entries: %w", err)
		}
	}

	return &w, nil
}

func insertWorkReport(w *models.WorkReport) ([]string, []any) {
	id := w.ID
	if id == "" {
		id = uuid.New().String()
	}

	status := w.Status
	if status == "" {
		status = models.ReportDraft
	}

	entries := w.Entries
	if entries == nil {
		entries = map[string]float64{}
	}
	entriesJSON, _ := json.Marshal(entries) //nolint:errcheck // map of floats, cannot fail.

	return []string{"id", "user_id", "contract_id", "year", "month", "status", "entries"},
		[]any{id, w.UserID, w.ContractID, w.Year, w.Month, status, entriesJSON}
}

func patchWorkReport(p models.WorkReportPatch) (cols []string, vals []any) {
	if p.Status != nil {
		cols = append(cols, "status")
		vals = append(vals, *p.Status)
	}

	if p.Entries != nil {
		entriesJSON, _ := json.Marshal(p.Entries) //nolint:errcheck // map of floats, cannot fail.
		cols = append(cols, "entries")
		vals = append(vals, entriesJSON)
	}

	return cols, vals
}
