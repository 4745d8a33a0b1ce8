package models

import "time"

// Work report statuses.
const (
	ReportDraft     = "draft"
	ReportSubmitted = "submitted"
	ReportApproved  = "approved"
)

// WorkReport is one month of attendance for a contract. Entries map a day of
// the month ("1".."31") to hours worked and are stored as JSONB.
type WorkReport struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	ContractID string             `json:"contract_id"`
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Status     string             `json:"status"`
	Entries    map[string]float64 `json:"entries,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// GetID returns the unique identifier of the work report.
func (w *WorkReport) GetID() string { return w.ID }

// GetOwnerID returns the owning user ID and whether one is set.
func (w *WorkReport) GetOwnerID() (string, bool) { return w.UserID, w.UserID != "" }

// TotalHours sums all attendance entries.
func (w *WorkReport) TotalHours() float64 {
	var total float64
	for _, h := range w.Entries {
		total += h
	}

	return total
}

// Validate checks required fields before creation.
func (w *WorkReport) Validate() error {
	if w.ContractID == "" {
		return ErrMissingContract
	}

	if w.Year < 2000 || w.Year > 2100 {
		return ErrInvalidYear
	}

	if w.Month < 1 || w.Month > 12 {
		return ErrInvalidMonth
	}

	if w.Status != "" && !validReportStatus(w.Status) {
		return ErrInvalidStatus
	}

	return nil
}

// WorkReportPatch holds the updatable fields of a work report. A non-nil
// Entries replaces the whole attendance map.
type WorkReportPatch struct {
	Status  *string            `json:"status,omitempty"`
	Entries map[string]float64 `json:"entries,omitempty"`
}

// Validate checks WorkReportPatch fields.
func (p *WorkReportPatch) Validate() error {
	if p.Status != nil && !validReportStatus(*p.Status) {
		return ErrInvalidStatus
	}

	return nil
}

func validReportStatus(s string) bool {
	return s == ReportDraft || s == ReportSubmitted || s == ReportApproved
}
