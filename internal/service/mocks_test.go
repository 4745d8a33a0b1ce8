package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// mockWorkReportStore records calls and returns configured responses.
type mockWorkReportStore struct {
	mu    sync.Mutex
	calls []string

	createFn     func(ctx context.Context, rec *models.WorkReport) (*models.WorkReport, error)
	updateFn     func(ctx context.Context, where guard.Filter, patch models.WorkReportPatch) (*models.WorkReport, error)
	deleteFn     func(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	findUniqueFn func(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	findFirstFn  func(ctx context.Context, where guard.Filter) (*models.WorkReport, error)
	findManyFn   func(ctx context.Context, where guard.Filter) ([]*models.WorkReport, error)
}

func (m *mockWorkReportStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockWorkReportStore) Create(ctx context.Context, rec *models.WorkReport) (*models.WorkReport, error) {
	m.record("Create")
	return m.createFn(ctx, rec)
}

func (m *mockWorkReportStore) Update(ctx context.Context, where guard.Filter, patch models.WorkReportPatch) (*models.WorkReport, error) {
	m.record("Update")
	return m.updateFn(ctx, where, patch)
}

func (m *mockWorkReportStore) Delete(ctx context.Context, where guard.Filter) (*models.WorkReport, error) {
	m.record("Delete")
	return m.deleteFn(ctx, where)
}

func (m *mockWorkReportStore) FindUnique(ctx context.Context, where guard.Filter) (*models.WorkReport, error) {
	m.record("FindUnique")
	return m.findUniqueFn(ctx, where)
}

func (m *mockWorkReportStore) FindFirst(ctx context.Context, where guard.Filter) (*models.WorkReport, error) {
	m.record("FindFirst")
	return m.findFirstFn(ctx, where)
}

func (m *mockWorkReportStore) FindMany(ctx context.Context, where guard.Filter) ([]*models.WorkReport, error) {
	m.record("FindMany")
	return m.findManyFn(ctx, where)
}

// mockTemplateStore returns configured responses for template operations.
type mockTemplateStore struct {
	findUniqueFn func(ctx context.Context, where guard.Filter) (*models.EmailTemplate, error)
	findManyFn   func(ctx context.Context, where guard.Filter) ([]*models.EmailTemplate, error)
	createFn     func(ctx context.Context, rec *models.EmailTemplate) (*models.EmailTemplate, error)
}

func (m *mockTemplateStore) Create(ctx context.Context, rec *models.EmailTemplate) (*models.EmailTemplate, error) {
	return m.createFn(ctx, rec)
}

func (m *mockTemplateStore) Update(_ context.Context, _ guard.Filter, _ models.EmailTemplatePatch) (*models.EmailTemplate, error) {
	return nil, models.ErrNotFound
}

func (m *mockTemplateStore) Delete(_ context.Context, _ guard.Filter) (*models.EmailTemplate, error) {
	return nil, models.ErrNotFound
}

func (m *mockTemplateStore) FindUnique(ctx context.Context, where guard.Filter) (*models.EmailTemplate, error) {
	return m.findUniqueFn(ctx, where)
}

func (m *mockTemplateStore) FindMany(ctx context.Context, where guard.Filter) ([]*models.EmailTemplate, error) {
	return m.findManyFn(ctx, where)
}

// mockContractStore returns configured responses for contract operations.
type mockContractStore struct {
	findUniqueFn func(ctx context.Context, where guard.Filter) (*models.Contract, error)
}

func (m *mockContractStore) Create(_ context.Context, rec *models.Contract) (*models.Contract, error) {
	return rec, nil
}

func (m *mockContractStore) Update(_ context.Context, _ guard.Filter, _ models.ContractPatch) (*models.Contract, error) {
	return nil, models.ErrNotFound
}

func (m *mockContractStore) Delete(_ context.Context, _ guard.Filter) (*models.Contract, error) {
	return nil, models.ErrNotFound
}

func (m *mockContractStore) FindUnique(ctx context.Context, where guard.Filter) (*models.Contract, error) {
	return m.findUniqueFn(ctx, where)
}

func (m *mockContractStore) FindMany(_ context.Context, _ guard.Filter) ([]*models.Contract, error) {
	return nil, nil
}

// mockClientLookup returns configured responses for client operations.
type mockClientLookup struct {
	findUniqueFn func(ctx context.Context, where guard.Filter) (*models.Client, error)
}

func (m *mockClientLookup) Create(_ context.Context, rec *models.Client) (*models.Client, error) {
	return rec, nil
}

func (m *mockClientLookup) Update(_ context.Context, _ guard.Filter, _ models.ClientPatch) (*models.Client, error) {
	return nil, models.ErrNotFound
}

func (m *mockClientLookup) Delete(_ context.Context, _ guard.Filter) (*models.Client, error) {
	return nil, models.ErrNotFound
}

func (m *mockClientLookup) FindUnique(ctx context.Context, where guard.Filter) (*models.Client, error) {
	return m.findUniqueFn(ctx, where)
}

func (m *mockClientLookup) FindMany(_ context.Context, _ guard.Filter) ([]*models.Client, error) {
	return nil, nil
}

// mockAuditTrail records the last list filter and returns configured responses.
type mockAuditTrail struct {
	lastWhere guard.Filter

	findManyFn func(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error)
}

func (m *mockAuditTrail) FindMany(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error) {
	m.lastWhere = where
	if m.findManyFn == nil {
		return nil, nil
	}
	return m.findManyFn(ctx, where)
}

// mockAuditMaintenance returns configured responses for the retention purge.
type mockAuditMaintenance struct {
	purgeFn func(ctx context.Context, retentionDays int) (int, error)
}

func (m *mockAuditMaintenance) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	return m.purgeFn(ctx, retentionDays)
}

// mockAuditLogStore implements the raw audit-log store contract for wrapping
// in a real guard.
type mockAuditLogStore struct {
	findManyFn func(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error)
}

func (m *mockAuditLogStore) Create(_ context.Context, rec *models.AuditEntry) (*models.AuditEntry, error) {
	return rec, nil
}

func (m *mockAuditLogStore) Update(_ context.Context, _ guard.Filter, _ models.AuditPatch) (*models.AuditEntry, error) {
	return nil, models.ErrNotFound
}

func (m *mockAuditLogStore) Delete(_ context.Context, _ guard.Filter) (*models.AuditEntry, error) {
	return nil, models.ErrNotFound
}

func (m *mockAuditLogStore) FindUnique(_ context.Context, _ guard.Filter) (*models.AuditEntry, error) {
	return nil, models.ErrNotFound
}

func (m *mockAuditLogStore) FindFirst(_ context.Context, _ guard.Filter) (*models.AuditEntry, error) {
	return nil, models.ErrNotFound
}

func (m *mockAuditLogStore) FindMany(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error) {
	return m.findManyFn(ctx, where)
}
