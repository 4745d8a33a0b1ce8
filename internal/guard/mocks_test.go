package guard_test

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// mockClientStore records calls and returns configured responses.
type mockClientStore struct {
	mu    sync.Mutex
	calls []string

	createFn     func(ctx context.Context, rec *models.Client) (*models.Client, error)
	updateFn     func(ctx context.Context, where guard.Filter, patch models.ClientPatch) (*models.Client, error)
	deleteFn     func(ctx context.Context, where guard.Filter) (*models.Client, error)
	findUniqueFn func(ctx context.Context, where guard.Filter) (*models.Client, error)
	findFirstFn  func(ctx context.Context, where guard.Filter) (*models.Client, error)
	findManyFn   func(ctx context.Context, where guard.Filter) ([]*models.Client, error)
}

func (m *mockClientStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockClientStore) called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (m *mockClientStore) Create(ctx context.Context, rec *models.Client) (*models.Client, error) {
	m.record("Create")
	return m.createFn(ctx, rec)
}

func (m *mockClientStore) Update(ctx context.Context, where guard.Filter, patch models.ClientPatch) (*models.Client, error) {
	m.record("Update")
	return m.updateFn(ctx, where, patch)
}

func (m *mockClientStore) Delete(ctx context.Context, where guard.Filter) (*models.Client, error) {
	m.record("Delete")
	return m.deleteFn(ctx, where)
}

func (m *mockClientStore) FindUnique(ctx context.Context, where guard.Filter) (*models.Client, error) {
	m.record("FindUnique")
	return m.findUniqueFn(ctx, where)
}

func (m *mockClientStore) FindFirst(ctx context.Context, where guard.Filter) (*models.Client, error) {
	m.record("FindFirst")
	return m.findFirstFn(ctx, where)
}

func (m *mockClientStore) FindMany(ctx context.Context, where guard.Filter) ([]*models.Client, error) {
	m.record("FindMany")
	return m.findManyFn(ctx, where)
}

// mockAuditLogStore returns configured responses for audit-log operations.
type mockAuditLogStore struct {
	createFn   func(ctx context.Context, rec *models.AuditEntry) (*models.AuditEntry, error)
	findManyFn func(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error)
}

func (m *mockAuditLogStore) Create(ctx context.Context, rec *models.AuditEntry) (*models.AuditEntry, error) {
	if m.createFn == nil {
		return rec, nil
	}
	return m.createFn(ctx, rec)
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
	if m.findManyFn == nil {
		return nil, nil
	}
	return m.findManyFn(ctx, where)
}

// mockAuditor collects audit entries and optionally fails.
type mockAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (m *mockAuditor) Record(_ context.Context, entry models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *mockAuditor) last() models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[len(m.entries)-1]
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// asUser returns a context carrying a principal with the given id.
func asUser(id string) context.Context {
	return guard.WithPrincipal(context.Background(), &guard.Principal{ID: id, Name: "Test User"})
}
