package api_test

import (
	"context"

	"github.com/hfappmaker/worktime/internal/models"
	"github.com/hfappmaker/worktime/internal/service"
)

// mockClientService returns configured responses for client endpoints.
type mockClientService struct {
	listFn   func(ctx context.Context, userID string) ([]*models.Client, error)
	getFn    func(ctx context.Context, id string) (*models.Client, error)
	createFn func(ctx context.Context, c *models.Client) (*models.Client, error)
	updateFn func(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error)
	deleteFn func(ctx context.Context, id string) (*models.Client, error)
}

func (m *mockClientService) ListClients(ctx context.Context, userID string) ([]*models.Client, error) {
	return m.listFn(ctx, userID)
}

func (m *mockClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return m.getFn(ctx, id)
}

func (m *mockClientService) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	return m.createFn(ctx, c)
}

func (m *mockClientService) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockClientService) DeleteClient(ctx context.Context, id string) (*models.Client, error) {
	return m.deleteFn(ctx, id)
}

// mockWorkReportService returns configured responses for work report endpoints.
type mockWorkReportService struct {
	listFn   func(ctx context.Context, userID, contractID string) ([]*models.WorkReport, error)
	getFn    func(ctx context.Context, id string) (*models.WorkReport, error)
	createFn func(ctx context.Context, w *models.WorkReport) (*models.WorkReport, error)
	updateFn func(ctx context.Context, id string, patch models.WorkReportPatch) (*models.WorkReport, error)
	deleteFn func(ctx context.Context, id string) (*models.WorkReport, error)
	upsertFn func(ctx context.Context, userID, contractID string, year, month int, entries map[string]float64) (*models.WorkReport, error)
}

func (m *mockWorkReportService) ListWorkReports(ctx context.Context, userID, contractID string) ([]*models.WorkReport, error) {
	return m.listFn(ctx, userID, contractID)
}

func (m *mockWorkReportService) GetWorkReport(ctx context.Context, id string) (*models.WorkReport, error) {
	return m.getFn(ctx, id)
}

func (m *mockWorkReportService) CreateWorkReport(ctx context.Context, w *models.WorkReport) (*models.WorkReport, error) {
	return m.createFn(ctx, w)
}

func (m *mockWorkReportService) UpdateWorkReport(ctx context.Context, id string, patch models.WorkReportPatch) (*models.WorkReport, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockWorkReportService) DeleteWorkReport(ctx context.Context, id string) (*models.WorkReport, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockWorkReportService) UpsertMonth(ctx context.Context, userID, contractID string, year, month int, entries map[string]float64) (*models.WorkReport, error) {
	return m.upsertFn(ctx, userID, contractID, year, month, entries)
}

// mockTemplateService returns configured responses for email template endpoints.
type mockTemplateService struct {
	listFn   func(ctx context.Context, userID string) ([]*models.EmailTemplate, error)
	getFn    func(ctx context.Context, id string) (*models.EmailTemplate, error)
	createFn func(ctx context.Context, t *models.EmailTemplate) (*models.EmailTemplate, error)
	updateFn func(ctx context.Context, id string, patch models.EmailTemplatePatch) (*models.EmailTemplate, error)
	deleteFn func(ctx context.Context, id string) (*models.EmailTemplate, error)
	renderFn func(ctx context.Context, templateID, contractID string) (*service.RenderedEmail, error)
}

func (m *mockTemplateService) ListEmailTemplates(ctx context.Context, userID string) ([]*models.EmailTemplate, error) {
	return m.listFn(ctx, userID)
}

func (m *mockTemplateService) GetEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error) {
	return m.getFn(ctx, id)
}

func (m *mockTemplateService) CreateEmailTemplate(ctx context.Context, t *models.EmailTemplate) (*models.EmailTemplate, error) {
	return m.createFn(ctx, t)
}

func (m *mockTemplateService) UpdateEmailTemplate(ctx context.Context, id string, patch models.EmailTemplatePatch) (*models.EmailTemplate, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockTemplateService) DeleteEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockTemplateService) Render(ctx context.Context, templateID, contractID string) (*service.RenderedEmail, error) {
	return m.renderFn(ctx, templateID, contractID)
}

// mockAuditService returns configured responses for audit endpoints.
type mockAuditService struct {
	queryFn func(ctx context.Context, userID string, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	purgeFn func(ctx context.Context, retentionDays int) (int, error)
}

func (m *mockAuditService) QueryOwnAudit(ctx context.Context, userID string, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryFn(ctx, userID, opts)
}

func (m *mockAuditService) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	return m.purgeFn(ctx, retentionDays)
}
