package api

import (
	"context"

	"github.com/hfappmaker/worktime/internal/models"
	"github.com/hfappmaker/worktime/internal/service"
)

// Handler-facing service interfaces. The concrete implementations live in
// internal/service; tests substitute mocks.

// ClientService is the client operations surface used by ClientHandler.
type ClientService interface {
	ListClients(ctx context.Context, userID string) ([]*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) (*models.Client, error)
}

// ContractService is the contract operations surface used by ContractHandler.
type ContractService interface {
	ListContracts(ctx context.Context, userID, clientID string) ([]*models.Contract, error)
	GetContract(ctx context.Context, id string) (*models.Contract, error)
	CreateContract(ctx context.Context, c *models.Contract) (*models.Contract, error)
	UpdateContract(ctx context.Context, id string, patch models.ContractPatch) (*models.Contract, error)
	DeleteContract(ctx context.Context, id string) (*models.Contract, error)
}

// WorkReportService is the work report operations surface used by WorkReportHandler.
type WorkReportService interface {
	ListWorkReports(ctx context.Context, userID, contractID string) ([]*models.WorkReport, error)
	GetWorkReport(ctx context.Context, id string) (*models.WorkReport, error)
	CreateWorkReport(ctx context.Context, w *models.WorkReport) (*models.WorkReport, error)
	UpdateWorkReport(ctx context.Context, id string, patch models.WorkReportPatch) (*models.WorkReport, error)
	DeleteWorkReport(ctx context.Context, id string) (*models.WorkReport, error)
	UpsertMonth(ctx context.Context, userID, contractID string, year, month int, entries map[string]float64) (*models.WorkReport, error)
}

// EmailTemplateService is the template operations surface used by EmailTemplateHandler.
type EmailTemplateService interface {
	ListEmailTemplates(ctx context.Context, userID string) ([]*models.EmailTemplate, error)
	GetEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error)
	CreateEmailTemplate(ctx context.Context, t *models.EmailTemplate) (*models.EmailTemplate, error)
	UpdateEmailTemplate(ctx context.Context, id string, patch models.EmailTemplatePatch) (*models.EmailTemplate, error)
	DeleteEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error)
	Render(ctx context.Context, templateID, contractID string) (*service.RenderedEmail, error)
}

// AuditQueryService is the audit trail surface used by AuditHandler.
type AuditQueryService interface {
	QueryOwnAudit(ctx context.Context, userID string, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	PurgeOldEntries(ctx context.Context, retentionDays int) (int, error)
}

// Compile-time checks: the concrete services satisfy the handler surfaces.
var (
	_ ClientService        = (*service.ClientService)(nil)
	_ ContractService      = (*service.ContractService)(nil)
	_ WorkReportService    = (*service.WorkReportService)(nil)
	_ EmailTemplateService = (*service.EmailTemplateService)(nil)
	_ AuditQueryService    = (*service.AuditService)(nil)
)
