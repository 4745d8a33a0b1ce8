package guard

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// Stores bundles the raw per-entity store handles the registry wraps. The
// concrete implementations live in internal/store; tests substitute mocks.
type Stores struct {
	Users          Store[*models.User, models.UserPatch]
	Clients        Store[*models.Client, models.ClientPatch]
	Contracts      Store[*models.Contract, models.ContractPatch]
	WorkReports    Store[*models.WorkReport, models.WorkReportPatch]
	EmailTemplates Store[*models.EmailTemplate, models.EmailTemplatePatch]
	AuditLog       Store[*models.AuditEntry, models.AuditPatch]
}

// Registry is the guarded data-access surface handed to the rest of the
// application. Nothing outside the guard package touches the raw stores.
type Registry struct {
	Users          *Guarded[*models.User, models.UserPatch]
	Clients        *Guarded[*models.Client, models.ClientPatch]
	Contracts      *Guarded[*models.Contract, models.ContractPatch]
	WorkReports    *Guarded[*models.WorkReport, models.WorkReportPatch]
	EmailTemplates *Guarded[*models.EmailTemplate, models.EmailTemplatePatch]
	AuditLog       *Guarded[*models.AuditEntry, models.AuditPatch]
}

// NewRegistry wraps every store with its capability set. Owned entities get
// auditing plus the owner-filter requirement on list queries; users are
// audited but not owner-scoped; the audit log gets no auditor of its own,
// which is what prevents self-audit recursion.
func NewRegistry(s Stores, auditor Auditor, resolve Resolver, log *logrus.Logger) *Registry {
	return &Registry{
		Users:          New("users", s.Users, resolve, log, WithAuditor(auditor)),
		Clients:        New("clients", s.Clients, resolve, log, WithAuditor(auditor), WithOwnerFilter()),
		Contracts:      New("contracts", s.Contracts, resolve, log, WithAuditor(auditor), WithOwnerFilter()),
		WorkReports:    New("work_reports", s.WorkReports, resolve, log, WithAuditor(auditor), WithOwnerFilter()),
		EmailTemplates: New("email_templates", s.EmailTemplates, resolve, log, WithAuditor(auditor), WithOwnerFilter()),
		AuditLog:       New("audit_log", s.AuditLog, resolve, log, WithOwnerFilter()),
	}
}

var (
	initOnce sync.Once
	shared   *Registry
)

// Init builds the process-wide registry exactly once and returns it. Later
// calls return the first registry regardless of arguments, so module reloads
// in development never produce a second layer of wrapping.
func Init(s Stores, auditor Auditor, resolve Resolver, log *logrus.Logger) *Registry {
	initOnce.Do(func() {
		shared = NewRegistry(s, auditor, resolve, log)
	})

	return shared
}
