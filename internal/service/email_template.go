package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// EmailTemplateStore is the guarded data-access surface EmailTemplateService depends on.
type EmailTemplateStore interface {
	Create(ctx context.Context, rec *models.EmailTemplate) (*models.EmailTemplate, error)
	Update(ctx context.Context, where guard.Filter, patch models.EmailTemplatePatch) (*models.EmailTemplate, error)
	Delete(ctx context.Context, where guard.Filter) (*models.EmailTemplate, error)
	FindUnique(ctx context.Context, where guard.Filter) (*models.EmailTemplate, error)
	FindMany(ctx context.Context, where guard.Filter) ([]*models.EmailTemplate, error)
}

// RenderedEmail is the outcome of expanding a template against a contract.
type RenderedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailTemplateService wraps the guarded template store with validation and
// placeholder rendering.
type EmailTemplateService struct {
	store     EmailTemplateStore
	contracts ContractStore
	clients   ClientStore
	log       *logrus.Logger
}

// NewEmailTemplateService creates an EmailTemplateService.
func NewEmailTemplateService(store EmailTemplateStore, contracts ContractStore, clients ClientStore, log *logrus.Logger) *EmailTemplateService {
	return &EmailTemplateService{store: store, contracts: contracts, clients: clients, log: log}
}

// ListEmailTemplates returns all templates owned by the given user.
func (s *EmailTemplateService) ListEmailTemplates(ctx context.Context, userID string) ([]*models.EmailTemplate, error) {
	return s.store.FindMany(ctx, guard.Filter{guard.OwnerKey: userID})
}

// GetEmailTemplate returns a single template by ID.
func (s *EmailTemplateService) GetEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error) {
	return s.store.FindUnique(ctx, guard.Filter{"id": id})
}

// CreateEmailTemplate validates and creates a template.
func (s *EmailTemplateService) CreateEmailTemplate(ctx context.Context, t *models.EmailTemplate) (*models.EmailTemplate, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"template_id": created.ID, "user_id": created.UserID}).Info("email_template.create")

	return created, nil
}

// UpdateEmailTemplate validates and applies a patch to a template.
func (s *EmailTemplateService) UpdateEmailTemplate(ctx context.Context, id string, patch models.EmailTemplatePatch) (*models.EmailTemplate, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, guard.Filter{"id": id}, patch)
}

// DeleteEmailTemplate removes a template and logs the destructive operation.
func (s *EmailTemplateService) DeleteEmailTemplate(ctx context.Context, id string) (*models.EmailTemplate, error) {
	deleted, err := s.store.Delete(ctx, guard.Filter{"id": id})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"template_id": id}).Info("email_template.delete")

	return deleted, nil
}

// Render expands a template's placeholders against a contract and its client.
// Supported placeholders: {{client_name}}, {{contact_name}}, {{client_email}},
// {{contract_name}}, {{unit_price}}. Unknown placeholders pass through
// untouched. All reads go through the guarded stores, so a template or
// contract owned by another user renders as an unauthorized read.
func (s *EmailTemplateService) Render(ctx context.Context, templateID, contractID string) (*RenderedEmail, error) {
	tmpl, err := s.GetEmailTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	contract, err := s.contracts.FindUnique(ctx, guard.Filter{"id": contractID})
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindUnique(ctx, guard.Filter{"id": contract.ClientID})
	if err != nil {
		return nil, err
	}

	r := strings.NewReplacer(
		"{{client_name}}", client.Name,
		"{{contact_name}}", client.ContactName,
		"{{client_email}}", client.Email,
		"{{contract_name}}", contract.Name,
		"{{unit_price}}", strconv.FormatFloat(contract.UnitPrice, 'f', -1, 64),
	)

	return &RenderedEmail{
		Subject: r.Replace(tmpl.Subject),
		Body:    r.Replace(tmpl.Body),
	}, nil
}
