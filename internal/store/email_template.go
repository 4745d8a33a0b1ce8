package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/models"
)

const emailTemplateColumns = "id, user_id, name, subject, body, created_at, updated_at"

// EmailTemplateStore handles email template CRUD operations.
type EmailTemplateStore struct {
	table[*models.EmailTemplate, models.EmailTemplatePatch]
}

// NewEmailTemplateStore creates a new EmailTemplateStore.
func NewEmailTemplateStore(base Base) *EmailTemplateStore {
	s := &EmailTemplateStore{}
	s.table = table[*models.EmailTemplate, models.EmailTemplatePatch]{
		Base:     base,
		name:     "email_templates",
		columns:  emailTemplateColumns,
		scanRow:  scanEmailTemplate,
		insert:   insertEmailTemplate,
		patch:    patchEmailTemplate,
		sortable: "name, id",
		filters:  map[string]bool{"id": true, "user_id": true, "name": true},
		unique:   []string{"id"},
		touch:    true,
	}

	return s
}

func scanEmailTemplate(row pgx.Row) (*models.EmailTemplate, error) {
	var t models.EmailTemplate
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

func insertEmailTemplate(t *models.EmailTemplate) ([]string, []any) {
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}

	return []string{"id", "user_id", "name", "subject", "body"},
		[]any{id, t.UserID, t.Name, t.Subject, t.Body}
}

func patchEmailTemplate(p models.EmailTemplatePatch) (cols []string, vals []any) {
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}

	if p.Subject != nil {
		cols = append(cols, "subject")
		vals = append(vals, *p.Subject)
	}

	if p.Body != nil {
		cols = append(cols, "body")
		vals = append(vals, *p.Body)
	}

	return cols, vals
}
