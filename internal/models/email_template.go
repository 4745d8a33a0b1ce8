package models

import "time"

// EmailTemplate is a user-owned mail template. Subject and body may contain
// {{placeholder}} markers substituted at render time.
type EmailTemplate struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the unique identifier of the template.
func (t *EmailTemplate) GetID() string { return t.ID }

// GetOwnerID returns the owning user ID and whether one is set.
func (t *EmailTemplate) GetOwnerID() (string, bool) { return t.UserID, t.UserID != "" }

// Validate checks required fields before creation.
func (t *EmailTemplate) Validate() error {
	if t.Name == "" {
		return ErrMissingName
	}

	if len(t.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if t.Subject == "" {
		return ErrMissingSubject
	}

	if len(t.Subject) > 998 {
		return ErrFieldTooLong("subject", 998)
	}

	if len(t.Body) > 65536 {
		return ErrFieldTooLong("body", 65536)
	}

	return nil
}

// EmailTemplatePatch holds the updatable fields of a template.
type EmailTemplatePatch struct {
	Name    *string `json:"name,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// Validate checks EmailTemplatePatch fields.
func (p *EmailTemplatePatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrMissingName
	}

	if p.Name != nil && len(*p.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if p.Subject != nil && *p.Subject == "" {
		return ErrMissingSubject
	}

	if p.Subject != nil && len(*p.Subject) > 998 {
		return ErrFieldTooLong("subject", 998)
	}

	if p.Body != nil && len(*p.Body) > 65536 {
		return ErrFieldTooLong("body", 65536)
	}

	return nil
}
