package models

import "time"

// Client is a customer a user bills work against. Clients are owned records:
// only the owning user may read or mutate them through the guard.
type Client struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetID returns the unique identifier of the client.
func (c *Client) GetID() string { return c.ID }

// GetOwnerID returns the owning user ID. The second return reports whether an
// owner is set at all; records created without one carry no ownership.
func (c *Client) GetOwnerID() (string, bool) { return c.UserID, c.UserID != "" }

// Validate checks required fields before creation.
func (c *Client) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}

	if len(c.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if len(c.ContactName) > 255 {
		return ErrFieldTooLong("contact_name", 255)
	}

	if len(c.Email) > 320 {
		return ErrFieldTooLong("email", 320)
	}

	return nil
}

// ClientPatch holds the updatable fields of a client.
type ClientPatch struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// Validate checks ClientPatch fields.
func (p *ClientPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrMissingName
	}

	if p.Name != nil && len(*p.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if p.ContactName != nil && len(*p.ContactName) > 255 {
		return ErrFieldTooLong("contact_name", 255)
	}

	if p.Email != nil && len(*p.Email) > 320 {
		return ErrFieldTooLong("email", 320)
	}

	return nil
}
