// Package models defines the persisted entity types for worktime.
//
// Entities expose the capabilities the data-access guard consumes:
// every entity implements GetID; entities carrying per-user ownership
// additionally implement GetOwnerID (see internal/guard).
package models

import "time"

// User is an account in the system. Users are not owned records — they are
// principals; visibility is an admin concern, not an ownership one.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the unique identifier of the user.
func (u *User) GetID() string { return u.ID }

// Validate checks required fields before creation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrMissingName
	}

	if len(u.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if len(u.Email) > 320 {
		return ErrFieldTooLong("email", 320)
	}

	return nil
}

// UserPatch holds the updatable fields of a user. Nil fields are left
// untouched.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Validate checks UserPatch fields.
func (p *UserPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrMissingName
	}

	if p.Name != nil && len(*p.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if p.Email != nil && len(*p.Email) > 320 {
		return ErrFieldTooLong("email", 320)
	}

	return nil
}
