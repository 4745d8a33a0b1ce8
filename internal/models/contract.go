package models

import "time"

// Contract ties a client to an engagement with billing terms. Work reports
// are filed against a contract month by month.
type Contract struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	ClientID  string     `json:"client_id"`
	Name      string     `json:"name"`
	UnitPrice float64    `json:"unit_price"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GetID returns the unique identifier of the contract.
func (c *Contract) GetID() string { return c.ID }

// GetOwnerID returns the owning user ID and whether one is set.
func (c *Contract) GetOwnerID() (string, bool) { return c.UserID, c.UserID != "" }

// Validate checks required fields before creation.
func (c *Contract) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}

	if len(c.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if c.ClientID == "" {
		return ErrMissingClient
	}

	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return ErrContractDates
	}

	return nil
}

// ContractPatch holds the updatable fields of a contract.
type ContractPatch struct {
	Name      *string    `json:"name,omitempty"`
	UnitPrice *float64   `json:"unit_price,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Validate checks ContractPatch fields.
func (p *ContractPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrMissingName
	}

	if p.Name != nil && len(*p.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ErrContractDates
	}

	return nil
}
