package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/models"
)

const clientColumns = "id, user_id, name, contact_name, email, created_at, updated_at"

// ClientStore handles client CRUD operations.
type ClientStore struct {
	table[*models.Client, models.ClientPatch]
}

// NewClientStore creates a new ClientStore.
func NewClientStore(base Base) *ClientStore {
	s := &ClientStore{}
	s.table = table[*models.Client, models.ClientPatch]{
		Base:     base,
		name:     "clients",
		columns:  clientColumns,
		scanRow:  scanClient,
		insert:   insertClient,
		patch:    patchClient,
		sortable: "created_at DESC, id",
		filters:  map[string]bool{"id": true, "user_id": true, "name": true, "email": true},
		unique:   []string{"id"},
		touch:    true,
	}

	return s
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.ContactName, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func insertClient(c *models.Client) ([]string, []any) {
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}

	return []string{"id", "user_id", "name", "contact_name", "email"},
		[]any{id, c.UserID, c.Name, c.ContactName, c.Email}
}

func patchClient(p models.ClientPatch) (cols []string, vals []any) {
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}

	if p.ContactName != nil {
		cols = append(cols, "contact_name")
		vals = append(vals, *p.ContactName)
	}

	if p.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *p.Email)
	}

	return cols, vals
}
