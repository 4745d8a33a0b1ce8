package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/models"
)

const userColumns = "id, name, COALESCE(email, ''), created_at, updated_at"

// UserStore handles user CRUD operations.
type UserStore struct {
	table[*models.User, models.UserPatch]
}

// NewUserStore creates a new UserStore.
func NewUserStore(base Base) *UserStore {
	s := &UserStore{}
	s.table = table[*models.User, models.UserPatch]{
		Base:     base,
		name:     "users",
		columns:  userColumns,
		scanRow:  scanUser,
		insert:   insertUser,
		patch:    patchUser,
		sortable: "created_at DESC, id",
		filters:  map[string]bool{"id": true, "email": true, "name": true},
		unique:   []string{"id", "email"},
		touch:    true,
	}

	return s
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

func insertUser(u *models.User) ([]string, []any) {
	id := u.ID
	if id == "" {
		id = uuid.New().String()
	}

	cols := []string{"id", "name"}
	vals := []any{id, u.Name}

	// The email column is nullable and unique; store NULL, not '', when unset.
	if u.Email != "" {
		cols = append(cols, "email")
		vals = append(vals, u.Email)
	}

	return cols, vals
}

func patchUser(p models.UserPatch) (cols []string, vals []any) {
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}

	if p.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *p.Email)
	}

	return cols, vals
}
