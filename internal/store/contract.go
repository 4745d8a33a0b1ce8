package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/models"
)

const contractColumns = "id, user_id, client_id, name, unit_price, start_date, end_date, created_at, updated_at"

// ContractStore handles contract CRUD operations.
type ContractStore struct {
	table[*models.Contract, models.ContractPatch]
}

// NewContractStore creates a new ContractStore.
func NewContractStore(base Base) *ContractStore {
	s := &ContractStore{}
	s.table = table[*models.Contract, models.ContractPatch]{
		Base:     base,
		name:     "contracts",
		columns:  contractColumns,
		scanRow:  scanContract,
		insert:   insertContract,
		patch:    patchContract,
		sortable: "created_at DESC, id",
		filters:  map[string]bool{"id": true, "user_id": true, "client_id": true, "name": true},
		unique:   []string{"id"},
		touch:    true,
	}

	return s
}

func scanContract(row pgx.Row) (*models.Contract, error) {
	var c models.Contract
	if err := row.Scan(&c.ID, &c.UserID, &c.ClientID, &c.Name, &c.UnitPrice, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func insertContract(c *models.Contract) ([]string, []any) {
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}

	cols := []string{"id", "user_id", "client_id", "name", "unit_price", "end_date"}
	vals := []any{id, c.UserID, c.ClientID, c.Name, c.UnitPrice, c.EndDate}

	// Leave start_date to its column default when unset.
	if !c.StartDate.IsZero() {
		cols = append(cols, "start_date")
		vals = append(vals, c.StartDate)
	}

	return cols, vals
}

func patchContract(p models.ContractPatch) (cols []string, vals []any) {
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}

	if p.UnitPrice != nil {
		cols = append(cols, "unit_price")
		vals = append(vals, *p.UnitPrice)
	}

	if p.StartDate != nil {
		cols = append(cols, "start_date")
		vals = append(vals, *p.StartDate)
	}

	if p.EndDate != nil {
		cols = append(cols, "end_date")
		vals = append(vals, *p.EndDate)
	}

	return cols, vals
}
