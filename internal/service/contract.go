package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// ContractStore is the guarded data-access surface ContractService depends on.
type ContractStore interface {
	Create(ctx context.Context, rec *models.Contract) (*models.Contract, error)
	Update(ctx context.Context, where guard.Filter, patch models.ContractPatch) (*models.Contract, error)
	Delete(ctx context.Context, where guard.Filter) (*models.Contract, error)
	FindUnique(ctx context.Context, where guard.Filter) (*models.Contract, error)
	FindMany(ctx context.Context, where guard.Filter) ([]*models.Contract, error)
}

// ContractService wraps the guarded contract store with validation.
type ContractService struct {
	store ContractStore
	log   *logrus.Logger
}

// NewContractService creates a ContractService.
func NewContractService(store ContractStore, log *logrus.Logger) *ContractService {
	return &ContractService{store: store, log: log}
}

// ListContracts returns all contracts owned by the given user, optionally
// narrowed to one client.
func (s *ContractService) ListContracts(ctx context.Context, userID, clientID string) ([]*models.Contract, error) {
	where := guard.Filter{guard.OwnerKey: userID}
	if clientID != "" {
		where["client_id"] = clientID
	}

	return s.store.FindMany(ctx, where)
}

// GetContract returns a single contract by ID.
func (s *ContractService) GetContract(ctx context.Context, id string) (*models.Contract, error) {
	return s.store.FindUnique(ctx, guard.Filter{"id": id})
}

// CreateContract validates and creates a contract.
func (s *ContractService) CreateContract(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"contract_id": created.ID,
		"client_id":   created.ClientID,
		"user_id":     created.UserID,
	}).Info("contract.create")

	return created, nil
}

// UpdateContract validates and applies a patch to a contract.
func (s *ContractService) UpdateContract(ctx context.Context, id string, patch models.ContractPatch) (*models.Contract, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, guard.Filter{"id": id}, patch)
}

// DeleteContract removes a contract and logs the destructive operation.
func (s *ContractService) DeleteContract(ctx context.Context, id string) (*models.Contract, error) {
	deleted, err := s.store.Delete(ctx, guard.Filter{"id": id})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"contract_id": id}).Info("contract.delete")

	return deleted, nil
}
