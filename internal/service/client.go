// Package service provides business logic between API handlers and the
// guarded data-access registry. Services validate input and log; ownership
// enforcement and audit logging happen below them, in internal/guard.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// ClientStore is the guarded data-access surface ClientService depends on.
type ClientStore interface {
	Create(ctx context.Context, rec *models.Client) (*models.Client, error)
	Update(ctx context.Context, where guard.Filter, patch models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, where guard.Filter) (*models.Client, error)
	FindUnique(ctx context.Context, where guard.Filter) (*models.Client, error)
	FindMany(ctx context.Context, where guard.Filter) ([]*models.Client, error)
}

// ClientService wraps the guarded client store with validation.
type ClientService struct {
	store ClientStore
	log   *logrus.Logger
}

// NewClientService creates a ClientService.
func NewClientService(store ClientStore, log *logrus.Logger) *ClientService {
	return &ClientService{store: store, log: log}
}

// ListClients returns all clients owned by the given user.
func (s *ClientService) ListClients(ctx context.Context, userID string) ([]*models.Client, error) {
	return s.store.FindMany(ctx, guard.Filter{guard.OwnerKey: userID})
}

// GetClient returns a single client by ID.
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.store.FindUnique(ctx, guard.Filter{"id": id})
}

// CreateClient validates and creates a client.
func (s *ClientService) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"client_id": created.ID, "user_id": created.UserID}).Info("client.create")

	return created, nil
}

// UpdateClient validates and applies a patch to a client.
func (s *ClientService) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, guard.Filter{"id": id}, patch)
}

// DeleteClient removes a client and logs the destructive operation.
func (s *ClientService) DeleteClient(ctx context.Context, id string) (*models.Client, error) {
	deleted, err := s.store.Delete(ctx, guard.Filter{"id": id})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"client_id": id}).Info("client.delete")

	return deleted, nil
}
