package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/hfappmaker/worktime/internal/models"
)

// SessionStore handles session token lookups (bearer token → user).
type SessionStore struct {
	Base
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(base Base) *SessionStore {
	return &SessionStore{Base: base}
}

// GetUserBySessionToken looks up the user owning an unexpired session by
// token hash. Only the SHA-256 of the token is ever stored or compared.
func (s *SessionStore) GetUserBySessionToken(ctx context.Context, token string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(hash[:])

	row := s.Pool.QueryRow(ctx, `
		SELECT u.id, u.name, COALESCE(u.email, ''), u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()`,
		tokenHash,
	)

	user, err := scanUser(row)
	if err != nil {
		if err = mapPgError(err); errors.Is(err, models.ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("looking up session: %w", err)
	}

	return user, nil
}
