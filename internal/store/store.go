// Package store implements the underlying per-entity data access for
// worktime on PostgreSQL.
//
// Each entity store is a thin descriptor over the generic table type in
// table.go, which implements the guard.Store contract (create/update/delete/
// findUnique/findFirst/findMany). Stores carry no policy: ownership
// enforcement and audit logging live one layer up, in internal/guard. The
// only callers holding raw store handles are the guard registry and the
// maintenance paths (audit retention).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/dbpool"
	"github.com/hfappmaker/worktime/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// mapPgError translates driver errors into the store's sentinel errors.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.ErrDuplicateKey
	}

	return err
}
