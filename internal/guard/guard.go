// Package guard is the data-access authorization and audit layer.
//
// Every store operation the application issues goes through a Guarded
// wrapper: mutations are checked against per-user row ownership and, when
// they succeed, produce exactly one audit entry; single-record reads are
// checked after the fact; list queries must carry an owner filter. The raw
// store handle stays private to the wrapper — it is used only for the
// unguarded pre-image lookups that ownership checks on update/delete need.
package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/metrics"
	"github.com/hfappmaker/worktime/internal/models"
)

// OwnerKey is the filter key that scopes list queries to an owner. Its
// presence is what FindMany checks — not value correctness; passing a nil or
// wrong value is accepted here and resolved by the store query itself.
const OwnerKey = "user_id"

// Filter is the where-clause shape shared by the guard and the stores: a map
// from column name to required value. A nil value matches SQL NULL.
type Filter map[string]any

// Has reports whether the filter contains the given key, regardless of value.
func (f Filter) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Record is the minimal capability every entity exposes to the guard.
type Record interface {
	GetID() string
}

// Ownable marks entities that carry per-user ownership. Entities without
// ownership semantics simply don't implement it and skip the checks.
type Ownable interface {
	GetOwnerID() (ownerID string, set bool)
}

// Store is the underlying per-entity data-access contract the guard wraps.
// T is the record type, P the typed patch applied by Update.
type Store[T Record, P any] interface {
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, where Filter, patch P) (T, error)
	Delete(ctx context.Context, where Filter) (T, error)
	FindUnique(ctx context.Context, where Filter) (T, error)
	FindFirst(ctx context.Context, where Filter) (T, error)
	FindMany(ctx context.Context, where Filter) ([]T, error)
}

// Auditor records one audit entry per successful mutation. The audit-log
// entity's own guard is constructed without one, which is what breaks the
// self-audit recursion.
type Auditor interface {
	Record(ctx context.Context, entry models.AuditEntry) error
}

// Guarded wraps a raw store with ownership enforcement and audit logging.
// It is stateless across calls; the principal is resolved fresh per call.
type Guarded[T Record, P any] struct {
	entity        string
	raw           Store[T, P]
	audit         Auditor  // nil: entity is exempt from auditing
	resolve       Resolver // current-principal lookup, invoked per call
	ownerFiltered bool     // FindMany must carry OwnerKey
	log           *logrus.Logger
}

// Option configures a Guarded wrapper.
type Option func(*guardOptions)

type guardOptions struct {
	audit         Auditor
	ownerFiltered bool
}

// WithAuditor enables audit-entry writes through the given Auditor.
func WithAuditor(a Auditor) Option {
	return func(o *guardOptions) { o.audit = a }
}

// WithOwnerFilter requires every FindMany where clause to contain OwnerKey.
func WithOwnerFilter() Option {
	return func(o *guardOptions) { o.ownerFiltered = true }
}

// New wraps a raw store. The entity name appears in errors, audit entries
// and metrics labels.
func New[T Record, P any](entity string, raw Store[T, P], resolve Resolver, log *logrus.Logger, opts ...Option) *Guarded[T, P] {
	var o guardOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &Guarded[T, P]{
		entity:        entity,
		raw:           raw,
		audit:         o.audit,
		resolve:       resolve,
		ownerFiltered: o.ownerFiltered,
		log:           log,
	}
}

// deny records a rejected operation and returns the entity-tagged error.
func (g *Guarded[T, P]) deny(kind string, sentinel error) error {
	metrics.GuardDenials.WithLabelValues(g.entity, kind).Inc()
	g.log.WithFields(logrus.Fields{"entity": g.entity, "kind": kind}).Warn("guard denied operation")

	return fmt.Errorf("%s: %w", g.entity, sentinel)
}

// ownedByOther reports whether rec carries an owner that differs from the
// principal. Absent principals compare as the empty id.
func ownedByOther(rec any, p *Principal) bool {
	o, ok := rec.(Ownable)
	if !ok {
		return false
	}

	owner, set := o.GetOwnerID()
	if !set {
		return false
	}

	return owner != p.id()
}

// Create checks that the payload's owner (if any) is the current principal,
// delegates, and audits the created record.
func (g *Guarded[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	p, err := g.resolve(ctx)
	if err != nil {
		return zero, fmt.Errorf("resolving principal: %w", err)
	}

	if ownedByOther(rec, p) {
		return zero, g.deny("create", models.ErrOwnershipMismatch)
	}

	created, err := g.raw.Create(ctx, rec)
	if err != nil {
		return zero, err
	}

	if err := g.writeAudit(ctx, p, models.AuditCreate, created.GetID(), created); err != nil {
		return zero, err
	}

	return created, nil
}

// Update verifies ownership of the pre-image (fetched unguarded so the read
// policy does not recurse), delegates, and audits the post-state under the
// pre-image's record id.
func (g *Guarded[T, P]) Update(ctx context.Context, where Filter, patch P) (T, error) {
	return g.mutate(ctx, where, "update", models.ErrUnauthorizedUpdate, models.AuditUpdate,
		func(ctx context.Context) (T, error) { return g.raw.Update(ctx, where, patch) })
}

// Delete verifies ownership of the pre-image, delegates, and audits the
// delete result under the pre-image's record id.
func (g *Guarded[T, P]) Delete(ctx context.Context, where Filter) (T, error) {
	return g.mutate(ctx, where, "delete", models.ErrUnauthorizedDelete, models.AuditDelete,
		func(ctx context.Context) (T, error) { return g.raw.Delete(ctx, where) })
}

// mutate is the shared update/delete path: resolve principal, unguarded
// pre-image lookup, ownership check, delegate, audit.
func (g *Guarded[T, P]) mutate(
	ctx context.Context,
	where Filter,
	kind string,
	sentinel error,
	action string,
	op func(ctx context.Context) (T, error),
) (T, error) {
	var zero T

	p, err := g.resolve(ctx)
	if err != nil {
		return zero, fmt.Errorf("resolving principal: %w", err)
	}

	recordID := ""

	pre, err := g.raw.FindUnique(ctx, where)
	switch {
	case errors.Is(err, models.ErrNotFound):
		// No pre-image: nothing to check; the delegated call reports
		// not-found on its own terms.
	case err != nil:
		return zero, fmt.Errorf("loading pre-image: %w", err)
	default:
		if ownedByOther(pre, p) {
			return zero, g.deny(kind, sentinel)
		}
		recordID = pre.GetID()
	}

	result, err := op(ctx)
	if err != nil {
		return zero, err
	}

	if err := g.writeAudit(ctx, p, action, recordID, result); err != nil {
		return zero, err
	}

	return result, nil
}

// FindUnique delegates first, then rejects results owned by another
// principal. The underlying read is incurred either way.
func (g *Guarded[T, P]) FindUnique(ctx context.Context, where Filter) (T, error) {
	return g.find(ctx, func(ctx context.Context) (T, error) { return g.raw.FindUnique(ctx, where) })
}

// FindFirst behaves like FindUnique over a non-unique filter.
func (g *Guarded[T, P]) FindFirst(ctx context.Context, where Filter) (T, error) {
	return g.find(ctx, func(ctx context.Context) (T, error) { return g.raw.FindFirst(ctx, where) })
}

func (g *Guarded[T, P]) find(ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	p, err := g.resolve(ctx)
	if err != nil {
		return zero, fmt.Errorf("resolving principal: %w", err)
	}

	rec, err := op(ctx)
	if err != nil {
		return zero, err
	}

	if ownedByOther(rec, p) {
		return zero, g.deny("read", models.ErrUnauthorizedRead)
	}

	return rec, nil
}

// FindMany requires the owner filter key (when the entity is owner-filtered)
// before any query is issued. Returned records are not re-checked — the
// filter is the policy.
func (g *Guarded[T, P]) FindMany(ctx context.Context, where Filter) ([]T, error) {
	if g.ownerFiltered && !where.Has(OwnerKey) {
		return nil, g.deny("find_many", models.ErrMissingOwnerFilter)
	}

	return g.raw.FindMany(ctx, where)
}

// writeAudit persists one audit entry for a completed mutation. Audited
// failures surface to the caller: the mutation stands, but an unattributable
// mutation is reported rather than silently accepted.
func (g *Guarded[T, P]) writeAudit(ctx context.Context, p *Principal, action, recordID string, result T) error {
	if g.audit == nil {
		return nil
	}

	entry := models.AuditEntry{
		TableName:     g.entity,
		RecordID:      recordID,
		Action:        action,
		ChangedFields: snapshot(result),
		UserID:        p.idPtr(),
	}

	if err := g.audit.Record(ctx, entry); err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{"entity": g.entity, "action": action}).Error("audit write failed")

		return fmt.Errorf("%s: %w: %w", g.entity, models.ErrAuditFailed, err)
	}

	metrics.AuditEntriesTotal.WithLabelValues(g.entity, action).Inc()

	return nil
}

// snapshot flattens a record into the opaque changed-fields shape stored in
// the audit trail. It is the full post-state, not a diff.
func snapshot(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}

	return m
}
