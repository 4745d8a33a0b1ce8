package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

const auditColumns = "id, table_name, record_id, action, changed_fields, user_id, created_at"

// AuditStore provides data access for the audit_log table. FindMany shadows
// the generic list with the trail's paginated query, so the guarded audit
// handle is the read path; RecordEntry and PurgeOldEntries are the trail's
// own maintenance operations.
type AuditStore struct {
	table[*models.AuditEntry, models.AuditPatch]
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(base Base) *AuditStore {
	s := &AuditStore{}
	s.table = table[*models.AuditEntry, models.AuditPatch]{
		Base:    base,
		name:    "audit_log",
		columns: auditColumns,
		scanRow: scanAuditEntry,
		insert:  insertAuditEntry,
		patch:   func(models.AuditPatch) ([]string, []any) { return nil, nil },
		sortable: "created_at DESC, id DESC",
		filters: map[string]bool{
			"id": true, "table_name": true, "record_id": true,
			"action": true, "user_id": true,
		},
		unique: []string{"id"},
	}

	return s
}

func scanAuditEntry(row pgx.Row) (*models.AuditEntry, error) {
	var (
		e          models.AuditEntry
		fieldsJSON []byte
	)

	if err := row.Scan(&e.ID, &e.TableName, &e.RecordID, &e.Action, &fieldsJSON, &e.UserID, &e.CreatedAt); err != nil {
		return nil, err
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &e.ChangedFields); err != nil {
			return nil, fmt.Errorf("unmarshaling audit changed fields: %w", err)
		}
	}

	return &e, nil
}

func insertAuditEntry(e *models.AuditEntry) ([]string, []any) {
	var fieldsJSON []byte
	if e.ChangedFields != nil {
		fieldsJSON, _ = json.Marshal(e.ChangedFields) //nolint:errcheck // snapshot came from json.Marshal already.
	}

	return []string{"table_name", "record_id", "action", "changed_fields", "user_id"},
		[]any{e.TableName, e.RecordID, e.Action, fieldsJSON, e.UserID}
}

// RecordEntry appends one entry to the trail.
func (s *AuditStore) RecordEntry(ctx context.Context, e models.AuditEntry) error {
	if _, err := s.Create(ctx, &e); err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}

	return nil
}

// buildAuditFilter builds WHERE clause and args from AuditQueryOpts.
func buildAuditFilter(opts models.AuditQueryOpts) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	if opts.TableName != "" {
		conditions = append(conditions, "table_name = $"+strconv.Itoa(argIdx))
		args = append(args, opts.TableName)
		argIdx++
	}
	if opts.RecordID != "" {
		conditions = append(conditions, "record_id = $"+strconv.Itoa(argIdx))
		args = append(args, opts.RecordID)
		argIdx++
	}
	if opts.Action != "" {
		conditions = append(conditions, "action = $"+strconv.Itoa(argIdx))
		args = append(args, opts.Action)
		argIdx++
	}
	if opts.UserID != "" {
		conditions = append(conditions, "user_id = $"+strconv.Itoa(argIdx))
		args = append(args, opts.UserID)
		argIdx++
	}
	if opts.Since != nil {
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(argIdx))
		args = append(args, *opts.Since)
		argIdx++
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// Pagination keys FindMany accepts alongside the column predicates. The
// guard passes them through untouched; only the owner key is policy.
const (
	auditFilterSince  = "since"
	auditFilterLimit  = "limit"
	auditFilterOffset = "offset"
)

// auditOptsFromFilter maps the guard filter shape onto audit query options.
func auditOptsFromFilter(where guard.Filter) (models.AuditQueryOpts, error) {
	var opts models.AuditQueryOpts

	for k, v := range where {
		switch k {
		case "user_id":
			opts.UserID, _ = v.(string)
		case "table_name":
			opts.TableName, _ = v.(string)
		case "record_id":
			opts.RecordID, _ = v.(string)
		case "action":
			opts.Action, _ = v.(string)
		case auditFilterSince:
			t, ok := v.(time.Time)
			if !ok {
				return opts, fmt.Errorf("filter %q must carry a time.Time", k)
			}
			opts.Since = &t
		case auditFilterLimit:
			opts.Limit, _ = v.(int)
		case auditFilterOffset:
			opts.Offset, _ = v.(int)
		default:
			return opts, models.ErrUnknownFilter(k)
		}
	}

	return opts, nil
}

// FindMany shadows the generic list with the trail's paginated query: newest
// first, one row past the limit so callers can detect a further page.
func (s *AuditStore) FindMany(ctx context.Context, where guard.Filter) ([]*models.AuditEntry, error) {
	opts, err := auditOptsFromFilter(where)
	if err != nil {
		return nil, err
	}

	if opts.Limit <= 0 {
		opts.Limit = models.DefaultAuditQueryLimit
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clause, args, argIdx := buildAuditFilter(opts)

	query := fmt.Sprintf(
		"SELECT %s FROM audit_log %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		auditColumns, clause, argIdx, argIdx+1,
	)
	args = append(args, opts.Limit+1, opts.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return entries, nil
}

// purgeBatchSize limits the number of rows deleted per statement to avoid
// holding long locks on audit_log.
const purgeBatchSize = 5000

// PurgeOldEntries deletes audit entries older than retentionDays in batches.
// Returns the number of deleted entries.
func (s *AuditStore) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	var totalDeleted int

	for {
		batchCtx, cancel := withTimeout(ctx)

		tag, err := s.Pool.Exec(batchCtx,
			`DELETE FROM audit_log WHERE ctid IN (
				SELECT ctid FROM audit_log
				WHERE created_at < NOW() - make_interval(days => $1)
				LIMIT $2
			)`,
			retentionDays, purgeBatchSize,
		)
		cancel()

		if err != nil {
			return totalDeleted, fmt.Errorf("purging audit entries: %w", err)
		}

		deleted := int(tag.RowsAffected())
		totalDeleted += deleted
		if deleted < purgeBatchSize {
			break
		}
	}

	return totalDeleted, nil
}
