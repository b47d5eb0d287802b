package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ruru-backoffice/internal/audit"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS admin_audit_log (
	id         UUID PRIMARY KEY,
	actor_id   BIGINT NOT NULL DEFAULT 0,
	actor      TEXT NOT NULL DEFAULT '',
	action     TEXT NOT NULL,
	resource   TEXT NOT NULL,
	target_id  TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	at         TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS admin_audit_log_at_idx ON admin_audit_log (at DESC);
`

// AuditRepo stores admin audit events.
type AuditRepo struct{ db *pgxpool.Pool }

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *pgxpool.Pool) *AuditRepo { return &AuditRepo{db: db} }

// Migrate creates the audit table if it does not exist.
func (r *AuditRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, auditSchema); err != nil {
		return fmt.Errorf("migrate admin_audit_log: %w", err)
	}
	return nil
}

// Insert stores e. A second insert of the same id is a no-op so redelivered
// Kafka messages do not duplicate rows.
func (r *AuditRepo) Insert(ctx context.Context, e audit.Event) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO admin_audit_log (id, actor_id, actor, action, resource, target_id, detail, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.ActorID, e.Actor, string(e.Action), e.Resource, e.TargetID, e.Detail, e.At,
	)
	if err != nil {
		return fmt.Errorf("insert audit event %s: %w", e.ID, err)
	}
	return nil
}

// ListRecent returns the latest events, newest first.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id::text, actor_id, actor, action, resource, target_id, detail, at
		FROM admin_audit_log
		ORDER BY at DESC, created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	out := make([]audit.Event, 0, limit)
	for rows.Next() {
		var (
			e      audit.Event
			action string
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Actor, &action, &e.Resource, &e.TargetID, &e.Detail, &e.At); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = audit.Action(action)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
