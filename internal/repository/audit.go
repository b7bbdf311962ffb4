package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/google/uuid"
)

const (
	insertAuditEntry = `INSERT INTO admin_audit_log (id, created_at, admin_id, admin_email, action, target_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	selectRecentAudit = `SELECT id, created_at, admin_id, admin_email, action, target_id, COALESCE(detail, '')
		FROM admin_audit_log ORDER BY created_at DESC LIMIT $1`
)

// AuditLog stores admin actions in PostgreSQL.
type AuditLog struct {
	db *sql.DB
}

func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db}
}

// Record inserts e, assigning its id and timestamp when unset.
func (l *AuditLog) Record(ctx context.Context, e *models.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := l.db.ExecContext(ctx, insertAuditEntry,
		e.ID, e.CreatedAt, e.AdminID, e.AdminEmail, string(e.Action), e.TargetID, e.Detail)
	return err
}

// Recent returns up to limit entries, newest first.
func (l *AuditLog) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := l.db.QueryContext(ctx, selectRecentAudit, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.AdminID, &e.AdminEmail, &action, &e.TargetID, &e.Detail); err != nil {
			return nil, err
		}
		e.Action = models.AuditAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
