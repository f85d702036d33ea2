package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yantratune/internal/models"
)

// ErrInvalidAdminLog indicates an audit entry missing required fields.
var ErrInvalidAdminLog = errors.New("invalid admin log")

// LogAdminAction appends one audit row.
func (s *Store) LogAdminAction(ctx context.Context, entry models.AdminLogCreate) (models.AdminLog, error) {
	if entry.Action == "" || entry.EntityType == "" || entry.EntityID == "" {
		return models.AdminLog{}, fmt.Errorf("%w: action, entity_type and entity_id are required", ErrInvalidAdminLog)
	}
	if entry.AdminName == "" {
		entry.AdminName = models.DefaultAdminName
	}

	log := models.AdminLog{
		AdminName:  entry.AdminName,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
	}
	if entry.EntityName != "" {
		name := entry.EntityName
		log.EntityName = &name
	}

	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_logs (admin_name, action, entity_type, entity_id, entity_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp
	`, entry.AdminName, string(entry.Action), string(entry.EntityType), entry.EntityID, nullIfEmpty(entry.EntityName)).
		Scan(&log.ID, &log.Timestamp); err != nil {
		return models.AdminLog{}, fmt.Errorf("insert admin log: %w", err)
	}
	return log, nil
}

// ListAdminLogs returns a page of audit rows, most recent first.
func (s *Store) ListAdminLogs(ctx context.Context, opts ListOptions) ([]models.AdminLog, error) {
	opts = opts.normalized()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, admin_name, action, entity_type, entity_id, entity_name, timestamp
		FROM admin_logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("select admin logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.AdminLog, 0)
	for rows.Next() {
		var (
			l          models.AdminLog
			action     string
			entityType string
			entityName sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.AdminName, &action, &entityType, &l.EntityID, &entityName, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan admin log: %w", err)
		}
		l.Action = models.AdminAction(action)
		l.EntityType = models.EntityType(entityType)
		l.EntityName = stringPtr(entityName)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin logs: %w", err)
	}
	return logs, nil
}
