// Package audit records admin actions after successful catalog mutations.
package audit

import (
	"context"

	"yantratune/internal/logging"
	"yantratune/internal/models"
)

// Logger persists admin log entries.
type Logger interface {
	LogAdminAction(ctx context.Context, entry models.AdminLogCreate) (models.AdminLog, error)
}

// Record writes one admin log entry. A failed write is logged at warn level
// and otherwise ignored; the mutation it describes has already happened.
func Record(ctx context.Context, l Logger, action models.AdminAction, entity models.EntityType, id, name string) {
	_, err := l.LogAdminAction(ctx, models.AdminLogCreate{
		AdminName:  models.DefaultAdminName,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		EntityName: name,
	})
	if err != nil {
		logging.WithContext(ctx).Warn().
			Err(err).
			Str("action", string(action)).
			Str("entity_type", string(entity)).
			Str("entity_id", id).
			Msg("admin log write failed")
	}
}
