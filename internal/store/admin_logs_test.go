package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"yantratune/internal/models"
)

func TestLogAdminActionDefaultsAdminName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO admin_logs (admin_name, action, entity_type, entity_id, entity_name)`)).
		WithArgs("Admin", "add", "song", songID, "Blinding Lights").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).
			AddRow("aa11bb22-cc33-4d44-8e55-ff6677889900", fixedTime))

	entry, err := s.LogAdminAction(context.Background(), models.AdminLogCreate{
		Action:     models.AdminActionAdd,
		EntityType: models.EntitySong,
		EntityID:   songID,
		EntityName: "Blinding Lights",
	})
	if err != nil {
		t.Fatalf("LogAdminAction error: %v", err)
	}
	if entry.AdminName != models.DefaultAdminName {
		t.Fatalf("expected default admin name, got %q", entry.AdminName)
	}
	if entry.EntityName == nil || *entry.EntityName != "Blinding Lights" {
		t.Fatalf("unexpected entity name %v", entry.EntityName)
	}
	if !entry.Timestamp.Equal(fixedTime) {
		t.Fatalf("expected timestamp from database, got %v", entry.Timestamp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogAdminActionWithoutEntityName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO admin_logs`)).
		WithArgs("ops", "delete", "artist", artistID, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).
			AddRow("aa11bb22-cc33-4d44-8e55-ff6677889901", fixedTime))

	entry, err := s.LogAdminAction(context.Background(), models.AdminLogCreate{
		AdminName:  "ops",
		Action:     models.AdminActionDelete,
		EntityType: models.EntityArtist,
		EntityID:   artistID,
	})
	if err != nil {
		t.Fatalf("LogAdminAction error: %v", err)
	}
	if entry.EntityName != nil {
		t.Fatalf("expected nil entity name, got %q", *entry.EntityName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogAdminActionRequiresFields(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.LogAdminAction(context.Background(), models.AdminLogCreate{Action: models.AdminActionAdd})
	if !errors.Is(err, ErrInvalidAdminLog) {
		t.Fatalf("expected ErrInvalidAdminLog, got %v", err)
	}
}

func TestListAdminLogsNewestFirst(t *testing.T) {
	s, mock := newMockStore(t)

	cols := []string{"id", "admin_name", "action", "entity_type", "entity_id", "entity_name", "timestamp"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM admin_logs ORDER BY timestamp DESC LIMIT $1 OFFSET $2`)).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("l2", "Admin", "update", "album", albumID, "After Hours", fixedTime).
			AddRow("l1", "Admin", "add", "album", albumID, nil, fixedTime.Add(-60)))

	logs, err := s.ListAdminLogs(context.Background(), ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListAdminLogs error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].Action != models.AdminActionUpdate || logs[0].EntityType != models.EntityAlbum {
		t.Fatalf("unexpected first log: %#v", logs[0])
	}
	if logs[1].EntityName != nil {
		t.Fatalf("expected nil entity name on second log")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
