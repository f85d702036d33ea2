package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// DefaultLimit is applied when a list call carries no limit.
	DefaultLimit = 100
	// MaxLimit caps any list call.
	MaxLimit = 1000
)

var (
	// ErrInvalidReference signals a foreign key that points at no row.
	ErrInvalidReference = errors.New("referenced entity does not exist")
)

// Store provides catalog persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListOptions is the offset window applied to list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// validID reports whether id can be compared against a UUID column. Lookups
// with malformed ids are answered as "not found" without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func now() time.Time {
	return time.Now().UTC()
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
