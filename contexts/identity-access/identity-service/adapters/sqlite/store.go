// Package sqlite provides the SQLite backend for the identity ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
	"clearfund/contexts/identity-access/identity-service/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    department TEXT NOT NULL DEFAULT '',
    student_id TEXT NOT NULL DEFAULT '',
    source_tag TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_source_tag ON users(source_tag);
`

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, department, student_id, source_tag, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.Department, user.StudentID, user.SourceTag, user.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		return entities.User{}, s.logError("identity_sqlite_create_user_failed", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.User{}, s.logError("identity_sqlite_create_user_id_failed", err)
	}
	user.ID = id
	return user, nil
}

const userSelect = `
	SELECT id, name, email, password_hash, role, department, student_id, source_tag, created_at
	FROM users`

func (s *Store) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE email = ?", email))
}

func (s *Store) GetUserByID(ctx context.Context, userID int64) (entities.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE id = ?", userID))
}

func (s *Store) scanUser(row *sql.Row) (entities.User, error) {
	var (
		user      entities.User
		createdAt int64
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Department, &user.StudentID, &user.SourceTag, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, s.logError("identity_sqlite_scan_user_failed", err)
	}
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return user, nil
}

func (s *Store) logError(event string, err error) error {
	s.logger.Error("identity sqlite operation failed",
		"event", event,
		"module", "identity-access/identity-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	return domainerrors.ErrStorageFailure
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var (
	_ ports.Repository = (*Store)(nil)
	_ ports.Clock      = (*Store)(nil)
)
