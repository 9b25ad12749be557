package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
	"clearfund/contexts/identity-access/identity-service/ports"
)

// Repository owns the users table; the funding context joins against it
// read-only.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&userModel{})
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		return entities.User{}, r.logError("identity_repo_create_user_failed", err, "email", user.Email)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.logError("identity_repo_get_user_by_email_failed", err, "email", email)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.logError("identity_repo_get_user_by_id_failed", err, "user_id", userID)
	}
	return row.toEntity(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/identity-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("identity repository operation failed", fields...)
	return domainerrors.ErrStorageFailure
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	Department   string    `gorm:"column:department"`
	StudentID    string    `gorm:"column:student_id"`
	SourceTag    string    `gorm:"column:source_tag;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	row := userModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Department:   user.Department,
		StudentID:    user.StudentID,
		SourceTag:    user.SourceTag,
		CreatedAt:    user.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.Role(m.Role),
		Department:   m.Department,
		StudentID:    m.StudentID,
		SourceTag:    m.SourceTag,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
