package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
	"clearfund/contexts/identity-access/identity-service/ports"
)

type AuthResult struct {
	User  entities.User
	Token string
}

type Service struct {
	Repo     ports.Repository
	Tokens   *TokenManager
	Profiles ports.ProfileSink
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Register creates an account and returns a signed token. Donors without an
// explicit source tag get one derived from their name, since the tag scopes
// their audit view in the funding ledgers.
func (s Service) Register(ctx context.Context, input ports.RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return AuthResult{}, domainerrors.ErrInvalidInput
	}
	if !input.Role.Valid() || input.Role == entities.RoleAdmin {
		return AuthResult{}, domainerrors.ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return AuthResult{}, domainerrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	sourceTag := strings.TrimSpace(input.SourceTag)
	if sourceTag == "" && input.Role == entities.RoleDonor {
		sourceTag = deriveSourceTag(name)
	}

	user, err := s.Repo.CreateUser(ctx, entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   strings.TrimSpace(input.Department),
		StudentID:    strings.TrimSpace(input.StudentID),
		SourceTag:    sourceTag,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.pushProfile(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := s.Tokens.Issue(user, s.now())
	if err != nil {
		return AuthResult{}, err
	}

	s.logger().Info("user registered",
		"event", "user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.ID,
		"role", string(user.Role),
	)
	return AuthResult{User: user, Token: token}, nil
}

func (s Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return AuthResult{}, domainerrors.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user, s.now())
	if err != nil {
		return AuthResult{}, err
	}

	s.logger().Info("user logged in",
		"event", "user_logged_in",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return AuthResult{User: user, Token: token}, nil
}

func (s Service) Profile(ctx context.Context, userID int64) (entities.User, error) {
	return s.Repo.GetUserByID(ctx, userID)
}

// Resolve verifies a bearer token and returns the identity the ledgers
// attach to every operation.
func (s Service) Resolve(ctx context.Context, token string) (entities.Identity, error) {
	return s.Tokens.Verify(token)
}

// SeedAdmin ensures a bootstrap admin account exists. Called once at
// startup; an existing account with the email wins.
func (s Service) SeedAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := s.Repo.CreateUser(ctx, entities.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return nil
		}
		return err
	}
	if err := s.pushProfile(ctx, user); err != nil {
		return err
	}

	s.logger().Info("admin account seeded",
		"event", "admin_seeded",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return nil
}

func (s Service) pushProfile(ctx context.Context, user entities.User) error {
	if s.Profiles == nil {
		return nil
	}
	return s.Profiles.UpsertProfile(ctx, user)
}

func deriveSourceTag(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
