package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clearfund/contexts/identity-access/identity-service/adapters/memory"
	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
	"clearfund/contexts/identity-access/identity-service/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{
		Repo:   store,
		Tokens: NewTokenManager("test-secret", time.Hour),
		Clock:  store,
	}
}

func donorInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Asha Foundation",
		Email:    email,
		Password: "long-enough-password",
		Role:     entities.RoleDonor,
	}
}

func TestRegisterAndResolveRoundTrip(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	result, err := service.Register(ctx, donorInput("asha@donors.test"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}

	identity, err := service.Resolve(ctx, result.Token)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if identity.UserID != result.User.ID {
		t.Fatalf("expected user id %d, got %d", result.User.ID, identity.UserID)
	}
	if identity.Role != entities.RoleDonor {
		t.Fatalf("expected donor role in token, got %q", identity.Role)
	}
	if identity.SourceTag != result.User.SourceTag {
		t.Fatalf("expected source tag %q in token, got %q", result.User.SourceTag, identity.SourceTag)
	}
}

func TestRegisterDerivesDonorSourceTag(t *testing.T) {
	service := newTestService()

	result, err := service.Register(context.Background(), donorInput("asha@donors.test"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if !strings.HasPrefix(result.User.SourceTag, "asha-foundation-") {
		t.Fatalf("expected derived source tag from name, got %q", result.User.SourceTag)
	}

	input := donorInput("second@donors.test")
	input.SourceTag = "explicit-tag"
	result, err = service.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.User.SourceTag != "explicit-tag" {
		t.Fatalf("explicit tag must win, got %q", result.User.SourceTag)
	}
}

func TestStudentsGetNoDerivedSourceTag(t *testing.T) {
	service := newTestService()

	result, err := service.Register(context.Background(), ports.RegisterInput{
		Name:      "Bilal",
		Email:     "bilal@students.test",
		Password:  "long-enough-password",
		Role:      entities.RoleStudent,
		StudentID: "S-100",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.User.SourceTag != "" {
		t.Fatalf("expected empty source tag for student, got %q", result.User.SourceTag)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	input := donorInput("asha@donors.test")
	input.Role = entities.RoleAdmin
	if _, err := service.Register(ctx, input); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for admin self-registration, got %v", err)
	}

	input = donorInput("not-an-email")
	if _, err := service.Register(ctx, input); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed email, got %v", err)
	}

	input = donorInput("asha@donors.test")
	input.Password = "short"
	if _, err := service.Register(ctx, input); !errors.Is(err, domainerrors.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, donorInput("asha@donors.test")); err != nil {
		t.Fatalf("first register returned error: %v", err)
	}
	if _, err := service.Register(ctx, donorInput("ASHA@donors.test")); !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for same email with different case, got %v", err)
	}
}

func TestLoginChecksCredentials(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, donorInput("asha@donors.test")); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := service.Login(ctx, "asha@donors.test", "wrong-password"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@donors.test", "long-enough-password"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	result, err := service.Login(ctx, "Asha@donors.test", "long-enough-password")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token on login")
	}
}

func TestResolveRejectsForgedToken(t *testing.T) {
	service := newTestService()
	other := Service{
		Repo:   memory.NewStore(),
		Tokens: NewTokenManager("different-secret", time.Hour),
	}

	result, err := other.Register(context.Background(), donorInput("asha@donors.test"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := service.Resolve(context.Background(), result.Token); !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for a token signed elsewhere, got %v", err)
	}
	if _, err := service.Resolve(context.Background(), "garbage"); !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	service := newTestService()

	token, err := service.Tokens.Issue(entities.User{
		ID:   7,
		Role: entities.RoleDonor,
	}, time.Now().UTC().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := service.Resolve(context.Background(), token); !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for an expired token, got %v", err)
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if err := service.SeedAdmin(ctx, "Admin", "admin@clearfund.test", "admin-password"); err != nil {
		t.Fatalf("first seed returned error: %v", err)
	}
	if err := service.SeedAdmin(ctx, "Admin", "admin@clearfund.test", "admin-password"); err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}

	result, err := service.Login(ctx, "admin@clearfund.test", "admin-password")
	if err != nil {
		t.Fatalf("admin login returned error: %v", err)
	}
	if result.User.Role != entities.RoleAdmin {
		t.Fatalf("expected admin role, got %q", result.User.Role)
	}

	if err := service.SeedAdmin(ctx, "Admin", "", ""); err != nil {
		t.Fatalf("empty seed config must be a no-op, got %v", err)
	}
}
