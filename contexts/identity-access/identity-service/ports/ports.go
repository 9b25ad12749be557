package ports

import (
	"context"
	"time"

	"clearfund/contexts/identity-access/identity-service/domain/entities"
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       entities.Role
	Department string
	StudentID  string
	SourceTag  string
}

type Repository interface {
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetUserByID(ctx context.Context, userID int64) (entities.User, error)
}

// ProfileSink receives user projections so the funding ledgers can join
// donor and requester display fields. Backends sharing one database wire a
// no-op here.
type ProfileSink interface {
	UpsertProfile(ctx context.Context, user entities.User) error
}

type Clock interface {
	Now() time.Time
}
