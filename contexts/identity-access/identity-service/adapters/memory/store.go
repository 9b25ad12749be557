package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
)

type Store struct {
	mu      sync.Mutex
	users   map[int64]entities.User
	byEmail map[string]int64
	nextID  int64
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]entities.User),
		byEmail: make(map[string]int64),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return entities.User{}, domainerrors.ErrEmailTaken
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetUserByID(ctx context.Context, userID int64) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}
