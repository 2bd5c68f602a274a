package repository

import (
	"context"
	"sync"
	"time"

	"github.com/quizforge/quizforge-go/internal/model"
	"github.com/quizforge/quizforge-go/internal/utils"
)

// MemoryUserStore keeps users in a process-local slice.  It stands in for a
// transactional datastore: the RWMutex makes it safe under Echo's concurrent
// handlers, but nothing survives a restart.  Ids come from a counter that
// starts at 1 and never goes backwards.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  []*model.User
	nextID uint64
	cost   int // bcrypt cost, fixed per process
}

// NewMemoryUserStore constructs an empty store hashing passwords with the
// given bcrypt cost.
func NewMemoryUserStore(cost int) *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, cost: cost}
}

// Create inserts a new user after checking both uniqueness constraints.
// The email check deliberately runs first so a request violating both
// reports the email conflict.  Comparison is exact: addresses and names
// that differ only in case are distinct.
func (s *MemoryUserStore) Create(ctx context.Context, email, username, password, role string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailExists
		}
	}
	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrUsernameExists
		}
	}

	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &model.User{
		ID:           s.nextID,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

// FindByEmail returns the user with the exact email, or nil when absent.
func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// FindByUsername returns the user with the exact username, or nil when absent.
func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// FindByID returns the user with the given id, or nil when absent.
func (s *MemoryUserStore) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// FindByIDOrFail is FindByID with a miss treated as an error.  Used where
// the id comes from an authenticated caller's own token and should exist.
func (s *MemoryUserStore) FindByIDOrFail(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// FindAll returns every user in insertion order.
func (s *MemoryUserStore) FindAll(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Touch updates the user's updated timestamp in place.
func (s *MemoryUserStore) Touch(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUserNotFound
}
