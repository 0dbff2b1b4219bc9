package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with the same uniqueness
// semantics as the Mongo implementation, including the carve-out that
// lets a Google-created record share an email with a password account.
// It backs tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.find(func(u *User) bool { return u.ID == id })
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.find(func(u *User) bool { return u.Email != "" && u.Email == email })
}

func (s *MemoryStore) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	return s.find(func(u *User) bool { return u.Mobile != "" && u.Mobile == mobile })
}

func (s *MemoryStore) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return s.find(func(u *User) bool { return u.GoogleID != "" && u.GoogleID == googleID })
}

func (s *MemoryStore) find(match func(*User) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := s.FindByEmail(ctx, email)
	return u != nil, err
}

func (s *MemoryStore) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	u, err := s.FindByMobile(ctx, mobile)
	return u != nil, err
}

func (s *MemoryStore) Save(ctx context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	for _, other := range s.users {
		if other.ID == u.ID {
			continue
		}
		if u.Email != "" && u.HasPassword() && other.HasPassword() && other.Email == u.Email {
			return nil, userErrors.New(ErrEmailExists)
		}
		if u.Mobile != "" && other.Mobile == u.Mobile {
			return nil, userErrors.New(ErrMobileExists)
		}
		if u.GoogleID != "" && other.GoogleID == u.GoogleID {
			return nil, userErrors.New(ErrGoogleIDExists)
		}
	}

	clone := *u
	s.users[u.ID] = &clone
	return u, nil
}

// Count reports how many records the store holds.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
