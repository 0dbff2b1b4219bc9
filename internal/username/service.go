package username

import (
	"context"
	"time"

	"multiauth-service/internal/user"
)

// Service manages the display name attached to an identity record. It
// is a plain CRUD shadow over the user store; nothing here touches
// login identity or credentials.
type Service struct {
	users user.Store
}

func NewService(users user.Store) *Service {
	return &Service{users: users}
}

type Response struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func (s *Service) Get(ctx context.Context, userID string) (*Response, error) {
	u, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Response{UserID: u.ID, Username: u.Username}, nil
}

func (s *Service) Set(ctx context.Context, userID, name string) (*Response, error) {
	u, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Username = name
	u.UpdatedAt = time.Now().UTC()

	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	return &Response{UserID: saved.ID, Username: saved.Username}, nil
}

// Delete clears the display name. The identity record itself is never
// deleted here.
func (s *Service) Delete(ctx context.Context, userID string) error {
	u, err := s.lookup(ctx, userID)
	if err != nil {
		return err
	}

	u.Username = ""
	u.UpdatedAt = time.Now().UTC()

	_, err = s.users.Save(ctx, u)
	return err
}

func (s *Service) lookup(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.NotFound()
	}
	return u, nil
}
