package memstore

import (
	"context"
	"strings"

	"catalog-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, ok := r.s.users[key]; ok {
		return model.ErrUsernameAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	r.s.users[key] = *user
	return nil
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[strings.ToLower(username)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}
