package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/auth"
)

// UserRepository implements auth.UserRepository in process memory.
type UserRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]auth.User
	email map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[uuid.UUID]auth.User), email: make(map[string]uuid.UUID)}
}

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.email[key]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.byID[user.ID] = user
	r.email[key] = user.ID
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.email[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}
