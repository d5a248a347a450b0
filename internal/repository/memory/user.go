package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	users []*model.User
}

// NewUserRepository returns an in-memory identity table seeded with the given users.
// The table lives for the lifetime of the process.
func NewUserRepository(seed ...*model.User) repository.UserRepository {
	users := make([]*model.User, 0, len(seed))
	for _, u := range seed {
		users = append(users, u.Clone())
	}
	return &userRepository{users: users}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

// Insert appends the user. Emails are not checked for uniqueness.
func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user.Clone())
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out, nil
}
