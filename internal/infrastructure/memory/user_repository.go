package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ base }

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{base{s: s}} }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.lock()()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if user.Username != "" && strings.EqualFold(u.Username, user.Username) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	defer r.lock()()
	if _, ok := r.s.data.users[user.ID]; !ok {
		return domain.NewNotFoundError("usuario", user.ID)
	}
	for id, u := range r.s.data.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	defer r.lock()()
	return paginate(r.sorted(func(entity.User) bool { return true }), limit, offset), nil
}

func (r *UserRepo) ListByRoles(_ context.Context, roles ...string) ([]*entity.User, error) {
	defer r.lock()()
	return r.sorted(func(u entity.User) bool {
		for _, role := range roles {
			if entity.RoleEquals(u.Role, role) {
				return true
			}
		}
		return false
	}), nil
}

// sorted más recientes primero.
func (r *UserRepo) sorted(keep func(entity.User) bool) []*entity.User {
	out := []*entity.User{}
	for _, u := range r.s.data.users {
		if keep(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
