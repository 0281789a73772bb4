package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetProfile devuelve el usuario autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, identity entity.Identity) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateProfile cambia usuario, email o contraseña del propio perfil.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, identity entity.Identity, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < 3 {
			return nil, domain.NewValidationError("username", "el usuario debe tener al menos 3 caracteres")
		}
		other, err := uc.repo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.NewValidationError("username", "el usuario ya existe")
		}
		user.Username = username
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := auth.ValidateEmail(email); err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = email
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, domain.NewValidationError("current_password", "la contraseña actual no coincide")
		}
		if len(in.NewPassword) < auth.MinPasswordLength {
			return nil, domain.NewValidationError("new_password", "la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios paginados (solo administradores).
func (uc *UserUseCase) List(ctx context.Context, identity entity.Identity, page dto.PageRequest) ([]dto.UserResponse, error) {
	if !identity.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// ListOperators usuarios que pueden ser responsables de órdenes (operadores y jefes de manufactura).
func (uc *UserUseCase) ListOperators(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByRoles(ctx, entity.RoleOperator, entity.RoleManufacturingManager)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

func toUserResponses(list []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out
}
