package auth

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/jhoicas/mrp-api/pkg/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	Issuer          string
	ResetExpMinutes int
}

// Mailer envía el correo de recuperación de contraseña.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

// AuthUseCase casos de uso de autenticación: registro, login y recuperación de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
	resetURL string
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth. resetURL es la página del frontend que recibe ?token=.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig, resetURL string, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, resetURL: resetURL, log: log}
}

// RegisterUser registro público. Rol vacío = Operator.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if strings.TrimSpace(role) == "" {
		role = entity.RoleOperator
	}
	return uc.create(ctx, in.Username, in.Email, in.Password, role)
}

// CreateUser alta por un administrador con rol explícito.
func (uc *AuthUseCase) CreateUser(ctx context.Context, identity entity.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !identity.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Role) == "" {
		return nil, domain.NewValidationError("role", "el rol es obligatorio")
	}
	return uc.create(ctx, in.Username, in.Email, in.Password, in.Role)
}

func (uc *AuthUseCase) create(ctx context.Context, username, email, password, role string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if len(username) < 3 {
		return nil, domain.NewValidationError("username", "el usuario debe tener al menos 3 caracteres")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	canonical := entity.NormalizeRole(role)
	if canonical == "" {
		return nil, domain.NewValidationError("role", "rol desconocido: "+role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("username", "el usuario ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         canonical,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ForgotPassword envía un enlace de recuperación si el email existe. Un email desconocido
// no es error para no revelar qué cuentas existen.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := ValidateEmail(email); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", email).Msg("recuperación solicitada para email desconocido")
		return nil
	}
	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ResetExpMinutes)
	if err != nil {
		return err
	}
	link := uc.resetURL + "?token=" + url.QueryEscape(token)
	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("correo de recuperación enviado")
	return nil
}

// ResetPassword fija una nueva contraseña a partir del token de recuperación.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if strings.TrimSpace(in.Token) == "" {
		return domain.NewValidationError("token", "el token es obligatorio")
	}
	if len(in.Password) < MinPasswordLength {
		return domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	userID, err := jwt.ParseReset(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ValidateEmail comprueba que el email sea una dirección simple válida.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewValidationError("email", "email inválido")
	}
	return nil
}

// ToUserResponse mapea entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// IsCredentialError indica errores de login que el HTTP expone como 401 genérico.
func IsCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized)
}
