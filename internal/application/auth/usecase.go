package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Actor usuario autenticado que realiza la operación (del JWT).
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
}

// RegisterUser crea un usuario con password bcrypt. ErrEmailAlreadyExists si el email ya existe en esa empresa.
// El primer usuario de una empresa se registra sin token y queda como admin. Desde ahí solo un
// admin de la misma empresa registra usuarios: sin actor ErrUnauthorized, con otro actor ErrForbidden.
// Sin rol explícito el usuario queda como operario de producción.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest, actor *Actor) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleProduccion
	case entity.RoleAdmin, entity.RoleProduccion, entity.RoleCompras:
	default:
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	members, err := uc.userRepo.CountByCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	switch {
	case members == 0:
		role = entity.RoleAdmin
	case actor == nil:
		return nil, domain.ErrUnauthorized
	case actor.CompanyID != in.CompanyID || actor.Role != entity.RoleAdmin:
		return nil, domain.ErrForbidden
	}
	existing, err := uc.userRepo.GetByEmailAndCompany(ctx, email, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	sub := jwt.Subject{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role}
	token, err := jwt.Generate(uc.jwtCfg.Secret, sub, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
