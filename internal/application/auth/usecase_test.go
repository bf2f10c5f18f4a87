package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
	"github.com/jhoicas/Produccion-api/pkg/jwt"
)

const secret = "secret-de-prueba"

func newAuth() (*AuthUseCase, *memrepo.Users) {
	users := memrepo.NewUsers()
	companies := memrepo.NewCompanies(
		&entity.Company{ID: "c1", Name: "Taller", TaxID: "900123456-8"},
		&entity.Company{ID: "c2", Name: "Otro taller", TaxID: "800197268-4"},
	)
	return NewAuthUseCase(users, companies, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}), users
}

// bootstrapAdmin registra el primer usuario de c1 y devuelve su actor.
func bootstrapAdmin(t *testing.T, uc *AuthUseCase) *Actor {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "jefe@taller.co", Password: "clave-segura", CompanyID: "c1"}, nil)
	require.NoError(t, err)
	return &Actor{UserID: u.ID, CompanyID: u.CompanyID, Role: u.Role}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()
	admin := bootstrapAdmin(t, uc)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Taller.co", Password: "clave-segura", CompanyID: "c1"}, admin)
	require.NoError(t, err)
	assert.Equal(t, "ana@taller.co", u.Email)
	assert.Equal(t, entity.RoleProduccion, u.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@taller.co", Password: "clave-segura"})
	require.NoError(t, err)
	sub, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub.UserID)
	assert.Equal(t, "c1", sub.CompanyID)
	assert.Equal(t, entity.RoleProduccion, sub.Role)
}

func TestRegister_PrimerUsuarioEsAdmin(t *testing.T) {
	uc, _ := newAuth()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: "c1", Role: entity.RoleCompras}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestRegister_RequiereAdminDeLaEmpresa(t *testing.T) {
	ctx := context.Background()
	uc, users := newAuth()
	admin := bootstrapAdmin(t, uc)

	in := dto.RegisterRequest{Email: "intruso@x.co", Password: "12345678", CompanyID: "c1", Role: entity.RoleAdmin}
	_, err := uc.RegisterUser(ctx, in, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.RegisterUser(ctx, in, &Actor{UserID: "u9", CompanyID: "c2", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(ctx, in, &Actor{UserID: "u8", CompanyID: "c1", Role: entity.RoleCompras})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	n, _ := users.CountByCompany(ctx, "c1")
	assert.Equal(t, 1, n)

	u, err := uc.RegisterUser(ctx, in, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestRegister_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()
	admin := bootstrapAdmin(t, uc)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: "c1", Role: entity.RoleCompras}, admin)
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: "c1"}, admin)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@b.co", Password: "12345678", CompanyID: "nope"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "y@b.co", Password: "12345678", CompanyID: "c1", Role: "bodeguero"}, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errors(t *testing.T) {
	ctx := context.Background()
	uc, users := newAuth()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: "c1"}, nil)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users.ByID[u.ID].Status = "suspended"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
