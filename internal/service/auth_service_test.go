package service_test

import (
	"context"
	"testing"

	"github.com/edulopezdev/forestBarber/internal/config"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*stubUsuarioRepo, service.AuthService, *model.Usuario) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 3}
	svc := service.NewAuthService(repo, plainHasher{}, cfg)

	barbero := repo.add(&model.Usuario{
		Nombre:          "Carlos Gómez",
		Email:           "carlos@forestbarber.com",
		Activo:          true,
		AccedeAlSistema: true,
		PasswordHash:    strPtr("secreto"),
		Rol:             &model.Rol{Nombre: "Barbero"},
	})
	return repo, svc, barbero
}

func TestLogin_OK(t *testing.T) {
	_, svc, barbero := newAuthFixture()

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "carlos@forestbarber.com",
		Password: "secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3*3600, resp.ExpiresIn)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, barbero.ID.String(), claims["user_id"])
	assert.Equal(t, "carlos@forestbarber.com", claims["email"])
	assert.Equal(t, "Barbero", claims["rol"])
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	_, svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "carlos@forestbarber.com",
		Password: "otra",
	})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestLogin_UsuarioSinAcceso(t *testing.T) {
	repo, svc, _ := newAuthFixture()

	// Walk-in clients exist as usuarios but never log in.
	repo.add(&model.Usuario{
		Nombre: "Juan Pérez",
		Email:  "juan@example.com",
		Activo: true,
		Rol:    &model.Rol{Nombre: "Cliente"},
	})

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "cualquiera",
	})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	_, svc, barbero := newAuthFixture()
	barbero.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "carlos@forestbarber.com",
		Password: "secreto",
	})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestVerificarPassword(t *testing.T) {
	_, svc, barbero := newAuthFixture()

	assert.NoError(t, svc.VerificarPassword(context.Background(), barbero.ID.String(), "secreto"))
	assert.ErrorIs(t, svc.VerificarPassword(context.Background(), barbero.ID.String(), "otra"), service.ErrPasswordInvalido)
	assert.ErrorIs(t, svc.VerificarPassword(context.Background(), "no-uuid", "secreto"), service.ErrCredencialesInvalidas)
}
