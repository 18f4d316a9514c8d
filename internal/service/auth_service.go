package service

import (
	"context"
	"time"

	"github.com/edulopezdev/forestBarber/internal/config"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// VerificarPassword re-checks a staff member's own credential; used to
	// authorize sensitive operations like closing the register.
	VerificarPassword(ctx context.Context, usuarioID string, password string) error
}

// PasswordHasher abstracts bcrypt so unit tests can swap in a fast fake.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(b), err
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type authService struct {
	repo   repository.UsuarioRepository
	hasher PasswordHasher
	cfg    *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, hasher PasswordHasher, cfg *config.Config) AuthService {
	return &authService{repo: repo, hasher: hasher, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if !user.Activo || !user.AccedeAlSistema || user.PasswordHash == nil {
		return nil, ErrCredencialesInvalidas
	}
	if err := s.hasher.Compare(*user.PasswordHash, req.Password); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        usuarioToResponse(user),
	}, nil
}

func (s *authService) VerificarPassword(ctx context.Context, usuarioID string, password string) error {
	uid, err := uuid.Parse(usuarioID)
	if err != nil {
		return ErrCredencialesInvalidas
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || user.PasswordHash == nil {
		return ErrCredencialesInvalidas
	}
	if err := s.hasher.Compare(*user.PasswordHash, password); err != nil {
		return ErrPasswordInvalido
	}
	return nil
}

func (s *authService) generateToken(user *model.Usuario) (string, error) {
	rol := ""
	if user.Rol != nil {
		rol = user.Rol.Nombre
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"rol":     rol,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
