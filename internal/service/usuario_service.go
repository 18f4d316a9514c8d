package service

import (
	"context"
	"errors"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error)
	// ListarClientes is the front-desk lookup: only users with rol Cliente.
	ListarClientes(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	ActualizarPerfil(ctx context.Context, id uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ListarRoles(ctx context.Context) ([]string, error)
}

type usuarioService struct {
	repo   repository.UsuarioRepository
	hasher PasswordHasher
}

func NewUsuarioService(repo repository.UsuarioRepository, hasher PasswordHasher) UsuarioService {
	return &usuarioService{repo: repo, hasher: hasher}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if req.AccedeAlSistema && req.Password == "" {
		return nil, errEntrada("la contraseña es obligatoria para usuarios con acceso al sistema")
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errEntrada("ya existe un usuario con el email %s", req.Email)
	}

	rol, err := s.repo.FindRolByNombre(ctx, req.Rol)
	if err != nil {
		return nil, errEntrada("rol %q no encontrado", req.Rol)
	}

	user := &model.Usuario{
		Nombre:          req.Nombre,
		Email:           req.Email,
		Telefono:        req.Telefono,
		RolID:           rol.ID,
		AccedeAlSistema: req.AccedeAlSistema,
		Activo:          true,
	}
	if req.AccedeAlSistema {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Rol = rol
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error) {
	normalizePages(&filter.Page, &filter.PageSize)
	usuarios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.UsuarioListResponse{
		Usuarios:   make([]dto.UsuarioResponse, len(usuarios)),
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}
	for i := range usuarios {
		resp.Usuarios[i] = usuarioToResponse(&usuarios[i])
	}
	return resp, nil
}

func (s *usuarioService) ListarClientes(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error) {
	filter.Rol = "Cliente"
	return s.Listar(ctx, filter)
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
			return nil, errEntrada("ya existe un usuario con el email %s", req.Email)
		}
		user.Email = req.Email
	}
	if req.Telefono != nil {
		user.Telefono = req.Telefono
	}
	if req.Rol != "" {
		rol, err := s.repo.FindRolByNombre(ctx, req.Rol)
		if err != nil {
			return nil, errEntrada("rol %q no encontrado", req.Rol)
		}
		user.RolID = rol.ID
		user.Rol = rol
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) ActualizarPerfil(ctx context.Context, id uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error) {
	return s.Actualizar(ctx, id, dto.ActualizarUsuarioRequest{
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		Password: req.Password,
	})
}

func (s *usuarioService) CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.CambiarEstado(ctx, id, activo)
}

func (s *usuarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *usuarioService) ListarRoles(ctx context.Context) ([]string, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	nombres := make([]string, len(roles))
	for i, r := range roles {
		nombres[i] = r.Nombre
	}
	return nombres, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	rol := ""
	if u.Rol != nil {
		rol = u.Rol.Nombre
	}
	return dto.UsuarioResponse{
		ID:              u.ID.String(),
		Nombre:          u.Nombre,
		Email:           u.Email,
		Telefono:        u.Telefono,
		Avatar:          u.Avatar,
		Rol:             rol,
		AccedeAlSistema: u.AccedeAlSistema,
		Activo:          u.Activo,
	}
}

// normalizePages clamps paging params to sane defaults.
func normalizePages(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 || *pageSize > 100 {
		*pageSize = 10
	}
}

func buildPagination(page, pageSize int, total int64) dto.Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return dto.Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		Total:       total,
	}
}
