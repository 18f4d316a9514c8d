package repository

import (
	"context"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository is the data access contract for users and roles.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, int64, error)
	Update(ctx context.Context, u *model.Usuario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsConRol checks existence constrained to a role name (e.g. a
	// barbero_id must point at an actual Barbero).
	ExistsConRol(ctx context.Context, id uuid.UUID, rol string) (bool, error)

	FindRolByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	ListRoles(ctx context.Context) ([]model.Rol, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol").First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol").Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, int64, error) {
	var usuarios []model.Usuario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Usuario{}).Joins("Rol")

	if filter.SoloActivos {
		q = q.Where("usuarios.activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("usuarios.nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Email != "" {
		q = q.Where("usuarios.email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.Rol != "" {
		q = q.Where(`"Rol".nombre = ?`, filter.Rol)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orden := "usuarios.nombre"
	switch filter.OrdenarPor {
	case "email":
		orden = "usuarios.email"
	case "fecha":
		orden = "usuarios.created_at"
	}
	if filter.OrdenDescendente {
		orden += " DESC"
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := q.Order(orden).Offset(offset).Limit(filter.PageSize).Find(&usuarios).Error
	return usuarios, total, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *usuarioRepo) CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *usuarioRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ? AND activo = true", id).Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) ExistsConRol(ctx context.Context, id uuid.UUID, rol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Joins("JOIN roles ON roles.id = usuarios.rol_id").
		Where("usuarios.id = ? AND usuarios.activo = true AND roles.nombre = ?", id, rol).
		Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) FindRolByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&rol).Error
	return &rol, err
}

func (r *usuarioRepo) ListRoles(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&roles).Error
	return roles, err
}
