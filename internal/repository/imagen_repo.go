package repository

import (
	"context"

	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImagenRepository interface {
	Save(ctx context.Context, img *model.Imagen) error
	FindActiva(ctx context.Context, tipo string, relacionadoID uuid.UUID) (*model.Imagen, error)
	Desactivar(ctx context.Context, tipo string, relacionadoID uuid.UUID) error
}

type imagenRepo struct{ db *gorm.DB }

func NewImagenRepository(db *gorm.DB) ImagenRepository { return &imagenRepo{db: db} }

func (r *imagenRepo) Save(ctx context.Context, img *model.Imagen) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *imagenRepo) FindActiva(ctx context.Context, tipo string, relacionadoID uuid.UUID) (*model.Imagen, error) {
	var img model.Imagen
	err := r.db.WithContext(ctx).
		Where("tipo_imagen = ? AND relacionado_id = ? AND activo = true", tipo, relacionadoID).
		Order("created_at DESC").
		First(&img).Error
	return &img, err
}

func (r *imagenRepo) Desactivar(ctx context.Context, tipo string, relacionadoID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Imagen{}).
		Where("tipo_imagen = ? AND relacionado_id = ?", tipo, relacionadoID).
		Update("activo", false).Error
}
