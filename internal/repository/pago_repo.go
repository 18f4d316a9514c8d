package repository

import (
	"context"

	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	List(ctx context.Context, page, pageSize int) ([]model.Pago, int64, error)
	ListByAtencion(ctx context.Context, atencionID uuid.UUID) ([]model.Pago, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pagoRepo) List(ctx context.Context, page, pageSize int) ([]model.Pago, int64, error) {
	var pagos []model.Pago
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pago{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Order("fecha DESC").Offset(offset).Limit(pageSize).Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepo) ListByAtencion(ctx context.Context, atencionID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("atencion_id = ?", atencionID).
		Order("fecha ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pago{}, id).Error
}
