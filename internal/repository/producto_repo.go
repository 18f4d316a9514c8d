package repository

import (
	"context"
	"errors"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockInsuficiente reports a guarded decrement that would drive stock
// below zero. The UPDATE itself carries the guard, so the check and the
// decrement are a single atomic statement.
var ErrStockInsuficiente = errors.New("stock insuficiente")

type ProductoRepository interface {
	Create(ctx context.Context, p *model.ProductoServicio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoServicio, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.ProductoServicio, int64, error)
	Update(ctx context.Context, p *model.ProductoServicio) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Stock mutations run inside the caller's transaction. A nil tx falls
	// back to the base connection (unit tests fake the interface instead).
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoServicio, error)
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	DevolverStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// ListBajoStock returns active storable products at or below the threshold.
	ListBajoStock(ctx context.Context, umbral int) ([]model.ProductoServicio, error)

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.ProductoServicio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoServicio, error) {
	var p model.ProductoServicio
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.ProductoServicio, int64, error) {
	var productos []model.ProductoServicio
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ProductoServicio{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.EsAlmacenable != nil {
		q = q.Where("es_almacenable = ?", *filter.EsAlmacenable)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := q.Order("nombre ASC").Offset(offset).Limit(filter.PageSize).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.ProductoServicio) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ProductoServicio{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoServicio, error) {
	if tx == nil {
		tx = r.db
	}
	var p model.ProductoServicio
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.ProductoServicio{}).
		Where("id = ? AND cantidad >= ?", id, cantidad).
		Update("cantidad", gorm.Expr("cantidad - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *productoRepo) DevolverStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.ProductoServicio{}).
		Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", cantidad)).Error
}

func (r *productoRepo) ListBajoStock(ctx context.Context, umbral int) ([]model.ProductoServicio, error) {
	var productos []model.ProductoServicio
	err := r.db.WithContext(ctx).
		Where("es_almacenable = true AND activo = true AND cantidad <= ?", umbral).
		Order("cantidad ASC").
		Find(&productos).Error
	return productos, err
}
