package repository

import (
	"context"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AtencionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Atencion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Atencion, error)
	List(ctx context.Context, page, pageSize int) ([]model.Atencion, int64, error)
	Update(ctx context.Context, a *model.Atencion) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// ReplaceDetallesTx swaps a visit's whole line-item set inside the
	// caller's transaction; stock adjustments are the service's concern.
	ReplaceDetallesTx(tx *gorm.DB, atencionID uuid.UUID, detalles []model.DetalleAtencion) error

	// ListVentas fetches visits (with client, line items and payments
	// preloaded) applying the SQL-expressible filters; derived-total filters
	// and ordering over computed fields happen in the service.
	ListVentas(ctx context.Context, filter dto.VentaFilter) ([]model.Atencion, error)

	// ListPorMes scopes a barber's visits to a calendar month.
	ListPorMes(ctx context.Context, barberoID uuid.UUID, mes, anio int) ([]model.Atencion, error)

	DB() *gorm.DB
}

type atencionRepo struct{ db *gorm.DB }

func NewAtencionRepository(db *gorm.DB) AtencionRepository { return &atencionRepo{db: db} }

func (r *atencionRepo) DB() *gorm.DB { return r.db }

func (r *atencionRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Atencion) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(a).Error
}

func (r *atencionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Atencion, error) {
	var a model.Atencion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Barbero").
		Preload("Detalles.ProductoServicio").
		Preload("Pagos").
		First(&a, id).Error
	return &a, err
}

func (r *atencionRepo) List(ctx context.Context, page, pageSize int) ([]model.Atencion, int64, error) {
	var atenciones []model.Atencion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Atencion{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Cliente").
		Preload("Barbero").
		Preload("Detalles.ProductoServicio").
		Order("fecha DESC").
		Offset(offset).Limit(pageSize).
		Find(&atenciones).Error
	return atenciones, total, err
}

func (r *atencionRepo) Update(ctx context.Context, a *model.Atencion) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *atencionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("atencion_id = ?", id).Delete(&model.DetalleAtencion{}).Error; err != nil {
		return err
	}
	if err := tx.Where("atencion_id = ?", id).Delete(&model.Pago{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Atencion{}, id).Error
}

func (r *atencionRepo) ReplaceDetallesTx(tx *gorm.DB, atencionID uuid.UUID, detalles []model.DetalleAtencion) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("atencion_id = ?", atencionID).Delete(&model.DetalleAtencion{}).Error; err != nil {
		return err
	}
	for i := range detalles {
		detalles[i].AtencionID = atencionID
	}
	if len(detalles) == 0 {
		return nil
	}
	return tx.Create(&detalles).Error
}

func (r *atencionRepo) ListVentas(ctx context.Context, filter dto.VentaFilter) ([]model.Atencion, error) {
	var atenciones []model.Atencion

	q := r.db.WithContext(ctx).Model(&model.Atencion{}).
		Where("EXISTS (SELECT 1 FROM detalles_atencion d WHERE d.atencion_id = atenciones.id)")

	if filter.ClienteNombre != "" {
		q = q.Where(
			"cliente_id IN (SELECT id FROM usuarios WHERE nombre ILIKE ?)",
			"%"+filter.ClienteNombre+"%",
		)
	}
	if filter.ProductoServicioID != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM detalles_atencion d WHERE d.atencion_id = atenciones.id AND d.producto_servicio_id = ?)",
			filter.ProductoServicioID,
		)
	}
	if filter.ProductoNombre != "" {
		q = q.Where(
			`EXISTS (SELECT 1 FROM detalles_atencion d
			 JOIN productos_servicios ps ON ps.id = d.producto_servicio_id
			 WHERE d.atencion_id = atenciones.id AND ps.nombre ILIKE ?)`,
			"%"+filter.ProductoNombre+"%",
		)
	}
	if filter.FechaDesde != "" {
		q = q.Where("DATE(fecha) >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("DATE(fecha) <= ?", filter.FechaHasta)
	}

	err := q.Preload("Cliente").
		Preload("Detalles.ProductoServicio").
		Preload("Pagos").
		Order("fecha DESC").
		Find(&atenciones).Error
	return atenciones, err
}

func (r *atencionRepo) ListPorMes(ctx context.Context, barberoID uuid.UUID, mes, anio int) ([]model.Atencion, error) {
	var atenciones []model.Atencion
	err := r.db.WithContext(ctx).
		Where("barbero_id = ? AND EXTRACT(MONTH FROM fecha) = ? AND EXTRACT(YEAR FROM fecha) = ?",
			barberoID, mes, anio).
		Preload("Detalles").
		Find(&atenciones).Error
	return atenciones, err
}

// normalizeFecha truncates a timestamp to its calendar date in UTC.
func normalizeFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
