package repository

import (
	"context"
	"time"

	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MetodoTotal is one row of a per-payment-method aggregation for a day.
type MetodoTotal struct {
	MetodoPago string
	Monto      decimal.Decimal
	Cantidad   int
}

type CierreDiarioRepository interface {
	CreateTx(tx *gorm.DB, c *model.CierreDiario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreDiario, error)
	FindByFecha(ctx context.Context, fecha time.Time) (*model.CierreDiario, error)
	List(ctx context.Context, page, pageSize int) ([]model.CierreDiario, int64, error)
	Update(ctx context.Context, c *model.CierreDiario) error

	// SumDetallesDia totals line-item amounts for the date, split by whether
	// the sold item is storable; unidades counts storable units only.
	SumDetallesDia(ctx context.Context, fecha time.Time, almacenable bool) (decimal.Decimal, int, error)

	// SumPagosPorMetodo groups the date's payments by method.
	SumPagosPorMetodo(ctx context.Context, fecha time.Time) ([]MetodoTotal, error)

	// LinkAtencionesTx stamps the day's visits with the closing id.
	LinkAtencionesTx(tx *gorm.DB, fecha time.Time, cierreID uuid.UUID) error

	// AtencionCerrada reports whether the visit is already linked to a closing.
	AtencionCerrada(ctx context.Context, atencionID uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreDiarioRepository(db *gorm.DB) CierreDiarioRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) DB() *gorm.DB { return r.db }

func (r *cierreRepo) CreateTx(tx *gorm.DB, c *model.CierreDiario) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(c).Error
}

func (r *cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreDiario, error) {
	var c model.CierreDiario
	err := r.db.WithContext(ctx).Preload("Pagos").First(&c, id).Error
	return &c, err
}

func (r *cierreRepo) FindByFecha(ctx context.Context, fecha time.Time) (*model.CierreDiario, error) {
	var c model.CierreDiario
	err := r.db.WithContext(ctx).
		Preload("Pagos").
		Where("fecha = ?", normalizeFecha(fecha)).
		First(&c).Error
	return &c, err
}

func (r *cierreRepo) List(ctx context.Context, page, pageSize int) ([]model.CierreDiario, int64, error) {
	var cierres []model.CierreDiario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CierreDiario{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Pagos").
		Order("fecha DESC").
		Offset(offset).Limit(pageSize).
		Find(&cierres).Error
	return cierres, total, err
}

func (r *cierreRepo) Update(ctx context.Context, c *model.CierreDiario) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cierreRepo) SumDetallesDia(ctx context.Context, fecha time.Time, almacenable bool) (decimal.Decimal, int, error) {
	var row struct {
		Monto    decimal.Decimal
		Unidades int
	}
	err := r.db.WithContext(ctx).
		Table("detalles_atencion d").
		Select("COALESCE(SUM(d.cantidad * d.precio_unitario), 0) AS monto, COALESCE(SUM(d.cantidad), 0) AS unidades").
		Joins("JOIN atenciones a ON a.id = d.atencion_id").
		Joins("JOIN productos_servicios ps ON ps.id = d.producto_servicio_id").
		Where("DATE(a.fecha) = ? AND ps.es_almacenable = ?", normalizeFecha(fecha), almacenable).
		Scan(&row).Error
	return row.Monto, row.Unidades, err
}

func (r *cierreRepo) SumPagosPorMetodo(ctx context.Context, fecha time.Time) ([]MetodoTotal, error) {
	var rows []MetodoTotal
	err := r.db.WithContext(ctx).
		Table("pagos p").
		Select("p.metodo AS metodo_pago, COALESCE(SUM(p.monto), 0) AS monto, COUNT(*) AS cantidad").
		Joins("JOIN atenciones a ON a.id = p.atencion_id").
		Where("DATE(a.fecha) = ?", normalizeFecha(fecha)).
		Group("p.metodo").
		Order("p.metodo").
		Scan(&rows).Error
	return rows, err
}

func (r *cierreRepo) AtencionCerrada(ctx context.Context, atencionID uuid.UUID) (bool, error) {
	var a model.Atencion
	err := r.db.WithContext(ctx).Select("cierre_diario_id").First(&a, atencionID).Error
	if err != nil {
		return false, err
	}
	return a.CierreDiarioID != nil, nil
}

func (r *cierreRepo) LinkAtencionesTx(tx *gorm.DB, fecha time.Time, cierreID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Atencion{}).
		Where("DATE(fecha) = ? AND cierre_diario_id IS NULL", normalizeFecha(fecha)).
		Update("cierre_diario_id", cierreID).Error
}
