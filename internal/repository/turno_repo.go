package repository

import (
	"context"
	"time"

	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	List(ctx context.Context, page, pageSize int) ([]model.Turno, int64, error)
	ListPorFecha(ctx context.Context, fecha time.Time) ([]model.Turno, error)
	ListPorRango(ctx context.Context, desde, hasta time.Time) ([]model.Turno, error)
	ListPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Turno, error)
	ListPorEstado(ctx context.Context, estadoID uuid.UUID) ([]model.Turno, error)
	FindEstadoByNombre(ctx context.Context, nombre string) (*model.EstadoTurno, error)
	Update(ctx context.Context, t *model.Turno) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEstados(ctx context.Context) ([]model.EstadoTurno, error)
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Barbero").
		Preload("Estado").
		First(&t, id).Error
	return &t, err
}

func (r *turnoRepo) List(ctx context.Context, page, pageSize int) ([]model.Turno, int64, error) {
	var turnos []model.Turno
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Turno{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Cliente").Preload("Barbero").Preload("Estado").
		Order("fecha_hora DESC").
		Offset(offset).Limit(pageSize).
		Find(&turnos).Error
	return turnos, total, err
}

func (r *turnoRepo) ListPorFecha(ctx context.Context, fecha time.Time) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("DATE(fecha_hora) = ?", normalizeFecha(fecha)).
		Preload("Cliente").Preload("Barbero").Preload("Estado").
		Order("fecha_hora ASC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) ListPorRango(ctx context.Context, desde, hasta time.Time) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("fecha_hora >= ? AND fecha_hora < ?", desde, hasta).
		Preload("Cliente").Preload("Barbero").Preload("Estado").
		Order("fecha_hora ASC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) ListPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Preload("Barbero").Preload("Estado").
		Order("fecha_hora DESC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) FindEstadoByNombre(ctx context.Context, nombre string) (*model.EstadoTurno, error) {
	var e model.EstadoTurno
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&e).Error
	return &e, err
}

func (r *turnoRepo) ListPorEstado(ctx context.Context, estadoID uuid.UUID) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("estado_id = ?", estadoID).
		Preload("Cliente").Preload("Barbero").Preload("Estado").
		Order("fecha_hora ASC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) Update(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Turno{}, id).Error
}

func (r *turnoRepo) ListEstados(ctx context.Context) ([]model.EstadoTurno, error) {
	var estados []model.EstadoTurno
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&estados).Error
	return estados, err
}
