package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleRequest: PrecioUnitario nil toma el precio de catálogo; un cero
// explícito vale como precio (línea bonificada).
type DetalleRequest struct {
	ProductoServicioID string           `json:"producto_servicio_id" validate:"required,uuid"`
	Cantidad           int              `json:"cantidad"             validate:"required,gt=0"`
	PrecioUnitario     *decimal.Decimal `json:"precio_unitario"      validate:"omitempty,min=0"`
	Observacion        *string          `json:"observacion"`
}

type CrearAtencionRequest struct {
	ClienteID string           `json:"cliente_id" validate:"required,uuid"`
	Fecha     *string          `json:"fecha"      validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TurnoID   *string          `json:"turno_id"   validate:"omitempty,uuid"`
	Detalles  []DetalleRequest `json:"detalles"   validate:"required,min=1,dive"`
}

type ActualizarAtencionRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	BarberoID string `json:"barbero_id" validate:"required,uuid"`
	Fecha     string `json:"fecha"      validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ActualizarDetallesRequest replaces a visit's whole line-item set.
type ActualizarDetallesRequest struct {
	Detalles []DetalleRequest `json:"detalles" validate:"required,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleResponse struct {
	ProductoServicioID string          `json:"producto_servicio_id"`
	NombreProducto     string          `json:"nombre_producto"`
	Cantidad           int             `json:"cantidad"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Observacion        *string         `json:"observacion"`
}

type AtencionResponse struct {
	ID            string            `json:"id"`
	ClienteID     string            `json:"cliente_id"`
	ClienteNombre string            `json:"cliente_nombre"`
	BarberoID     string            `json:"barbero_id"`
	BarberoNombre string            `json:"barbero_nombre"`
	Fecha         string            `json:"fecha"`
	Detalles      []DetalleResponse `json:"detalles"`
	Total         decimal.Decimal   `json:"total"`
	Cerrada       bool              `json:"cerrada"`
}

type AtencionListResponse struct {
	Atenciones []AtencionResponse `json:"atenciones"`
	Pagination Pagination         `json:"pagination"`
}

type ResumenBarberoResponse struct {
	BarberoID       string          `json:"barbero_id"`
	Mes             int             `json:"mes"`
	Anio            int             `json:"anio"`
	TotalAtenciones int             `json:"total_atenciones"`
	TotalIngresos   decimal.Decimal `json:"total_ingresos"`
}
