package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoServicioRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=100"`
	Descripcion   *string         `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"         validate:"min=0"`
	EsAlmacenable bool            `json:"es_almacenable"`
	Cantidad      int             `json:"cantidad"       validate:"min=0"`
}

type ActualizarProductoServicioRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=100"`
	Descripcion   *string          `json:"descripcion"`
	Precio        *decimal.Decimal `json:"precio"`
	EsAlmacenable *bool            `json:"es_almacenable"`
	Cantidad      *int             `json:"cantidad"       validate:"omitempty,min=0"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoFilter struct {
	Nombre        string
	EsAlmacenable *bool
	Activo        string // "" (activos) | "false" | "all"
	Page          int
	PageSize      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoServicioResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"`
	EsAlmacenable bool            `json:"es_almacenable"`
	Cantidad      int             `json:"cantidad"`
	Activo        bool            `json:"activo"`
	ImagenURL     *string         `json:"imagen_url,omitempty"`
}

type ProductoListResponse struct {
	Productos  []ProductoServicioResponse `json:"productos"`
	Pagination Pagination                 `json:"pagination"`
}
