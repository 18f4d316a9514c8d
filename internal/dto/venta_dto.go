package dto

import "github.com/shopspring/decimal"

// Payment-status tokens derived per visit: never persisted.
const (
	EstadoPagoSinPago  = "sin_pago"
	EstadoPagoParcial  = "parcial"
	EstadoPagoCompleto = "completo"
)

// VentaFilter carries every filter the sales listing accepts.
type VentaFilter struct {
	ClienteNombre      string
	ProductoNombre     string
	ProductoServicioID string
	FechaDesde         string // YYYY-MM-DD inclusive
	FechaHasta         string // YYYY-MM-DD inclusive
	MontoMin           *decimal.Decimal
	MontoMax           *decimal.Decimal
	EstadoPago         string // sin_pago | parcial | completo
	OrdenarPor         string // fecha | cliente | monto
	Orden              string // asc | desc; vacío aplica el default del campo
	Page               int
	PageSize           int
}

type PagoVentaResponse struct {
	PagoID    string          `json:"pago_id"`
	Metodo    string          `json:"metodo"`
	Monto     decimal.Decimal `json:"monto"`
	FechaPago string          `json:"fecha_pago"`
}

// VentaResponse is the reporting view of a visit: line items, derived totals
// and payment status in one flat shape (no entity cycles).
type VentaResponse struct {
	AtencionID    string              `json:"atencion_id"`
	ClienteID     string              `json:"cliente_id"`
	ClienteNombre string              `json:"cliente_nombre"`
	FechaAtencion string              `json:"fecha_atencion"`
	Detalles      []DetalleResponse   `json:"detalles"`
	TotalVenta    decimal.Decimal     `json:"total_venta"`
	Pagos         []PagoVentaResponse `json:"pagos"`
	MontoPagado   decimal.Decimal     `json:"monto_pagado"`
	EstadoPago    string              `json:"estado_pago"`
	Cerrada       bool                `json:"cerrada"`
}

type VentaListResponse struct {
	Ventas     []VentaResponse `json:"ventas"`
	Pagination Pagination      `json:"pagination"`
}
