package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CerrarCajaRequest closes the register for a date. The password is the
// requesting staff member's own credential, re-verified before closing.
type CerrarCajaRequest struct {
	Fecha         string  `json:"fecha"         validate:"required,datetime=2006-01-02"`
	Observaciones *string `json:"observaciones"`
	Password      string  `json:"password"      validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoMetodoResponse struct {
	MetodoPago string          `json:"metodo_pago"`
	Monto      decimal.Decimal `json:"monto"`
}

// ResumenDiaResponse is the uniform daily-summary shape: it is returned both
// for already-closed dates (persisted totals) and open dates (live totals).
type ResumenDiaResponse struct {
	Fecha                  string               `json:"fecha"`
	TotalUnidadesProductos int                  `json:"total_unidades_productos"`
	TotalMontoProductos    decimal.Decimal      `json:"total_monto_productos"`
	TotalUnidadesServicios int                  `json:"total_unidades_servicios"`
	TotalMontoServicios    decimal.Decimal      `json:"total_monto_servicios"`
	TotalIngresos          decimal.Decimal      `json:"total_ingresos"`
	Pagos                  []PagoMetodoResponse `json:"pagos"`
	Cerrado                bool                 `json:"cerrado"`
}

type CierreDiarioResponse struct {
	ID                     string               `json:"id"`
	Fecha                  string               `json:"fecha"`
	TotalProductosVendidos decimal.Decimal      `json:"total_productos_vendidos"`
	TotalServiciosVendidos decimal.Decimal      `json:"total_servicios_vendidos"`
	TotalVentasDia         decimal.Decimal      `json:"total_ventas_dia"`
	Observaciones          *string              `json:"observaciones"`
	FechaCierre            string               `json:"fecha_cierre"`
	Cerrado                bool                 `json:"cerrado"`
	UsuarioID              string               `json:"usuario_id"`
	Pagos                  []PagoMetodoResponse `json:"pagos"`
}
