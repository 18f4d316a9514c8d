package dto

import "github.com/shopspring/decimal"

// ReporteDiaResponse bundles everything the front desk needs about one date:
// booked appointments, registered visits and collected payments.
type ReporteDiaResponse struct {
	Fecha           string          `json:"fecha"`
	Turnos          []TurnoResponse `json:"turnos"`
	Atenciones      []VentaResponse `json:"atenciones"`
	TotalAtenciones int             `json:"total_atenciones"`
	TotalPagado     decimal.Decimal `json:"total_pagado"`
	TotalFacturado  decimal.Decimal `json:"total_facturado"`
	CajaCerrada     bool            `json:"caja_cerrada"`
}

type ReporteRangoResponse struct {
	FechaDesde      string          `json:"fecha_desde"`
	FechaHasta      string          `json:"fecha_hasta"`
	TotalAtenciones int             `json:"total_atenciones"`
	TotalFacturado  decimal.Decimal `json:"total_facturado"`
	TotalPagado     decimal.Decimal `json:"total_pagado"`
}
