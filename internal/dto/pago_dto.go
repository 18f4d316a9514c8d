package dto

import "github.com/shopspring/decimal"

type CrearPagoRequest struct {
	AtencionID string          `json:"atencion_id" validate:"required,uuid"`
	Metodo     string          `json:"metodo"      validate:"required"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

type PagoResponse struct {
	ID         string          `json:"id"`
	AtencionID string          `json:"atencion_id"`
	Metodo     string          `json:"metodo"`
	Monto      decimal.Decimal `json:"monto"`
	Fecha      string          `json:"fecha"`
}

type PagoListResponse struct {
	Pagos      []PagoResponse `json:"pagos"`
	Pagination Pagination     `json:"pagination"`
}
