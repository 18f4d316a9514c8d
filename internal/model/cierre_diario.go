package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CierreDiario is the end-of-day register closing: an immutable financial
// summary of one calendar date. The unique index on Fecha enforces at most one
// closing per date at the database level, so two concurrent close attempts
// cannot both succeed even if they raced past the application-level check.
type CierreDiario struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha                   time.Time       `gorm:"type:date;uniqueIndex;not null"`
	TotalProductosVendidos  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalServiciosVendidos  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVentasDia          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observaciones           *string
	FechaCierre             time.Time `gorm:"not null"`
	Cerrado                 bool      `gorm:"not null;default:true"`
	UsuarioID               uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt               time.Time

	Usuario    *Usuario           `gorm:"foreignKey:UsuarioID"`
	Pagos      []CierreDiarioPago `gorm:"foreignKey:CierreDiarioID;constraint:OnDelete:CASCADE"`
	Atenciones []Atencion         `gorm:"foreignKey:CierreDiarioID"`
}

func (CierreDiario) TableName() string { return "cierres_diarios" }

// CierreDiarioPago is one payment-method subtotal inside a closing.
// Rows are written once at close time and never touched again.
type CierreDiarioPago struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CierreDiarioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MetodoPago     string          `gorm:"type:varchar(50);not null"`
	Monto          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (CierreDiarioPago) TableName() string { return "cierres_diarios_pagos" }
