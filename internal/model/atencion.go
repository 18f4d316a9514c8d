package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Atencion is one billable customer visit: a client, the barber who served
// them, and one or more line items. Payments accumulate against it separately.
// A non-nil CierreDiarioID means the visit was locked by a daily closing and
// no further edits to it, its detalles, or its pagos are allowed.
type Atencion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	BarberoID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha          time.Time `gorm:"not null;index"`
	TurnoID        *uuid.UUID
	CierreDiarioID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente  *Usuario          `gorm:"foreignKey:ClienteID"`
	Barbero  *Usuario          `gorm:"foreignKey:BarberoID"`
	Detalles []DetalleAtencion `gorm:"foreignKey:AtencionID;constraint:OnDelete:CASCADE"`
	Pagos    []Pago            `gorm:"foreignKey:AtencionID"`
}

func (Atencion) TableName() string { return "atenciones" }

// Total is the visit's derived amount owed. It is never stored: the line items
// are the single source of truth.
func (a *Atencion) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range a.Detalles {
		total = total.Add(d.Subtotal())
	}
	return total
}

// Cerrada reports whether the visit has been locked by a daily closing.
func (a *Atencion) Cerrada() bool { return a.CierreDiarioID != nil }

// DetalleAtencion is one product/service sold within a visit.
type DetalleAtencion struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AtencionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoServicioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad           int             `gorm:"not null"`
	PrecioUnitario     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Observacion        *string
	CreatedAt          time.Time

	ProductoServicio *ProductoServicio `gorm:"foreignKey:ProductoServicioID"`
}

func (DetalleAtencion) TableName() string { return "detalles_atencion" }

func (d *DetalleAtencion) Subtotal() decimal.Decimal {
	return d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
