package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoServicio is a sellable item: either a storable product (shampoo, wax)
// with finite stock, or a service (corte, barba) with no stock tracking.
// Invariant: EsAlmacenable=false ⇒ Cantidad is always 0.
type ProductoServicio struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Descripcion   *string
	Precio        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EsAlmacenable bool            `gorm:"not null;default:false"`
	Cantidad      int             `gorm:"not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductoServicio) TableName() string { return "productos_servicios" }
