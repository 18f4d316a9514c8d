package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPago is the closed set of accepted payment methods. The typed string
// is the canonical storage/serialization form; free text never enters.
type MetodoPago string

const (
	MetodoEfectivo      MetodoPago = "efectivo"
	MetodoDebito        MetodoPago = "tarjeta_debito"
	MetodoCredito       MetodoPago = "tarjeta_credito"
	MetodoTransferencia MetodoPago = "transferencia"
	MetodoMercadoPago   MetodoPago = "mercado_pago"
	MetodoNaranjaX      MetodoPago = "naranja_x"
	MetodoQR            MetodoPago = "qr"
	MetodoOtro          MetodoPago = "otro"
)

var metodosPago = map[MetodoPago]bool{
	MetodoEfectivo:      true,
	MetodoDebito:        true,
	MetodoCredito:       true,
	MetodoTransferencia: true,
	MetodoMercadoPago:   true,
	MetodoNaranjaX:      true,
	MetodoQR:            true,
	MetodoOtro:          true,
}

// Valido reports whether m is one of the recognized variants.
func (m MetodoPago) Valido() bool { return metodosPago[m] }

// ParseMetodoPago converts the wire string into a MetodoPago, rejecting
// anything outside the closed set.
func ParseMetodoPago(s string) (MetodoPago, error) {
	m := MetodoPago(s)
	if !m.Valido() {
		return "", fmt.Errorf("método de pago %q no es válido", s)
	}
	return m, nil
}

// MetodosPago lists every accepted variant, for validation messages and docs.
func MetodosPago() []MetodoPago {
	return []MetodoPago{
		MetodoEfectivo, MetodoDebito, MetodoCredito, MetodoTransferencia,
		MetodoMercadoPago, MetodoNaranjaX, MetodoQR, MetodoOtro,
	}
}

// Pago is one payment applied to a visit. Payments are append-only while the
// visit is open and frozen entirely once the visit is closed in caja.
type Pago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AtencionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo     MetodoPago      `gorm:"type:varchar(20);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Fecha      time.Time       `gorm:"not null"`
	CreatedAt  time.Time

	Atencion *Atencion `gorm:"foreignKey:AtencionID"`
}

func (Pago) TableName() string { return "pagos" }
