package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol classifies users: "Administrador" | "Barbero" | "Cliente".
type Rol struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	Usuarios []Usuario `gorm:"foreignKey:RolID"`
}

func (Rol) TableName() string { return "roles" }

// Usuario stores every person known to the shop: staff with system access
// (barbers, admins) and walk-in clients alike. Clients never log in, so
// PasswordHash is only set when AccedeAlSistema is true.
type Usuario struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	Email           string    `gorm:"uniqueIndex;not null"`
	Telefono        *string
	Avatar          *string
	RolID           uuid.UUID `gorm:"type:uuid;not null;index"`
	AccedeAlSistema bool      `gorm:"not null;default:false"`
	Activo          bool      `gorm:"not null;default:true"`
	PasswordHash    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Rol *Rol `gorm:"foreignKey:RolID"`
}
