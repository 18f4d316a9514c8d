package model

import (
	"time"

	"github.com/google/uuid"
)

// EstadoTurno is the appointment-state catalog (Pendiente, Confirmado,
// Cancelado, Atendido).
type EstadoTurno struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
}

func (EstadoTurno) TableName() string { return "estados_turno" }

// Turno is a booked appointment slot. When the client shows up the barber
// registers an Atencion referencing it.
type Turno struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaHora time.Time `gorm:"not null;index"`
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	BarberoID uuid.UUID `gorm:"type:uuid;not null;index"`
	EstadoID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Usuario     `gorm:"foreignKey:ClienteID"`
	Barbero *Usuario     `gorm:"foreignKey:BarberoID"`
	Estado  *EstadoTurno `gorm:"foreignKey:EstadoID"`
}

func (Turno) TableName() string { return "turnos" }
