package model

import (
	"time"

	"github.com/google/uuid"
)

// Imagen references a file on disk attached to a product or a user avatar.
// TipoImagen: "producto" | "avatar"
type Imagen struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Ruta         string    `gorm:"type:varchar(255);not null"`
	TipoImagen   string    `gorm:"type:varchar(50);not null"`
	RelacionadoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

func (Imagen) TableName() string { return "imagenes" }
