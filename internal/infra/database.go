package infra

import (
	"fmt"

	"github.com/edulopezdev/forestBarber/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for every domain table. The schema is greenfield so AutoMigrate is the
// single source of truth; the seed step afterwards fills the catalog tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// El cierre diario confía en que un 23505 llegue como
		// gorm.ErrDuplicatedKey para mapearlo a ErrCierreYaExiste.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables and seeds the catalogs.
// Also used by integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Usuario{},
		&model.ProductoServicio{},
		&model.EstadoTurno{},
		&model.Turno{},
		&model.Atencion{},
		&model.DetalleAtencion{},
		&model.Pago{},
		&model.CierreDiario{},
		&model.CierreDiarioPago{},
		&model.Imagen{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return seedCatalogos(db)
}

// seedCatalogos inserts the fixed role and turno-state catalogs, skipping
// rows that already exist so re-running on a live DB is a no-op.
func seedCatalogos(db *gorm.DB) error {
	roles := []string{"Administrador", "Barbero", "Cliente"}
	for _, nombre := range roles {
		if err := db.Where(model.Rol{Nombre: nombre}).
			FirstOrCreate(&model.Rol{Nombre: nombre}).Error; err != nil {
			return fmt.Errorf("seed rol %s: %w", nombre, err)
		}
	}

	estados := []string{"Pendiente", "Confirmado", "Cancelado", "Atendido"}
	for _, nombre := range estados {
		if err := db.Where(model.EstadoTurno{Nombre: nombre}).
			FirstOrCreate(&model.EstadoTurno{Nombre: nombre}).Error; err != nil {
			return fmt.Errorf("seed estado turno %s: %w", nombre, err)
		}
	}
	return nil
}
