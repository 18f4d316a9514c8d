package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors services return so handlers can map them to HTTP statuses
// without string matching.
var (
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrAtencionCerrada       = errors.New("la atención pertenece a un cierre de caja y no admite cambios")
	ErrCierreYaExiste        = errors.New("ya existe un cierre de caja para esa fecha")
	ErrDiaSinVentas          = errors.New("no hay ventas registradas para esa fecha")
	ErrPasswordInvalido      = errors.New("contraseña incorrecta")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")

	// ErrEntradaInvalida marca errores causados por datos del request.
	// El handler los responde 400 con el mensaje tal cual; cualquier error
	// sin marcar se trata como falla interna y va al log, no al cliente.
	ErrEntradaInvalida = errors.New("entrada inválida")
)

type entradaInvalida struct{ err error }

func (e entradaInvalida) Error() string { return e.err.Error() }
func (e entradaInvalida) Unwrap() error { return e.err }

func (entradaInvalida) Is(target error) bool { return target == ErrEntradaInvalida }

// errEntrada arma un error de entrada con la semántica de fmt.Errorf,
// conservando el mensaje original para la respuesta 400.
func errEntrada(format string, args ...interface{}) error {
	return entradaInvalida{err: fmt.Errorf(format, args...)}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
