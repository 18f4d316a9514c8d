package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubTurnoRepo is an in-memory TurnoRepository seeded with the state catalog.
type stubTurnoRepo struct {
	turnos  map[uuid.UUID]*model.Turno
	estados map[string]*model.EstadoTurno
}

func newStubTurnoRepo() *stubTurnoRepo {
	r := &stubTurnoRepo{
		turnos:  make(map[uuid.UUID]*model.Turno),
		estados: make(map[string]*model.EstadoTurno),
	}
	for _, nombre := range []string{"Pendiente", "Confirmado", "Cancelado", "Atendido"} {
		r.estados[nombre] = &model.EstadoTurno{ID: uuid.New(), Nombre: nombre}
	}
	return r
}

func (r *stubTurnoRepo) Create(_ context.Context, t *model.Turno) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for _, e := range r.estados {
		if e.ID == t.EstadoID {
			t.Estado = e
		}
	}
	r.turnos[t.ID] = t
	return nil
}

func (r *stubTurnoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTurnoRepo) List(_ context.Context, _, _ int) ([]model.Turno, int64, error) {
	out := make([]model.Turno, 0, len(r.turnos))
	for _, t := range r.turnos {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTurnoRepo) ListPorFecha(_ context.Context, fecha time.Time) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if t.FechaHora.Format("2006-01-02") == fecha.Format("2006-01-02") {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTurnoRepo) ListPorRango(_ context.Context, desde, hasta time.Time) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if !t.FechaHora.Before(desde) && t.FechaHora.Before(hasta) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTurnoRepo) ListPorCliente(_ context.Context, clienteID uuid.UUID) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if t.ClienteID == clienteID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTurnoRepo) ListPorEstado(_ context.Context, estadoID uuid.UUID) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if t.EstadoID == estadoID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTurnoRepo) FindEstadoByNombre(_ context.Context, nombre string) (*model.EstadoTurno, error) {
	e, ok := r.estados[nombre]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubTurnoRepo) Update(_ context.Context, t *model.Turno) error {
	r.turnos[t.ID] = t
	return nil
}

func (r *stubTurnoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.turnos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.turnos, id)
	return nil
}

func (r *stubTurnoRepo) ListEstados(_ context.Context) ([]model.EstadoTurno, error) {
	out := make([]model.EstadoTurno, 0, len(r.estados))
	for _, e := range r.estados {
		out = append(out, *e)
	}
	return out, nil
}

var _ repository.TurnoRepository = (*stubTurnoRepo)(nil)

type turnoFixture struct {
	turnos  *stubTurnoRepo
	svc     service.TurnoService
	cliente *model.Usuario
	barbero *model.Usuario
}

func newTurnoFixture() *turnoFixture {
	turnos := newStubTurnoRepo()
	usuarios := newStubUsuarioRepo()
	cliente := usuarios.add(&model.Usuario{
		Nombre: "Juan Pérez", Email: "juan@example.com", Activo: true,
		Rol: &model.Rol{Nombre: "Cliente"},
	})
	barbero := usuarios.add(&model.Usuario{
		Nombre: "Carlos Gómez", Email: "carlos@forestbarber.com", Activo: true,
		Rol: &model.Rol{Nombre: "Barbero"},
	})
	return &turnoFixture{
		turnos:  turnos,
		svc:     service.NewTurnoService(turnos, usuarios),
		cliente: cliente,
		barbero: barbero,
	}
}

func TestTurno_Crear(t *testing.T) {
	f := newTurnoFixture()

	resp, err := f.svc.Crear(context.Background(), dto.CrearTurnoRequest{
		FechaHora: "2026-03-14T15:00:00Z",
		ClienteID: f.cliente.ID.String(),
		BarberoID: f.barbero.ID.String(),
		Estado:    "Pendiente",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pendiente", resp.Estado)
	assert.Equal(t, f.barbero.ID.String(), resp.BarberoID)
}

func TestTurno_EstadoDesconocido(t *testing.T) {
	f := newTurnoFixture()

	_, err := f.svc.Crear(context.Background(), dto.CrearTurnoRequest{
		FechaHora: "2026-03-14T15:00:00Z",
		ClienteID: f.cliente.ID.String(),
		BarberoID: f.barbero.ID.String(),
		Estado:    "EnEspera",
	})
	assert.Error(t, err)
}

func TestTurno_BarberoOcupadoEnElHorario(t *testing.T) {
	f := newTurnoFixture()

	req := dto.CrearTurnoRequest{
		FechaHora: "2026-03-14T15:00:00Z",
		ClienteID: f.cliente.ID.String(),
		BarberoID: f.barbero.ID.String(),
		Estado:    "Pendiente",
	}
	_, err := f.svc.Crear(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Crear(context.Background(), req)
	assert.Error(t, err)
	assert.Len(t, f.turnos.turnos, 1)
}

func TestTurno_ClienteNoEsBarbero(t *testing.T) {
	f := newTurnoFixture()

	_, err := f.svc.Crear(context.Background(), dto.CrearTurnoRequest{
		FechaHora: "2026-03-14T15:00:00Z",
		ClienteID: f.cliente.ID.String(),
		BarberoID: f.cliente.ID.String(),
		Estado:    "Pendiente",
	})
	assert.Error(t, err)
}

func TestTurno_ListarPorFecha(t *testing.T) {
	f := newTurnoFixture()

	for _, hora := range []string{"2026-03-14T10:00:00Z", "2026-03-14T11:00:00Z", "2026-03-15T10:00:00Z"} {
		_, err := f.svc.Crear(context.Background(), dto.CrearTurnoRequest{
			FechaHora: hora,
			ClienteID: f.cliente.ID.String(),
			BarberoID: f.barbero.ID.String(),
			Estado:    "Pendiente",
		})
		require.NoError(t, err)
	}

	dia, err := f.svc.ListarPorFecha(context.Background(), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, dia, 2)
}

func TestTurno_ListarPorEstado(t *testing.T) {
	f := newTurnoFixture()

	for i, estado := range []string{"Pendiente", "Confirmado", "Pendiente"} {
		_, err := f.svc.Crear(context.Background(), dto.CrearTurnoRequest{
			FechaHora: time.Date(2026, 3, 14, 10+i, 0, 0, 0, time.UTC).Format(time.RFC3339),
			ClienteID: f.cliente.ID.String(),
			BarberoID: f.barbero.ID.String(),
			Estado:    estado,
		})
		require.NoError(t, err)
	}

	pendientes, err := f.svc.ListarPorEstado(context.Background(), "Pendiente")
	require.NoError(t, err)
	assert.Len(t, pendientes, 2)
	for _, turno := range pendientes {
		assert.Equal(t, "Pendiente", turno.Estado)
	}

	_, err = f.svc.ListarPorEstado(context.Background(), "EnEspera")
	assert.Error(t, err)
}
