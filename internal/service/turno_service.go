package service

import (
	"context"
	"errors"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnoService interface {
	Crear(ctx context.Context, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.TurnoResponse, error)
	Listar(ctx context.Context, page, pageSize int) ([]dto.TurnoResponse, dto.Pagination, error)
	ListarPorFecha(ctx context.Context, fecha time.Time) ([]dto.TurnoResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.TurnoResponse, error)
	ListarPorEstado(ctx context.Context, estado string) ([]dto.TurnoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTurnoRequest) (*dto.TurnoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ListarEstados(ctx context.Context) ([]string, error)
}

type turnoService struct {
	repo        repository.TurnoRepository
	usuarioRepo repository.UsuarioRepository
}

func NewTurnoService(repo repository.TurnoRepository, usuarioRepo repository.UsuarioRepository) TurnoService {
	return &turnoService{repo: repo, usuarioRepo: usuarioRepo}
}

func (s *turnoService) Crear(ctx context.Context, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error) {
	fechaHora, err := time.Parse(time.RFC3339, req.FechaHora)
	if err != nil {
		return nil, errEntrada("fecha_hora inválida: %w", err)
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errEntrada("cliente_id inválido: %w", err)
	}
	barberoID, err := uuid.Parse(req.BarberoID)
	if err != nil {
		return nil, errEntrada("barbero_id inválido: %w", err)
	}

	if ok, err := s.usuarioRepo.Exists(ctx, clienteID); err != nil || !ok {
		return nil, errEntrada("cliente %s no encontrado", req.ClienteID)
	}
	if ok, err := s.usuarioRepo.ExistsConRol(ctx, barberoID, "Barbero"); err != nil || !ok {
		return nil, errEntrada("barbero %s no encontrado", req.BarberoID)
	}
	estado, err := s.repo.FindEstadoByNombre(ctx, req.Estado)
	if err != nil {
		return nil, errEntrada("estado de turno %q no encontrado", req.Estado)
	}

	// Double booking guard: same barber, same slot.
	ocupados, err := s.repo.ListPorRango(ctx, fechaHora, fechaHora.Add(time.Minute))
	if err != nil {
		return nil, err
	}
	for _, t := range ocupados {
		if t.BarberoID == barberoID {
			return nil, errEntrada("el barbero ya tiene un turno en ese horario")
		}
	}

	turno := &model.Turno{
		FechaHora: fechaHora,
		ClienteID: clienteID,
		BarberoID: barberoID,
		EstadoID:  estado.ID,
	}
	if err := s.repo.Create(ctx, turno); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, turno.ID)
}

func (s *turnoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.TurnoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := turnoToResponse(t)
	return &resp, nil
}

func (s *turnoService) Listar(ctx context.Context, page, pageSize int) ([]dto.TurnoResponse, dto.Pagination, error) {
	normalizePages(&page, &pageSize)
	turnos, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return turnosToResponse(turnos), buildPagination(page, pageSize, total), nil
}

func (s *turnoService) ListarPorFecha(ctx context.Context, fecha time.Time) ([]dto.TurnoResponse, error) {
	turnos, err := s.repo.ListPorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return turnosToResponse(turnos), nil
}

func (s *turnoService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.TurnoResponse, error) {
	turnos, err := s.repo.ListPorCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return turnosToResponse(turnos), nil
}

func (s *turnoService) ListarPorEstado(ctx context.Context, estado string) ([]dto.TurnoResponse, error) {
	e, err := s.repo.FindEstadoByNombre(ctx, estado)
	if err != nil {
		return nil, errEntrada("estado de turno %q no encontrado", estado)
	}
	turnos, err := s.repo.ListPorEstado(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return turnosToResponse(turnos), nil
}

func (s *turnoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTurnoRequest) (*dto.TurnoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if req.FechaHora != "" {
		fechaHora, err := time.Parse(time.RFC3339, req.FechaHora)
		if err != nil {
			return nil, errEntrada("fecha_hora inválida: %w", err)
		}
		t.FechaHora = fechaHora
	}
	if req.BarberoID != "" {
		barberoID, err := uuid.Parse(req.BarberoID)
		if err != nil {
			return nil, errEntrada("barbero_id inválido: %w", err)
		}
		if ok, err := s.usuarioRepo.ExistsConRol(ctx, barberoID, "Barbero"); err != nil || !ok {
			return nil, errEntrada("barbero %s no encontrado", req.BarberoID)
		}
		t.BarberoID = barberoID
	}
	if req.Estado != "" {
		estado, err := s.repo.FindEstadoByNombre(ctx, req.Estado)
		if err != nil {
			return nil, errEntrada("estado de turno %q no encontrado", req.Estado)
		}
		t.EstadoID = estado.ID
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *turnoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.Delete(ctx, id)
}

func (s *turnoService) ListarEstados(ctx context.Context) ([]string, error) {
	estados, err := s.repo.ListEstados(ctx)
	if err != nil {
		return nil, err
	}
	nombres := make([]string, len(estados))
	for i, e := range estados {
		nombres[i] = e.Nombre
	}
	return nombres, nil
}

func turnoToResponse(t *model.Turno) dto.TurnoResponse {
	resp := dto.TurnoResponse{
		ID:        t.ID.String(),
		FechaHora: t.FechaHora.Format(time.RFC3339),
		ClienteID: t.ClienteID.String(),
		BarberoID: t.BarberoID.String(),
	}
	if t.Cliente != nil {
		resp.ClienteNombre = t.Cliente.Nombre
	}
	if t.Barbero != nil {
		resp.BarberoNombre = t.Barbero.Nombre
	}
	if t.Estado != nil {
		resp.Estado = t.Estado.Nombre
	}
	return resp
}

func turnosToResponse(turnos []model.Turno) []dto.TurnoResponse {
	out := make([]dto.TurnoResponse, len(turnos))
	for i := range turnos {
		out[i] = turnoToResponse(&turnos[i])
	}
	return out
}
