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

type PagoService interface {
	Crear(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error)
	Listar(ctx context.Context, page, pageSize int) (*dto.PagoListResponse, error)
	ListarPorAtencion(ctx context.Context, atencionID uuid.UUID) ([]dto.PagoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pagoService struct {
	repo         repository.PagoRepository
	atencionRepo repository.AtencionRepository
}

func NewPagoService(repo repository.PagoRepository, atencionRepo repository.AtencionRepository) PagoService {
	return &pagoService{repo: repo, atencionRepo: atencionRepo}
}

func (s *pagoService) Crear(ctx context.Context, req dto.CrearPagoRequest) (*dto.PagoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, errEntrada("el monto del pago debe ser mayor a cero")
	}
	metodo, err := model.ParseMetodoPago(req.Metodo)
	if err != nil {
		return nil, errEntrada("%w; métodos válidos: %v", err, model.MetodosPago())
	}

	atencionID, err := uuid.Parse(req.AtencionID)
	if err != nil {
		return nil, errEntrada("atencion_id inválido: %w", err)
	}
	a, err := s.atencionRepo.FindByID(ctx, atencionID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if a.Cerrada() {
		return nil, ErrAtencionCerrada
	}

	pago := &model.Pago{
		AtencionID: atencionID,
		Metodo:     metodo,
		Monto:      req.Monto,
		Fecha:      time.Now(),
	}
	if err := s.repo.Create(ctx, pago); err != nil {
		return nil, err
	}
	resp := pagoToResponse(pago)
	return &resp, nil
}

func (s *pagoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error) {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := pagoToResponse(pago)
	return &resp, nil
}

func (s *pagoService) Listar(ctx context.Context, page, pageSize int) (*dto.PagoListResponse, error) {
	normalizePages(&page, &pageSize)
	pagos, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := &dto.PagoListResponse{
		Pagos:      make([]dto.PagoResponse, len(pagos)),
		Pagination: buildPagination(page, pageSize, total),
	}
	for i := range pagos {
		resp.Pagos[i] = pagoToResponse(&pagos[i])
	}
	return resp, nil
}

func (s *pagoService) ListarPorAtencion(ctx context.Context, atencionID uuid.UUID) ([]dto.PagoResponse, error) {
	if _, err := s.atencionRepo.FindByID(ctx, atencionID); err != nil {
		return nil, ErrNoEncontrado
	}
	pagos, err := s.repo.ListByAtencion(ctx, atencionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoResponse, len(pagos))
	for i := range pagos {
		resp[i] = pagoToResponse(&pagos[i])
	}
	return resp, nil
}

func (s *pagoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado
	}
	a, err := s.atencionRepo.FindByID(ctx, pago.AtencionID)
	if err == nil && a.Cerrada() {
		return ErrAtencionCerrada
	}
	return s.repo.Delete(ctx, id)
}

func pagoToResponse(p *model.Pago) dto.PagoResponse {
	return dto.PagoResponse{
		ID:         p.ID.String(),
		AtencionID: p.AtencionID.String(),
		Metodo:     string(p.Metodo),
		Monto:      p.Monto,
		Fecha:      p.Fecha.Format(time.RFC3339),
	}
}
