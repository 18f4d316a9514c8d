package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AtencionService interface {
	Crear(ctx context.Context, barberoID uuid.UUID, req dto.CrearAtencionRequest) (*dto.AtencionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AtencionResponse, error)
	Listar(ctx context.Context, page, pageSize int) (*dto.AtencionListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAtencionRequest) (*dto.AtencionResponse, error)
	// ActualizarDetalles replaces the visit's line items and reconciles stock
	// against the difference between the old and new sets.
	ActualizarDetalles(ctx context.Context, id uuid.UUID, req dto.ActualizarDetallesRequest) (*dto.AtencionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ResumenBarbero(ctx context.Context, barberoID uuid.UUID, mes, anio int) (*dto.ResumenBarberoResponse, error)
}

type atencionService struct {
	repo         repository.AtencionRepository
	usuarioRepo  repository.UsuarioRepository
	productoRepo repository.ProductoRepository
	stock        StockService
}

func NewAtencionService(
	repo repository.AtencionRepository,
	usuarioRepo repository.UsuarioRepository,
	productoRepo repository.ProductoRepository,
	stock StockService,
) AtencionService {
	return &atencionService{
		repo:         repo,
		usuarioRepo:  usuarioRepo,
		productoRepo: productoRepo,
		stock:        stock,
	}
}

// resolvedDetalle is a validated line item ready to persist.
type resolvedDetalle struct {
	producto *model.ProductoServicio
	cantidad int
	precio   decimal.Decimal
	obs      *string
}

// resolverDetalles validates each requested line against the catalog and
// pre-checks stock so obvious failures abort before any mutation happens.
// actuales carries the units a visit already holds per product (nil on
// create): raising a line from 2 to 3 only needs 1 more unit on the shelf.
func (s *atencionService) resolverDetalles(ctx context.Context, detalles []dto.DetalleRequest, actuales map[uuid.UUID]int) ([]resolvedDetalle, error) {
	if len(detalles) == 0 {
		return nil, errEntrada("la atención debe tener al menos un detalle")
	}
	resolved := make([]resolvedDetalle, 0, len(detalles))
	pedido := make(map[uuid.UUID]int) // accumulated units per product
	productos := make(map[uuid.UUID]*model.ProductoServicio)

	for _, d := range detalles {
		pid, err := uuid.Parse(d.ProductoServicioID)
		if err != nil {
			return nil, errEntrada("producto_servicio_id inválido: %w", err)
		}
		p, ok := productos[pid]
		if !ok {
			p, err = s.productoRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, errEntrada("producto %s no encontrado", d.ProductoServicioID)
			}
			productos[pid] = p
		}
		if !p.Activo {
			return nil, errEntrada("el producto %s está inactivo y no puede venderse", p.Nombre)
		}
		// nil hereda el precio de catálogo; un cero explícito se respeta
		precio := p.Precio
		if d.PrecioUnitario != nil {
			precio = *d.PrecioUnitario
		}
		if p.EsAlmacenable {
			pedido[pid] += d.Cantidad
			disponible := p.Cantidad + actuales[pid]
			if pedido[pid] > disponible {
				return nil, errEntrada("stock insuficiente de %s: hay %d disponibles, se piden %d",
					p.Nombre, disponible, pedido[pid])
			}
		}
		resolved = append(resolved, resolvedDetalle{
			producto: p,
			cantidad: d.Cantidad,
			precio:   precio,
			obs:      d.Observacion,
		})
	}
	return resolved, nil
}

func (s *atencionService) Crear(ctx context.Context, barberoID uuid.UUID, req dto.CrearAtencionRequest) (*dto.AtencionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errEntrada("cliente_id inválido: %w", err)
	}
	if ok, err := s.usuarioRepo.Exists(ctx, clienteID); err != nil || !ok {
		return nil, errEntrada("cliente %s no encontrado", req.ClienteID)
	}
	if ok, err := s.usuarioRepo.ExistsConRol(ctx, barberoID, "Barbero"); err != nil {
		return nil, err
	} else if !ok {
		// admins can register visits too
		if okAdmin, err := s.usuarioRepo.ExistsConRol(ctx, barberoID, "Administrador"); err != nil || !okAdmin {
			return nil, errEntrada("barbero %s no encontrado", barberoID)
		}
	}

	resolved, err := s.resolverDetalles(ctx, req.Detalles, nil)
	if err != nil {
		return nil, err
	}

	fecha := time.Now()
	if req.Fecha != nil {
		if fecha, err = time.Parse(time.RFC3339, *req.Fecha); err != nil {
			return nil, errEntrada("fecha inválida: %w", err)
		}
	}

	atencion := &model.Atencion{
		ClienteID: clienteID,
		BarberoID: barberoID,
		Fecha:     fecha,
	}
	if req.TurnoID != nil {
		tid, err := uuid.Parse(*req.TurnoID)
		if err != nil {
			return nil, errEntrada("turno_id inválido: %w", err)
		}
		atencion.TurnoID = &tid
	}
	for _, r := range resolved {
		atencion.Detalles = append(atencion.Detalles, model.DetalleAtencion{
			ProductoServicioID: r.producto.ID,
			Cantidad:           r.cantidad,
			PrecioUnitario:     r.precio,
			Observacion:        r.obs,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, atencion); err != nil {
			return err
		}
		for _, r := range resolved {
			if err := s.stock.DescontarTx(ctx, tx, r.producto.ID, r.cantidad); err != nil {
				return fmt.Errorf("descontando stock de %s: %w", r.producto.Nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, atencion.ID)
}

func (s *atencionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AtencionResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := atencionToResponse(a)
	return &resp, nil
}

func (s *atencionService) Listar(ctx context.Context, page, pageSize int) (*dto.AtencionListResponse, error) {
	normalizePages(&page, &pageSize)
	atenciones, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := &dto.AtencionListResponse{
		Atenciones: make([]dto.AtencionResponse, len(atenciones)),
		Pagination: buildPagination(page, pageSize, total),
	}
	for i := range atenciones {
		resp.Atenciones[i] = atencionToResponse(&atenciones[i])
	}
	return resp, nil
}

func (s *atencionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAtencionRequest) (*dto.AtencionResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if a.Cerrada() {
		return nil, ErrAtencionCerrada
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errEntrada("cliente_id inválido: %w", err)
	}
	barberoID, err := uuid.Parse(req.BarberoID)
	if err != nil {
		return nil, errEntrada("barbero_id inválido: %w", err)
	}
	fecha, err := time.Parse(time.RFC3339, req.Fecha)
	if err != nil {
		return nil, errEntrada("fecha inválida: %w", err)
	}
	if ok, err := s.usuarioRepo.Exists(ctx, clienteID); err != nil || !ok {
		return nil, errEntrada("cliente %s no encontrado", req.ClienteID)
	}

	a.ClienteID = clienteID
	a.BarberoID = barberoID
	a.Fecha = fecha
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *atencionService) ActualizarDetalles(ctx context.Context, id uuid.UUID, req dto.ActualizarDetallesRequest) (*dto.AtencionResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if a.Cerrada() {
		return nil, ErrAtencionCerrada
	}
	if len(req.Detalles) == 0 {
		return nil, errEntrada("la atención debe conservar al menos un detalle")
	}

	actuales := make(map[uuid.UUID]int)
	for _, d := range a.Detalles {
		actuales[d.ProductoServicioID] += d.Cantidad
	}

	resolved, err := s.resolverDetalles(ctx, req.Detalles, actuales)
	if err != nil {
		return nil, err
	}

	// Per-product unit delta between the stored lines and the new set.
	deltas := make(map[uuid.UUID]int)
	for _, d := range a.Detalles {
		deltas[d.ProductoServicioID] -= d.Cantidad
	}
	nuevos := make([]model.DetalleAtencion, 0, len(resolved))
	for _, r := range resolved {
		deltas[r.producto.ID] += r.cantidad
		nuevos = append(nuevos, model.DetalleAtencion{
			AtencionID:         id,
			ProductoServicioID: r.producto.ID,
			Cantidad:           r.cantidad,
			PrecioUnitario:     r.precio,
			Observacion:        r.obs,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceDetallesTx(tx, id, nuevos); err != nil {
			return err
		}
		for pid, delta := range deltas {
			switch {
			case delta > 0:
				if err := s.stock.DescontarTx(ctx, tx, pid, delta); err != nil {
					return err
				}
			case delta < 0:
				if err := s.stock.DevolverTx(tx, pid, -delta); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

func (s *atencionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado
	}
	if a.Cerrada() {
		return ErrAtencionCerrada
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, d := range a.Detalles {
			if err := s.stock.DevolverTx(tx, d.ProductoServicioID, d.Cantidad); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *atencionService) ResumenBarbero(ctx context.Context, barberoID uuid.UUID, mes, anio int) (*dto.ResumenBarberoResponse, error) {
	if mes < 1 || mes > 12 {
		return nil, errEntrada("mes inválido")
	}
	atenciones, err := s.repo.ListPorMes(ctx, barberoID, mes, anio)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range atenciones {
		total = total.Add(atenciones[i].Total())
	}
	return &dto.ResumenBarberoResponse{
		BarberoID:       barberoID.String(),
		Mes:             mes,
		Anio:            anio,
		TotalAtenciones: len(atenciones),
		TotalIngresos:   total,
	}, nil
}

func atencionToResponse(a *model.Atencion) dto.AtencionResponse {
	resp := dto.AtencionResponse{
		ID:        a.ID.String(),
		ClienteID: a.ClienteID.String(),
		BarberoID: a.BarberoID.String(),
		Fecha:     a.Fecha.Format(time.RFC3339),
		Detalles:  detallesToResponse(a.Detalles),
		Total:     a.Total(),
		Cerrada:   a.Cerrada(),
	}
	if a.Cliente != nil {
		resp.ClienteNombre = a.Cliente.Nombre
	}
	if a.Barbero != nil {
		resp.BarberoNombre = a.Barbero.Nombre
	}
	return resp
}

func detallesToResponse(detalles []model.DetalleAtencion) []dto.DetalleResponse {
	out := make([]dto.DetalleResponse, len(detalles))
	for i, d := range detalles {
		out[i] = dto.DetalleResponse{
			ProductoServicioID: d.ProductoServicioID.String(),
			Cantidad:           d.Cantidad,
			PrecioUnitario:     d.PrecioUnitario,
			Subtotal:           d.Subtotal(),
			Observacion:        d.Observacion,
		}
		if d.ProductoServicio != nil {
			out[i].NombreProducto = d.ProductoServicio.Nombre
		}
	}
	return out
}
