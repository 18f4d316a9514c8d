package service

import (
	"context"
	"errors"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CierreService runs the end-of-day closing workflow. A closing freezes the
// date: every visit of the day gets stamped with the cierre id and rejects
// further edits, and the persisted totals become the canonical record.
type CierreService interface {
	// ResumenDelDia returns the daily summary in a uniform shape: persisted
	// totals when the date is already closed, live aggregation otherwise.
	ResumenDelDia(ctx context.Context, fecha time.Time) (*dto.ResumenDiaResponse, error)
	CerrarCaja(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreDiarioResponse, error)
	Listar(ctx context.Context, page, pageSize int) ([]dto.CierreDiarioResponse, dto.Pagination, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CierreDiarioResponse, error)
	ObtenerPorFecha(ctx context.Context, fecha time.Time) (*dto.CierreDiarioResponse, error)
	// EstaCerrado reports whether the date already has a closing.
	EstaCerrado(ctx context.Context, fecha time.Time) (bool, error)
	// VentaCerrada reports whether a visit is frozen by a closing.
	VentaCerrada(ctx context.Context, atencionID uuid.UUID) (bool, error)
	// Bloquear marks an existing closing as cerrado without recomputing
	// totals. Administrative override.
	Bloquear(ctx context.Context, id uuid.UUID) (*dto.CierreDiarioResponse, error)
}

type cierreService struct {
	repo       repository.CierreDiarioRepository
	auth       AuthService
	stock      StockService
	dispatcher Dispatcher
}

func NewCierreService(
	repo repository.CierreDiarioRepository,
	auth AuthService,
	stock StockService,
	dispatcher Dispatcher,
) CierreService {
	return &cierreService{repo: repo, auth: auth, stock: stock, dispatcher: dispatcher}
}

// resumenVivo aggregates the day's sales and payments straight from the
// detalles and pagos tables.
func (s *cierreService) resumenVivo(ctx context.Context, fecha time.Time) (*dto.ResumenDiaResponse, error) {
	montoProductos, unidadesProductos, err := s.repo.SumDetallesDia(ctx, fecha, true)
	if err != nil {
		return nil, err
	}
	montoServicios, unidadesServicios, err := s.repo.SumDetallesDia(ctx, fecha, false)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.repo.SumPagosPorMetodo(ctx, fecha)
	if err != nil {
		return nil, err
	}

	pagos := make([]dto.PagoMetodoResponse, len(porMetodo))
	for i, m := range porMetodo {
		pagos[i] = dto.PagoMetodoResponse{MetodoPago: m.MetodoPago, Monto: m.Monto}
	}

	return &dto.ResumenDiaResponse{
		Fecha:                  fecha.Format("2006-01-02"),
		TotalUnidadesProductos: unidadesProductos,
		TotalMontoProductos:    montoProductos,
		TotalUnidadesServicios: unidadesServicios,
		TotalMontoServicios:    montoServicios,
		TotalIngresos:          montoProductos.Add(montoServicios),
		Pagos:                  pagos,
		Cerrado:                false,
	}, nil
}

func (s *cierreService) ResumenDelDia(ctx context.Context, fecha time.Time) (*dto.ResumenDiaResponse, error) {
	if cierre, err := s.repo.FindByFecha(ctx, fecha); err == nil && cierre.Cerrado {
		pagos := make([]dto.PagoMetodoResponse, len(cierre.Pagos))
		for i, p := range cierre.Pagos {
			pagos[i] = dto.PagoMetodoResponse{MetodoPago: p.MetodoPago, Monto: p.Monto}
		}
		// Unit counts aren't persisted on the cierre; the line items still
		// are, so recount them for the uniform shape.
		_, unidadesProductos, _ := s.repo.SumDetallesDia(ctx, fecha, true)
		_, unidadesServicios, _ := s.repo.SumDetallesDia(ctx, fecha, false)
		return &dto.ResumenDiaResponse{
			Fecha:                  fecha.Format("2006-01-02"),
			TotalUnidadesProductos: unidadesProductos,
			TotalMontoProductos:    cierre.TotalProductosVendidos,
			TotalUnidadesServicios: unidadesServicios,
			TotalMontoServicios:    cierre.TotalServiciosVendidos,
			TotalIngresos:          cierre.TotalVentasDia,
			Pagos:                  pagos,
			Cerrado:                true,
		}, nil
	}
	return s.resumenVivo(ctx, fecha)
}

func (s *cierreService) CerrarCaja(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreDiarioResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errEntrada("fecha inválida: %w", err)
	}

	// The requester confirms the closing with their own password.
	if err := s.auth.VerificarPassword(ctx, usuarioID.String(), req.Password); err != nil {
		return nil, ErrPasswordInvalido
	}

	if cierre, err := s.repo.FindByFecha(ctx, fecha); err == nil && cierre.Cerrado {
		return nil, ErrCierreYaExiste
	}

	resumen, err := s.resumenVivo(ctx, fecha)
	if err != nil {
		return nil, err
	}
	if resumen.TotalIngresos.IsZero() && len(resumen.Pagos) == 0 {
		return nil, ErrDiaSinVentas
	}

	cierre := &model.CierreDiario{
		Fecha:                  fecha,
		TotalProductosVendidos: resumen.TotalMontoProductos,
		TotalServiciosVendidos: resumen.TotalMontoServicios,
		TotalVentasDia:         resumen.TotalIngresos,
		Observaciones:          req.Observaciones,
		FechaCierre:            time.Now(),
		Cerrado:                true,
		UsuarioID:              usuarioID,
	}
	for _, p := range resumen.Pagos {
		cierre.Pagos = append(cierre.Pagos, model.CierreDiarioPago{
			MetodoPago: p.MetodoPago,
			Monto:      p.Monto,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, cierre); err != nil {
			return err
		}
		return s.repo.LinkAtencionesTx(tx, fecha, cierre.ID)
	})
	if txErr != nil {
		// Two closings racing the same date: the unique index on fecha lets
		// only one INSERT through.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, ErrCierreYaExiste
		}
		return nil, txErr
	}

	// Post-commit side effects are async and best-effort.
	if s.dispatcher != nil {
		payload := map[string]string{"cierre_id": cierre.ID.String()}
		if err := s.dispatcher.EnqueueCierrePDF(ctx, payload); err != nil {
			log.Error().Err(err).Msg("cierre: no se pudo encolar el reporte PDF")
		}
	}
	if s.stock != nil {
		s.stock.NotificarBajoStock(ctx, fecha)
	}

	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) Listar(ctx context.Context, page, pageSize int) ([]dto.CierreDiarioResponse, dto.Pagination, error) {
	normalizePages(&page, &pageSize)
	cierres, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	resp := make([]dto.CierreDiarioResponse, len(cierres))
	for i := range cierres {
		resp[i] = cierreToResponse(&cierres[i])
	}
	return resp, buildPagination(page, pageSize, total), nil
}

func (s *cierreService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CierreDiarioResponse, error) {
	cierre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) VentaCerrada(ctx context.Context, atencionID uuid.UUID) (bool, error) {
	cerrada, err := s.repo.AtencionCerrada(ctx, atencionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNoEncontrado
		}
		return false, err
	}
	return cerrada, nil
}

func (s *cierreService) Bloquear(ctx context.Context, id uuid.UUID) (*dto.CierreDiarioResponse, error) {
	cierre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if !cierre.Cerrado {
		cierre.Cerrado = true
		if cierre.FechaCierre.IsZero() {
			cierre.FechaCierre = time.Now()
		}
		if err := s.repo.Update(ctx, cierre); err != nil {
			return nil, err
		}
	}
	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) ObtenerPorFecha(ctx context.Context, fecha time.Time) (*dto.CierreDiarioResponse, error) {
	cierre, err := s.repo.FindByFecha(ctx, fecha)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) EstaCerrado(ctx context.Context, fecha time.Time) (bool, error) {
	cierre, err := s.repo.FindByFecha(ctx, fecha)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return cierre.Cerrado, nil
}

func cierreToResponse(c *model.CierreDiario) dto.CierreDiarioResponse {
	pagos := make([]dto.PagoMetodoResponse, len(c.Pagos))
	for i, p := range c.Pagos {
		pagos[i] = dto.PagoMetodoResponse{MetodoPago: p.MetodoPago, Monto: p.Monto}
	}
	return dto.CierreDiarioResponse{
		ID:                     c.ID.String(),
		Fecha:                  c.Fecha.Format("2006-01-02"),
		TotalProductosVendidos: c.TotalProductosVendidos,
		TotalServiciosVendidos: c.TotalServiciosVendidos,
		TotalVentasDia:         c.TotalVentasDia,
		Observaciones:          c.Observaciones,
		FechaCierre:            c.FechaCierre.Format(time.RFC3339),
		Cerrado:                c.Cerrado,
		UsuarioID:              c.UsuarioID.String(),
		Pagos:                  pagos,
	}
}
