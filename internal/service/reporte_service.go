package service

import (
	"context"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	ReporteDia(ctx context.Context, fecha time.Time) (*dto.ReporteDiaResponse, error)
	ReporteRango(ctx context.Context, desde, hasta time.Time) (*dto.ReporteRangoResponse, error)
}

type reporteService struct {
	ventas VentaService
	turnos TurnoService
	cierre CierreService
}

func NewReporteService(ventas VentaService, turnos TurnoService, cierre CierreService) ReporteService {
	return &reporteService{ventas: ventas, turnos: turnos, cierre: cierre}
}

func (s *reporteService) ReporteDia(ctx context.Context, fecha time.Time) (*dto.ReporteDiaResponse, error) {
	dia := fecha.Format("2006-01-02")

	turnos, err := s.turnos.ListarPorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventas.ListarVentas(ctx, dto.VentaFilter{
		FechaDesde: dia,
		FechaHasta: dia,
		PageSize:   100,
	})
	if err != nil {
		return nil, err
	}
	cerrada, err := s.cierre.EstaCerrado(ctx, fecha)
	if err != nil {
		return nil, err
	}

	facturado := decimal.Zero
	pagado := decimal.Zero
	for _, v := range ventas.Ventas {
		facturado = facturado.Add(v.TotalVenta)
		pagado = pagado.Add(v.MontoPagado)
	}

	return &dto.ReporteDiaResponse{
		Fecha:           dia,
		Turnos:          turnos,
		Atenciones:      ventas.Ventas,
		TotalAtenciones: len(ventas.Ventas),
		TotalPagado:     pagado,
		TotalFacturado:  facturado,
		CajaCerrada:     cerrada,
	}, nil
}

func (s *reporteService) ReporteRango(ctx context.Context, desde, hasta time.Time) (*dto.ReporteRangoResponse, error) {
	if hasta.Before(desde) {
		return nil, errEntrada("el rango de fechas es inválido")
	}

	facturado := decimal.Zero
	pagado := decimal.Zero
	total := 0
	page := 1
	for {
		ventas, err := s.ventas.ListarVentas(ctx, dto.VentaFilter{
			FechaDesde: desde.Format("2006-01-02"),
			FechaHasta: hasta.Format("2006-01-02"),
			Page:       page,
			PageSize:   100,
		})
		if err != nil {
			return nil, err
		}
		for _, v := range ventas.Ventas {
			facturado = facturado.Add(v.TotalVenta)
			pagado = pagado.Add(v.MontoPagado)
		}
		total += len(ventas.Ventas)
		if page >= ventas.Pagination.TotalPages || len(ventas.Ventas) == 0 {
			break
		}
		page++
	}

	return &dto.ReporteRangoResponse{
		FechaDesde:      desde.Format("2006-01-02"),
		FechaHasta:      hasta.Format("2006-01-02"),
		TotalAtenciones: total,
		TotalFacturado:  facturado,
		TotalPagado:     pagado,
	}, nil
}
