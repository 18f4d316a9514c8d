package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService is the read side of sales: a visit with at least one line item
// is a venta. Amount and payment-status filters work over derived totals, so
// they are applied in memory after the SQL-level filters narrow the set.
type VentaService interface {
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	ObtenerVentaPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
}

type ventaService struct {
	repo repository.AtencionRepository
}

func NewVentaService(repo repository.AtencionRepository) VentaService {
	return &ventaService{repo: repo}
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	normalizePages(&filter.Page, &filter.PageSize)

	atenciones, err := s.repo.ListVentas(ctx, filter)
	if err != nil {
		return nil, err
	}

	ventas := make([]dto.VentaResponse, 0, len(atenciones))
	for i := range atenciones {
		v := ventaToResponse(&atenciones[i])
		if !matchVenta(&v, filter) {
			continue
		}
		ventas = append(ventas, v)
	}

	sortVentas(ventas, filter.OrdenarPor, filter.Orden)

	total := int64(len(ventas))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(ventas) {
		start = len(ventas)
	}
	end := start + filter.PageSize
	if end > len(ventas) {
		end = len(ventas)
	}

	return &dto.VentaListResponse{
		Ventas:     ventas[start:end],
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *ventaService) ObtenerVentaPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if len(a.Detalles) == 0 {
		// a visit with no lines is not a sale
		return nil, ErrNoEncontrado
	}
	v := ventaToResponse(a)
	return &v, nil
}

// matchVenta applies the derived-total filters that SQL cannot see.
func matchVenta(v *dto.VentaResponse, filter dto.VentaFilter) bool {
	if filter.MontoMin != nil && v.TotalVenta.LessThan(*filter.MontoMin) {
		return false
	}
	if filter.MontoMax != nil && v.TotalVenta.GreaterThan(*filter.MontoMax) {
		return false
	}
	if filter.EstadoPago != "" && v.EstadoPago != filter.EstadoPago {
		return false
	}
	return true
}

// sortVentas ordena el listado. Sin orden explícito, fecha va de más
// reciente a más antigua; cliente y monto van ascendentes.
func sortVentas(ventas []dto.VentaResponse, ordenarPor, orden string) {
	less := func(i, j int) bool { return ventas[i].FechaAtencion < ventas[j].FechaAtencion }
	desc := orden == "desc" || orden == ""
	switch ordenarPor {
	case "cliente":
		less = func(i, j int) bool {
			return strings.ToLower(ventas[i].ClienteNombre) < strings.ToLower(ventas[j].ClienteNombre)
		}
		desc = orden == "desc"
	case "monto":
		less = func(i, j int) bool { return ventas[i].TotalVenta.LessThan(ventas[j].TotalVenta) }
		desc = orden == "desc"
	}
	if desc {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(ventas, less)
}

func ventaToResponse(a *model.Atencion) dto.VentaResponse {
	total := a.Total()
	pagado := decimal.Zero
	pagos := make([]dto.PagoVentaResponse, len(a.Pagos))
	for i, p := range a.Pagos {
		pagado = pagado.Add(p.Monto)
		pagos[i] = dto.PagoVentaResponse{
			PagoID:    p.ID.String(),
			Metodo:    string(p.Metodo),
			Monto:     p.Monto,
			FechaPago: p.Fecha.Format(time.RFC3339),
		}
	}

	estado := dto.EstadoPagoSinPago
	switch {
	case pagado.GreaterThanOrEqual(total) && pagado.GreaterThan(decimal.Zero):
		estado = dto.EstadoPagoCompleto
	case pagado.GreaterThan(decimal.Zero):
		estado = dto.EstadoPagoParcial
	}

	v := dto.VentaResponse{
		AtencionID:    a.ID.String(),
		ClienteID:     a.ClienteID.String(),
		FechaAtencion: a.Fecha.Format(time.RFC3339),
		Detalles:      detallesToResponse(a.Detalles),
		TotalVenta:    total,
		Pagos:         pagos,
		MontoPagado:   pagado,
		EstadoPago:    estado,
		Cerrada:       a.Cerrada(),
	}
	if a.Cliente != nil {
		v.ClienteNombre = a.Cliente.Nombre
	}
	return v
}
