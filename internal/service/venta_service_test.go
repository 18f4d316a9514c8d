package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sembrarVenta(repo *stubAtencionRepo, cliente string, fecha time.Time, total, pagado int64) *model.Atencion {
	producto := &model.ProductoServicio{
		ID: uuid.New(), Nombre: "Corte clásico", Precio: decimal.NewFromInt(total), Activo: true,
	}
	a := &model.Atencion{
		ClienteID: uuid.New(),
		BarberoID: uuid.New(),
		Fecha:     fecha,
		Cliente:   &model.Usuario{Nombre: cliente},
		Detalles: []model.DetalleAtencion{
			{ProductoServicioID: producto.ID, Cantidad: 1, PrecioUnitario: decimal.NewFromInt(total), ProductoServicio: producto},
		},
	}
	if pagado > 0 {
		a.Pagos = []model.Pago{
			{ID: uuid.New(), Metodo: model.MetodoEfectivo, Monto: decimal.NewFromInt(pagado), Fecha: fecha},
		}
	}
	return repo.add(a)
}

func TestVentas_EstadoPagoDerivado(t *testing.T) {
	repo := newStubAtencionRepo()
	fecha := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sinPago := sembrarVenta(repo, "Ana", fecha, 40, 0)
	parcial := sembrarVenta(repo, "Bruno", fecha, 40, 15)
	completo := sembrarVenta(repo, "Carla", fecha, 40, 40)
	svc := service.NewVentaService(repo)

	casos := []struct {
		id     uuid.UUID
		estado string
		pagado int64
	}{
		{sinPago.ID, dto.EstadoPagoSinPago, 0},
		{parcial.ID, dto.EstadoPagoParcial, 15},
		{completo.ID, dto.EstadoPagoCompleto, 40},
	}
	for _, c := range casos {
		v, err := svc.ObtenerVentaPorID(context.Background(), c.id)
		require.NoError(t, err)
		assert.Equal(t, c.estado, v.EstadoPago)
		assert.True(t, v.TotalVenta.Equal(decimal.NewFromInt(40)))
		assert.True(t, v.MontoPagado.Equal(decimal.NewFromInt(c.pagado)))
	}
}

func TestVentas_FiltroPorEstadoYMonto(t *testing.T) {
	repo := newStubAtencionRepo()
	fecha := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sembrarVenta(repo, "Ana", fecha, 20, 0)
	sembrarVenta(repo, "Bruno", fecha, 40, 40)
	sembrarVenta(repo, "Carla", fecha, 80, 30)
	svc := service.NewVentaService(repo)

	completas, err := svc.ListarVentas(context.Background(), dto.VentaFilter{EstadoPago: dto.EstadoPagoCompleto})
	require.NoError(t, err)
	require.Len(t, completas.Ventas, 1)
	assert.Equal(t, "Bruno", completas.Ventas[0].ClienteNombre)

	min := decimal.NewFromInt(30)
	max := decimal.NewFromInt(50)
	rango, err := svc.ListarVentas(context.Background(), dto.VentaFilter{MontoMin: &min, MontoMax: &max})
	require.NoError(t, err)
	require.Len(t, rango.Ventas, 1)
	assert.True(t, rango.Ventas[0].TotalVenta.Equal(decimal.NewFromInt(40)))
}

func TestVentas_OrdenPorMontoDescendente(t *testing.T) {
	repo := newStubAtencionRepo()
	fecha := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sembrarVenta(repo, "Ana", fecha, 20, 0)
	sembrarVenta(repo, "Bruno", fecha, 80, 0)
	sembrarVenta(repo, "Carla", fecha, 40, 0)
	svc := service.NewVentaService(repo)

	resp, err := svc.ListarVentas(context.Background(), dto.VentaFilter{
		OrdenarPor: "monto",
		Orden:      "desc",
	})
	require.NoError(t, err)
	require.Len(t, resp.Ventas, 3)
	assert.True(t, resp.Ventas[0].TotalVenta.Equal(decimal.NewFromInt(80)))
	assert.True(t, resp.Ventas[1].TotalVenta.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.Ventas[2].TotalVenta.Equal(decimal.NewFromInt(20)))

	// sin orden explícito, monto queda ascendente
	asc, err := svc.ListarVentas(context.Background(), dto.VentaFilter{OrdenarPor: "monto"})
	require.NoError(t, err)
	require.Len(t, asc.Ventas, 3)
	assert.True(t, asc.Ventas[0].TotalVenta.Equal(decimal.NewFromInt(20)))
}

func TestVentas_OrdenPorFechaDefaultDescendente(t *testing.T) {
	repo := newStubAtencionRepo()
	sembrarVenta(repo, "Vieja", time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), 20, 0)
	sembrarVenta(repo, "Nueva", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), 20, 0)
	svc := service.NewVentaService(repo)

	resp, err := svc.ListarVentas(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Ventas, 2)
	assert.Equal(t, "Nueva", resp.Ventas[0].ClienteNombre)
	assert.Equal(t, "Vieja", resp.Ventas[1].ClienteNombre)

	asc, err := svc.ListarVentas(context.Background(), dto.VentaFilter{Orden: "asc"})
	require.NoError(t, err)
	require.Len(t, asc.Ventas, 2)
	assert.Equal(t, "Vieja", asc.Ventas[0].ClienteNombre)
}

func TestVentas_Paginacion(t *testing.T) {
	repo := newStubAtencionRepo()
	fecha := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sembrarVenta(repo, "Cliente", fecha.Add(time.Duration(i)*time.Hour), 10, 0)
	}
	svc := service.NewVentaService(repo)

	resp, err := svc.ListarVentas(context.Background(), dto.VentaFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Ventas, 2)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestVentas_AtencionSinDetallesNoEsVenta(t *testing.T) {
	repo := newStubAtencionRepo()
	vacia := repo.add(&model.Atencion{
		ClienteID: uuid.New(),
		BarberoID: uuid.New(),
		Fecha:     time.Now(),
	})
	svc := service.NewVentaService(repo)

	_, err := svc.ObtenerVentaPorID(context.Background(), vacia.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)

	resp, err := svc.ListarVentas(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)
	assert.Empty(t, resp.Ventas)
}
