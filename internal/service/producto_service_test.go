package service_test

import (
	"context"
	"testing"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubImagenRepo is an in-memory ImagenRepository.
type stubImagenRepo struct {
	imagenes []*model.Imagen
}

func (r *stubImagenRepo) Save(_ context.Context, img *model.Imagen) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	r.imagenes = append(r.imagenes, img)
	return nil
}

func (r *stubImagenRepo) FindActiva(_ context.Context, tipo string, relacionadoID uuid.UUID) (*model.Imagen, error) {
	for i := len(r.imagenes) - 1; i >= 0; i-- {
		img := r.imagenes[i]
		if img.TipoImagen == tipo && img.RelacionadoID == relacionadoID && img.Activo {
			return img, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubImagenRepo) Desactivar(_ context.Context, tipo string, relacionadoID uuid.UUID) error {
	for _, img := range r.imagenes {
		if img.TipoImagen == tipo && img.RelacionadoID == relacionadoID {
			img.Activo = false
		}
	}
	return nil
}

var _ repository.ImagenRepository = (*stubImagenRepo)(nil)

func newProductoFixture() (*stubProductoRepo, *stubImagenRepo, service.ProductoService) {
	productos := newStubProductoRepo()
	imagenes := &stubImagenRepo{}
	return productos, imagenes, service.NewProductoService(productos, imagenes, nil)
}

func TestProducto_ServicioNoLlevaStock(t *testing.T) {
	_, _, svc := newProductoFixture()

	_, err := svc.Crear(context.Background(), dto.CrearProductoServicioRequest{
		Nombre:        "Corte clásico",
		Precio:        decimal.NewFromInt(25),
		EsAlmacenable: false,
		Cantidad:      3,
	})
	assert.Error(t, err)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoServicioRequest{
		Nombre:        "Corte clásico",
		Precio:        decimal.NewFromInt(25),
		EsAlmacenable: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Cantidad)
}

func TestProducto_ActualizarNoAlmacenableFuerzaCero(t *testing.T) {
	productos, _, svc := newProductoFixture()
	p := productos.add(&model.ProductoServicio{
		Nombre: "Shampoo", Precio: decimal.NewFromInt(15), EsAlmacenable: true, Cantidad: 7, Activo: true,
	})

	almacenable := false
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoServicioRequest{
		EsAlmacenable: &almacenable,
	})
	require.NoError(t, err)
	assert.False(t, resp.EsAlmacenable)
	assert.Equal(t, 0, resp.Cantidad)
}

func TestProducto_AjustarStock(t *testing.T) {
	productos, _, svc := newProductoFixture()
	p := productos.add(&model.ProductoServicio{
		Nombre: "Shampoo", Precio: decimal.NewFromInt(15), EsAlmacenable: true, Cantidad: 5, Activo: true,
	})

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta: -3, Motivo: "rotura en depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Cantidad)

	// Below zero: rejected, stock untouched.
	_, err = svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta: -5, Motivo: "recuento",
	})
	assert.Error(t, err)
	assert.Equal(t, 2, p.Cantidad)
}

func TestProducto_AjustarStockDeServicio(t *testing.T) {
	productos, _, svc := newProductoFixture()
	p := productos.add(&model.ProductoServicio{
		Nombre: "Corte clásico", Precio: decimal.NewFromInt(25), Activo: true,
	})

	_, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta: 3, Motivo: "reposición",
	})
	assert.Error(t, err)
}

func TestProducto_AdjuntarImagenReemplazaLaAnterior(t *testing.T) {
	productos, imagenes, svc := newProductoFixture()
	p := productos.add(&model.ProductoServicio{
		Nombre: "Shampoo", Precio: decimal.NewFromInt(15), EsAlmacenable: true, Cantidad: 5, Activo: true,
	})

	require.NoError(t, svc.AdjuntarImagen(context.Background(), p.ID, "producto_a.jpg"))
	require.NoError(t, svc.AdjuntarImagen(context.Background(), p.ID, "producto_b.jpg"))

	img, err := imagenes.FindActiva(context.Background(), "producto", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "producto_b.jpg", img.Ruta)

	activas := 0
	for _, i := range imagenes.imagenes {
		if i.Activo {
			activas++
		}
	}
	assert.Equal(t, 1, activas)

	resp, err := svc.Obtener(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.ImagenURL)
	assert.Equal(t, "/api/archivos/producto_b.jpg", *resp.ImagenURL)
}

func TestProducto_Eliminar(t *testing.T) {
	productos, _, svc := newProductoFixture()
	p := productos.add(&model.ProductoServicio{
		Nombre: "Shampoo", Precio: decimal.NewFromInt(15), EsAlmacenable: true, Cantidad: 5, Activo: true,
	})

	require.NoError(t, svc.Eliminar(context.Background(), p.ID))
	assert.False(t, p.Activo)

	assert.ErrorIs(t, svc.Eliminar(context.Background(), uuid.New()), service.ErrNoEncontrado)
}
