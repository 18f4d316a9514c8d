package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	productosCacheVerKey = "productos:ver"
	productosCacheTTL    = 60 * time.Second
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoServicioRequest) (*dto.ProductoServicioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoServicioResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoServicioRequest) (*dto.ProductoServicioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// AjustarStock applies a manual inventory correction (recount, breakage,
	// restock). Rejected for services and for adjustments below zero.
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoServicioResponse, error)
	AdjuntarImagen(ctx context.Context, id uuid.UUID, ruta string) error
}

type productoService struct {
	repo       repository.ProductoRepository
	imagenRepo repository.ImagenRepository
	rdb        *redis.Client
}

// NewProductoService wires the catalog service. rdb may be nil; the listing
// cache is then skipped entirely.
func NewProductoService(repo repository.ProductoRepository, imagenRepo repository.ImagenRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, imagenRepo: imagenRepo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoServicioRequest) (*dto.ProductoServicioResponse, error) {
	if !req.EsAlmacenable && req.Cantidad != 0 {
		return nil, errEntrada("un servicio no almacenable no puede tener stock")
	}
	p := &model.ProductoServicio{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Precio:        req.Precio,
		EsAlmacenable: req.EsAlmacenable,
		Cantidad:      req.Cantidad,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoServicioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	normalizePages(&filter.Page, &filter.PageSize)

	key := s.cacheKey(ctx, filter)
	if key != "" {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.ProductoListResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Productos:  make([]dto.ProductoServicioResponse, len(productos)),
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}
	for i := range productos {
		resp.Productos[i] = s.toResponse(ctx, &productos[i])
	}

	if key != "" {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, raw, productosCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("productos: cache set falló")
			}
		}
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoServicioRequest) (*dto.ProductoServicioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, errEntrada("el precio no puede ser negativo")
		}
		p.Precio = *req.Precio
	}
	if req.EsAlmacenable != nil {
		p.EsAlmacenable = *req.EsAlmacenable
	}
	if req.Cantidad != nil {
		p.Cantidad = *req.Cantidad
	}
	if !p.EsAlmacenable {
		p.Cantidad = 0
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoServicioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if !p.EsAlmacenable {
		return nil, errEntrada("no se puede ajustar stock de un servicio")
	}
	if p.Cantidad+req.Delta < 0 {
		return nil, errEntrada("el ajuste dejaría el stock en %d", p.Cantidad+req.Delta)
	}
	p.Cantidad += req.Delta
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	log.Info().
		Str("producto", p.Nombre).
		Int("delta", req.Delta).
		Str("motivo", req.Motivo).
		Int("stock", p.Cantidad).
		Msg("ajuste manual de stock")
	s.invalidarCache(ctx)
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) AdjuntarImagen(ctx context.Context, id uuid.UUID, ruta string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	if err := s.imagenRepo.Desactivar(ctx, "producto", id); err != nil {
		return err
	}
	if err := s.imagenRepo.Save(ctx, &model.Imagen{
		Ruta:          ruta,
		TipoImagen:    "producto",
		RelacionadoID: id,
		Activo:        true,
	}); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *productoService) toResponse(ctx context.Context, p *model.ProductoServicio) dto.ProductoServicioResponse {
	var imagenURL *string
	if s.imagenRepo != nil {
		if img, err := s.imagenRepo.FindActiva(ctx, "producto", p.ID); err == nil {
			url := "/api/archivos/" + img.Ruta
			imagenURL = &url
		}
	}
	return productoToResponse(p, imagenURL)
}

// cacheKey derives the listing cache key from the filter plus a namespace
// version bumped on every write; stale entries just expire.
func (s *productoService) cacheKey(ctx context.Context, filter dto.ProductoFilter) string {
	if s.rdb == nil {
		return ""
	}
	ver, err := s.rdb.Get(ctx, productosCacheVerKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}
	almacenable := "any"
	if filter.EsAlmacenable != nil {
		almacenable = fmt.Sprintf("%t", *filter.EsAlmacenable)
	}
	return fmt.Sprintf("productos:v%d:n=%s:a=%s:act=%s:p=%d:s=%d",
		ver, filter.Nombre, almacenable, filter.Activo, filter.Page, filter.PageSize)
}

func (s *productoService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, productosCacheVerKey).Err(); err != nil {
		log.Debug().Err(err).Msg("productos: invalidación de cache falló")
	}
}
