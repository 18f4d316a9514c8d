package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService owns every stock movement. Sales never touch product rows
// directly: they go through DescontarTx/DevolverTx inside the sale's own
// transaction, so a failed sale leaves stock untouched.
type StockService interface {
	// DescontarTx deducts stock for one sold line. Services (EsAlmacenable
	// false) are a no-op. Returns repository.ErrStockInsuficiente when the
	// product does not have enough units. A deduct that crosses the low-stock
	// threshold after today's register closed alerts right away: the closing
	// summary already went out and will not reflect it.
	DescontarTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int) error
	// DevolverTx restores stock after a line is removed or a visit deleted.
	// Unconditional: restocks can exceed any previous level.
	DevolverTx(tx *gorm.DB, productoID uuid.UUID, cantidad int) error
	// NotificarBajoStock emails the low-stock report, but only once the day's
	// register is closed, so the alert reflects final end-of-day levels.
	NotificarBajoStock(ctx context.Context, fecha time.Time)
	ResumenBajoStock(ctx context.Context) ([]dto.ProductoServicioResponse, error)
}

type stockService struct {
	productoRepo repository.ProductoRepository
	cierreRepo   repository.CierreDiarioRepository
	dispatcher   Dispatcher
	umbral       int
	alertEmail   string
}

func NewStockService(
	productoRepo repository.ProductoRepository,
	cierreRepo repository.CierreDiarioRepository,
	dispatcher Dispatcher,
	umbral int,
	alertEmail string,
) StockService {
	return &stockService{
		productoRepo: productoRepo,
		cierreRepo:   cierreRepo,
		dispatcher:   dispatcher,
		umbral:       umbral,
		alertEmail:   alertEmail,
	}
}

func (s *stockService) DescontarTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int) error {
	p, err := s.productoRepo.FindByIDTx(tx, productoID)
	if err != nil {
		return errEntrada("producto %s no encontrado", productoID)
	}
	if !p.EsAlmacenable {
		return nil
	}
	antes := p.Cantidad
	if err := s.productoRepo.DescontarStockTx(tx, productoID, cantidad); err != nil {
		return err
	}
	if restante := antes - cantidad; antes > s.umbral && restante <= s.umbral {
		s.alertarCruceDeUmbral(ctx, p.Nombre, restante)
	}
	return nil
}

// alertarCruceDeUmbral cubre las ventas cargadas después del cierre del día:
// el resumen de bajo stock del cierre ya salió, así que el cruce se avisa en
// el momento. Con la caja todavía abierta no hace nada, el resumen lo cubre.
func (s *stockService) alertarCruceDeUmbral(ctx context.Context, nombre string, restante int) {
	if s.alertEmail == "" {
		return
	}
	hoy := time.Now()
	cierre, err := s.cierreRepo.FindByFecha(ctx, hoy)
	if err != nil || !cierre.Cerrado {
		return
	}

	payload := worker.EmailJobPayload{
		ToEmail: s.alertEmail,
		Subject: fmt.Sprintf("Alerta de stock bajo — %s", nombre),
		Body: fmt.Sprintf("El producto %s quedó con %d unidades (umbral %d) por una venta posterior al cierre del %s.\n",
			nombre, restante, s.umbral, hoy.Format("2006-01-02")),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("stock: no se pudo encolar la alerta de bajo stock")
	}
}

func (s *stockService) DevolverTx(tx *gorm.DB, productoID uuid.UUID, cantidad int) error {
	p, err := s.productoRepo.FindByIDTx(tx, productoID)
	if err != nil {
		return errEntrada("producto %s no encontrado", productoID)
	}
	if !p.EsAlmacenable {
		return nil
	}
	return s.productoRepo.DevolverStockTx(tx, productoID, cantidad)
}

func (s *stockService) NotificarBajoStock(ctx context.Context, fecha time.Time) {
	cierre, err := s.cierreRepo.FindByFecha(ctx, fecha)
	if err != nil || !cierre.Cerrado {
		return
	}

	bajos, err := s.productoRepo.ListBajoStock(ctx, s.umbral)
	if err != nil {
		log.Error().Err(err).Msg("stock: consulta de bajo stock falló")
		return
	}
	if len(bajos) == 0 || s.alertEmail == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Productos con stock en o por debajo de %d unidades al cierre del %s:\n\n",
		s.umbral, fecha.Format("2006-01-02"))
	for _, p := range bajos {
		fmt.Fprintf(&b, "  - %s: %d unidades\n", p.Nombre, p.Cantidad)
	}

	payload := worker.EmailJobPayload{
		ToEmail: s.alertEmail,
		Subject: fmt.Sprintf("Alerta de stock bajo — %s", fecha.Format("2006-01-02")),
		Body:    b.String(),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("stock: no se pudo encolar la alerta de bajo stock")
	}
}

func (s *stockService) ResumenBajoStock(ctx context.Context) ([]dto.ProductoServicioResponse, error) {
	bajos, err := s.productoRepo.ListBajoStock(ctx, s.umbral)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoServicioResponse, len(bajos))
	for i := range bajos {
		resp[i] = productoToResponse(&bajos[i], nil)
	}
	return resp, nil
}

func productoToResponse(p *model.ProductoServicio, imagenURL *string) dto.ProductoServicioResponse {
	return dto.ProductoServicioResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Precio:        p.Precio,
		EsAlmacenable: p.EsAlmacenable,
		Cantidad:      p.Cantidad,
		Activo:        p.Activo,
		ImagenURL:     imagenURL,
	}
}
