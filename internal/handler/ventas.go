package handler

import (
	"net/http"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VentasHandler struct {
	svc service.VentaService
}

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Listar godoc
// @Summary Listar ventas
// @Description Vista de reporting de atenciones con detalles, pagos y estado de pago derivado.
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param cliente_nombre query string false "Filtro por nombre de cliente"
// @Param producto_nombre query string false "Ventas que incluyen un producto por nombre"
// @Param producto_id query string false "Ventas que incluyen un producto por UUID"
// @Param fecha_desde query string false "YYYY-MM-DD inclusivo"
// @Param fecha_hasta query string false "YYYY-MM-DD inclusivo"
// @Param monto_min query number false "Total mínimo"
// @Param monto_max query number false "Total máximo"
// @Param estado_pago query string false "sin_pago | parcial | completo"
// @Param ordenar_por query string false "fecha | cliente | monto"
// @Param orden query string false "asc | desc (fecha: default desc)"
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} dto.VentaListResponse
// @Failure 400 {object} apierror.APIError
// @Router /ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	filter := dto.VentaFilter{
		ClienteNombre:      c.Query("cliente_nombre"),
		ProductoNombre:     c.Query("producto_nombre"),
		ProductoServicioID: c.Query("producto_id"),
		FechaDesde:         c.Query("fecha_desde"),
		FechaHasta:         c.Query("fecha_hasta"),
		EstadoPago:         c.Query("estado_pago"),
		OrdenarPor:         c.Query("ordenar_por"),
		Orden:              c.Query("orden"),
		Page:               queryInt(c, "page", 1),
		PageSize:           queryInt(c, "page_size", 10),
	}
	if v := c.Query("monto_min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("monto_min inválido"))
			return
		}
		filter.MontoMin = &d
	}
	if v := c.Query("monto_max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("monto_max inválido"))
			return
		}
		filter.MontoMax = &d
	}

	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de una venta
// @Description 404 si la atención no existe o no tiene detalles (no es una venta).
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Success 200 {object} dto.VentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /ventas/{id} [get]
func (h *VentasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerVentaPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
