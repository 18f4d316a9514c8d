package handler

import (
	"net/http"
	"time"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/middleware"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CierresHandler struct {
	svc service.CierreService
}

func NewCierresHandler(svc service.CierreService) *CierresHandler {
	return &CierresHandler{svc: svc}
}

// parseFechaQuery reads ?fecha=YYYY-MM-DD, defaulting to today.
func parseFechaQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("fecha")
	if raw == "" {
		return time.Now(), true
	}
	fecha, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha inválida, se espera YYYY-MM-DD"))
		return time.Time{}, false
	}
	return fecha, true
}

// Resumen godoc
// @Summary Resumen del día
// @Description Totales del día separados en productos y servicios, con desglose por método de pago. Misma forma para días abiertos (totales en vivo) y cerrados (totales persistidos).
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} dto.ResumenDiaResponse
// @Failure 400 {object} apierror.APIError
// @Router /cierrediario/resumen [get]
func (h *CierresHandler) Resumen(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenDelDia(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cerrar la caja del día
// @Description Requiere la contraseña del usuario autenticado. Rechazado si la fecha ya está cerrada o no tiene ventas.
// @Tags cierrediario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Fecha, observaciones y contraseña"
// @Success 201 {object} dto.CierreDiarioResponse
// @Failure 400 {object} apierror.APIError
// @Failure 401 {object} apierror.APIError
// @Router /cierrediario/cerrar [post]
func (h *CierresHandler) Cerrar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CerrarCaja(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Historial de cierres
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} map[string]interface{}
// @Router /cierrediario [get]
func (h *CierresHandler) Listar(c *gin.Context) {
	cierres, pagination, err := h.svc.Listar(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cierres": cierres, "pagination": pagination})
}

// PorFecha godoc
// @Summary Cierre de una fecha
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} dto.CierreDiarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /cierrediario/fecha [get]
func (h *CierresHandler) PorFecha(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorFecha(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Cierre por id
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del cierre"
// @Success 200 {object} dto.CierreDiarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /cierrediario/{id} [get]
func (h *CierresHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Bloquear godoc
// @Summary Bloquear un cierre existente
// @Description Marca el cierre como cerrado sin recalcular totales. Operación administrativa.
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del cierre"
// @Success 200 {object} dto.CierreDiarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /cierrediario/bloquear/{id} [put]
func (h *CierresHandler) Bloquear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	resp, err := h.svc.Bloquear(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentaCerrada godoc
// @Summary Verifica si una venta quedó congelada por un cierre
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} apierror.APIError
// @Router /cierrediario/venta/{id} [get]
func (h *CierresHandler) VentaCerrada(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	cerrada, err := h.svc.VentaCerrada(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cerrada": cerrada})
}

// Estado godoc
// @Summary Estado de cierre de una fecha
// @Tags cierrediario
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} map[string]bool
// @Router /cierrediario/estado [get]
func (h *CierresHandler) Estado(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	cerrado, err := h.svc.EstaCerrado(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cerrado": cerrado})
}
