package handler

import (
	"net/http"
	"time"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc service.ReporteService
}

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dia godoc
// @Summary Reporte de un día
// @Description Turnos, ventas y estado de cierre de la fecha en un solo reporte.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} dto.ReporteDiaResponse
// @Failure 400 {object} apierror.APIError
// @Router /reportes/dia [get]
func (h *ReportesHandler) Dia(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ReporteDia(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rango godoc
// @Summary Reporte por rango de fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "YYYY-MM-DD inclusivo"
// @Param hasta query string true "YYYY-MM-DD inclusivo"
// @Success 200 {object} dto.ReporteRangoResponse
// @Failure 400 {object} apierror.APIError
// @Router /reportes/rango [get]
func (h *ReportesHandler) Rango(c *gin.Context) {
	desde, err := time.Parse("2006-01-02", c.Query("desde"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde inválido, se espera YYYY-MM-DD"))
		return
	}
	hasta, err := time.Parse("2006-01-02", c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("hasta inválido, se espera YYYY-MM-DD"))
		return
	}
	if hasta.Before(desde) {
		c.JSON(http.StatusBadRequest, apierror.New("el rango es inválido: hasta es anterior a desde"))
		return
	}
	resp, err := h.svc.ReporteRango(c.Request.Context(), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
